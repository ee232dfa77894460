package config

import "sort"

// regions maps AWS-style region names to Genesys Cloud API domains.
var regions = map[string]string{
	"us-east-1":      "mypurecloud.com",
	"us-west-2":      "usw2.pure.cloud",
	"ca-central-1":   "cac1.pure.cloud",
	"eu-west-1":      "mypurecloud.ie",
	"eu-west-2":      "euw2.pure.cloud",
	"eu-central-1":   "mypurecloud.de",
	"ap-southeast-2": "mypurecloud.com.au",
	"ap-northeast-1": "mypurecloud.jp",
	"ap-northeast-2": "apne2.pure.cloud",
	"ap-south-1":     "aps1.pure.cloud",
	"sa-east-1":      "sae1.pure.cloud",
	"me-central-1":   "mec1.pure.cloud",
}

// Regions returns the available region domains, sorted.
func Regions() []string {
	out := make([]string, 0, len(regions))
	for _, domain := range regions {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

// ResolveRegion accepts either an AWS-style region name or a raw domain and
// returns the API domain. Unknown values pass through unchanged so future
// regions keep working without a code change.
func ResolveRegion(region string) string {
	if domain, ok := regions[region]; ok {
		return domain
	}
	return region
}
