package auth

import "time"

// expiryBuffer is how long before actual expiry a token is treated as
// expired, so in-flight requests never ride a token that lapses mid-call.
const expiryBuffer = 60 * time.Second

// Token is an OAuth2 access token with its issuance metadata.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ExpiresAt returns the instant the token actually expires.
func (t *Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Expired reports whether the token should be considered expired at the
// given instant, applying the safety buffer. Tokens with lifetimes shorter
// than the buffer are expired from the moment they are issued.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt().Add(-expiryBuffer))
}
