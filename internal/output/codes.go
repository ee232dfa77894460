// Package output provides structured CLI errors and exit codes.
package output

// Exit codes for the gcadm binary.
const (
	ExitOK       = 0 // Success
	ExitUsage    = 1 // Invalid arguments or flags
	ExitNotFound = 2 // Resource not found
	ExitAuth     = 3 // Not authenticated / no credentials
	ExitNetwork  = 4 // Connection/DNS/timeout error
	ExitAPI      = 5 // Server returned error
	ExitStorage  = 6 // Secret storage failure
)

// Error codes for machine-readable output.
const (
	CodeUsage    = "usage"
	CodeNotFound = "not_found"
	CodeAuth     = "auth_required"
	CodeNetwork  = "network"
	CodeAPI      = "api_error"
	CodeStorage  = "storage"
)

// ExitCodeFor returns the exit code for a given error code.
func ExitCodeFor(code string) int {
	switch code {
	case CodeUsage:
		return ExitUsage
	case CodeNotFound:
		return ExitNotFound
	case CodeAuth:
		return ExitAuth
	case CodeNetwork:
		return ExitNetwork
	case CodeAPI:
		return ExitAPI
	case CodeStorage:
		return ExitStorage
	default:
		return ExitAPI
	}
}
