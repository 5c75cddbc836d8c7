package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of keyhandler.
func GetVersion() *string {
	return &version
}
