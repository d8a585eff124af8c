package logging

import "os"

// ciEnvVars are the well-known variables set by hosted CI systems. Presence
// of any one of them switches the CLI into machine-oriented output.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"JENKINS_URL",
	"TRAVIS",
	"BUILDKITE",
}

// IsCI reports whether the process appears to be running under a CI system.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
