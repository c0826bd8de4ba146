package logging

import (
	"fmt"
	"os"
)

// DebugEnvVar turns on debug output when set to any non-empty value.
const DebugEnvVar = "TODO_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TODO_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf prints a formatted debug message to stderr only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
