package common

import (
	"fmt"
	"os"
)

// LogError prints an error message to stderr.
// With critic at true the program stops with exit code 1, optionally showing
// the command help first.
func LogError(
	message string,
	critic bool,
	helpMenu bool,
	helpCallback func() error,
) {
	fmt.Fprintf(os.Stderr, "%s\n", message)

	if critic {
		if helpMenu && helpCallback != nil {
			helpCallback()
		}
		os.Exit(1)
	}
}

// LogInfo prints a message to stdout.
func LogInfo(message string) {
	fmt.Printf("%s\n", message)
}

// LogDebug prints a message to stderr when debug is on.
func LogDebug(debug bool, format string, args ...interface{}) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
