package common

import (
	"github.com/atotto/clipboard"
)

// SetClipboardValue copies value to the system clipboard.
func SetClipboardValue(value string) error {
	return clipboard.WriteAll(value)
}
