package common

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureFd swaps target for a pipe around fn and returns what was written.
func captureFd(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := *target
	*target = w
	defer func() { *target = old }()

	fn()
	w.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestLogErrorNonCritic(t *testing.T) {
	// Non-critic errors go to stderr and must not exit.
	out := captureFd(t, &os.Stderr, func() {
		LogError("something minor went wrong", false, false, nil)
	})
	assert.Equal(t, "something minor went wrong\n", out)
}

func TestLogInfo(t *testing.T) {
	out := captureFd(t, &os.Stdout, func() {
		LogInfo("all providers configured")
	})
	assert.Equal(t, "all providers configured\n", out)
}

func TestLogDebug(t *testing.T) {
	out := captureFd(t, &os.Stderr, func() {
		LogDebug(true, "state: %s", "acting")
	})
	assert.Equal(t, "[debug] state: acting\n", out)

	out = captureFd(t, &os.Stderr, func() {
		LogDebug(false, "state: %s", "acting")
	})
	assert.Empty(t, out)
}
