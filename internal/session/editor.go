package session

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditInEditor hands text to the user's editor through a temporary file and
// returns the trimmed result. The temporary file is removed on every exit
// path, including editor failure. The editor runs synchronously on the
// caller's terminal.
func EditInEditor(text string) (string, error) {
	tmp, err := os.CreateTemp("", "revu-commit-*.txt")
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	name, args := editorCommand()
	cmd := exec.Command(name, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", name, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read edited message: %w", err)
	}
	return strings.TrimSpace(string(edited)), nil
}

// editorCommand resolves $EDITOR (then $VISUAL, then vi). The value may
// carry arguments, e.g. EDITOR="code --wait".
func editorCommand() (string, []string) {
	raw := os.Getenv("EDITOR")
	if raw == "" {
		raw = os.Getenv("VISUAL")
	}
	if raw == "" {
		raw = "vi"
	}
	fields := strings.Fields(raw)
	return fields[0], fields[1:]
}
