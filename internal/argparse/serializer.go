package argparse

import (
	"os"
	"strings"
)

// Save writes tokens to path joined by single spaces, with no trailing
// separator or newline. Any pre-existing file at path is deleted first,
// so the write always has overwrite semantics.
func Save(path string, tokens []string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(tokens, " ")), 0o644)
}
