package argparse

import (
	"fmt"
	"strings"
)

// optionPrefix marks a token as an option rather than a working path.
const optionPrefix = "-"

// ParseError is a fatal configuration error: an option that matched the
// registry carried a value segment that could not be parsed for its kind.
// Unlike unknown options, a ParseError aborts resolution.
type ParseError struct {
	Option string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value for option %s: %s", e.Option, e.Reason)
}

// Bind parses tokens against the option registry, mutating st in place.
// Tokens are processed left to right in last-write-wins order. A token
// without the option prefix is the working path argument; the last such
// token wins. Unmatched option names are collected into diags and do not
// stop processing. Bind touches nothing outside st and diags.
func Bind(tokens []string, st *State, diags *Diagnostics) error {
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, optionPrefix) {
			st.WorkPath = tok
			continue
		}

		name, value, hasValue := strings.Cut(tok, "=")
		opt := lookupOption(name)
		if opt == nil {
			diags.Unknown = append(diags.Unknown, name)
			continue
		}

		if opt.Kind == FlagKind {
			// A flag is set regardless of any supplied value segment.
			_ = opt.bind(st, "")
			continue
		}

		if !hasValue || value == "" {
			return &ParseError{Option: name, Reason: "missing value"}
		}
		if err := opt.bind(st, value); err != nil {
			return &ParseError{Option: name, Reason: err.Error()}
		}
	}
	return nil
}
