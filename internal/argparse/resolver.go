package argparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/visulog/schema"
)

// maxLoadDepth bounds chains of config files that load further config
// files. The visited set catches cycles; the depth bound backstops
// pathologically long acyclic chains.
const maxLoadDepth = 16

// Substrings that identify load/save-config tokens when filtering
// combined token lists. Matched with contains, like the original syntax.
var (
	loadConfigMarkers = []string{"-l=", "--load-config="}
	saveConfigMarkers = []string{"-s=", "--save-config="}
)

// CycleError reports a config file that is loaded again while it is
// still being resolved.
type CycleError struct {
	Path string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("config file cycle detected at %q", e.Path)
}

// Resolve derives a Configuration from command-line tokens. A nil
// Configuration with a nil error means no plugins were requested and no
// analysis should run. Without load/save-config tokens, Resolve is pure
// and deterministic.
func Resolve(args []string, defs Defaults) (*schema.Configuration, Diagnostics, error) {
	var diags Diagnostics
	cfg, err := resolve(args, defs, make(map[string]struct{}), 0, &diags)
	return cfg, diags, err
}

// resolve is the recursive worker behind Resolve. The visited set and
// depth thread explicitly through each recursive call; every pass binds
// into a fresh seeded state, so an outer pass's partial bindings are
// discarded when a config file triggers recursion.
func resolve(args []string, defs Defaults, visited map[string]struct{}, depth int, diags *Diagnostics) (*schema.Configuration, error) {
	st := newState(defs)
	if len(args) == 0 {
		st.ShowHelp = true
	}

	if err := Bind(args, st, diags); err != nil {
		return nil, err
	}

	// Help and version are display requests, not terminal conditions.
	// The presentation layer renders them; resolution continues.
	if st.ShowHelp {
		diags.ShowHelp = true
	}
	if st.ShowVersion {
		diags.ShowVersion = true
	}

	if st.LoadConfig != "" {
		stored, loaded, err := readConfigTokens(st.LoadConfig, visited, depth, diags)
		if err != nil {
			return nil, err
		}
		if loaded {
			// Stored tokens come first so directly supplied arguments win
			// on conflict. Load-config tokens are stripped from the
			// combined list to prevent re-triggering on the same file.
			combined := stripTokens(append(stored, args...), loadConfigMarkers)

			// The recursive pass re-binds the original args, so drop
			// findings that would otherwise be reported twice.
			diags.Unknown = nil

			return resolve(combined, defs, visited, depth+1, diags)
		}
	}

	if st.SaveConfig != "" {
		toSave := stripTokens(args, saveConfigMarkers)
		if err := Save(st.SaveConfig, toSave); err != nil {
			diags.Warnings = append(diags.Warnings,
				fmt.Sprintf("could not save config to %q: %v", st.SaveConfig, err))
		}
	}

	if len(st.Plugins) == 0 {
		return nil, nil // no analysis requested
	}
	return schema.NewConfiguration(st.WorkPath, st.Plugins)
}

// readConfigTokens loads and tokenizes a config file. A missing or
// irregular file is a soft failure: a warning is recorded and resolution
// proceeds with directly supplied arguments only. A revisited path or an
// exhausted depth budget is fatal.
func readConfigTokens(path string, visited map[string]struct{}, depth int, diags *Diagnostics) ([]string, bool, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		diags.Warnings = append(diags.Warnings,
			fmt.Sprintf("config file %q does not exist or is not a regular file; ignoring", path))
		return nil, false, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, seen := visited[abs]; seen {
		return nil, false, &CycleError{Path: path}
	}
	if depth >= maxLoadDepth {
		return nil, false, &CycleError{Path: path}
	}
	visited[abs] = struct{}{}

	data, err := os.ReadFile(path)
	if err != nil {
		diags.Warnings = append(diags.Warnings,
			fmt.Sprintf("could not read config file %q: %v; ignoring", path, err))
		return nil, false, nil
	}
	return splitStoredTokens(string(data)), true, nil
}

// splitStoredTokens turns stored config file text into CLI-style tokens:
// all newlines are collapsed and the remaining content is split on single
// spaces. Multi-line or otherwise-delimited formats are not supported.
func splitStoredTokens(content string) []string {
	content = strings.ReplaceAll(content, "\n", "")
	content = strings.ReplaceAll(content, "\r", "")
	var tokens []string
	for part := range strings.SplitSeq(content, " ") {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// stripTokens removes every token containing one of the marker substrings.
func stripTokens(tokens []string, markers []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		keep := true
		for _, m := range markers {
			if strings.Contains(tok, m) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, tok)
		}
	}
	return out
}
