// Package argparse resolves a run configuration from command-line tokens,
// recursively loaded config files, and seeded defaults. Binding is driven
// by a static option registry built once at startup; state threads
// explicitly through each recursive resolution call.
package argparse

// State is the resolved option state accumulated while tokens are
// processed left to right. It is created fresh per resolution pass and
// discarded once a Configuration is derived.
type State struct {
	ShowHelp    bool
	ShowVersion bool
	Plugins     []string
	LoadConfig  string
	SaveConfig  string
	WorkPath    string
}

// Defaults seed the resolved option state before any token is bound.
// They form the lowest tier of the precedence chain: defaults, then
// loaded config file tokens, then directly supplied arguments.
type Defaults struct {
	WorkPath string
	Plugins  []string
}

// newState builds a seeded state for one resolution pass.
func newState(defs Defaults) *State {
	st := &State{WorkPath: defs.WorkPath}
	if st.WorkPath == "" {
		st.WorkPath = "."
	}
	if len(defs.Plugins) > 0 {
		st.Plugins = make([]string, len(defs.Plugins))
		copy(st.Plugins, defs.Plugins)
	}
	return st
}

// Diagnostics collects the recoverable findings of one resolution:
// unknown option names, non-fatal warnings, and the display requests that
// the presentation layer acts on. Accumulated functionally and returned
// to the caller instead of being kept as binder state.
type Diagnostics struct {
	Unknown     []string
	Warnings    []string
	ShowHelp    bool
	ShowVersion bool
}
