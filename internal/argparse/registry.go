package argparse

import (
	"fmt"

	"github.com/huangsam/visulog/internal/contract"
)

// OptionKind represents the expected value type of an option.
type OptionKind string

// All option kinds supported.
const (
	FlagKind   OptionKind = "flag"   // takes no value
	StringKind OptionKind = "string" // single string value
	ListKind   OptionKind = "list"   // comma-separated string values
)

// Option describes one recognized command-line option: its canonical
// names, value kind, usage text, and the typed setter that binds a parsed
// value into the resolved option state.
type Option struct {
	Names       []string
	Kind        OptionKind
	Usage       string
	Description []string
	bind        func(st *State, value string) error
}

// registry is the static catalog of recognized options, built once at
// startup. Order is significant and stable: the binder matches names in
// registry order and the help output lists options in this order.
var registry = []Option{
	{
		Names:       []string{"-h", "--help"},
		Kind:        FlagKind,
		Description: []string{"Show this help message."},
		bind: func(st *State, _ string) error {
			st.ShowHelp = true
			return nil
		},
	},
	{
		Names:       []string{"-v", "--version"},
		Kind:        FlagKind,
		Description: []string{"Show the current version of this software."},
		bind: func(st *State, _ string) error {
			st.ShowVersion = true
			return nil
		},
	},
	{
		Names:       []string{"-p", "--plugins"},
		Kind:        ListKind,
		Usage:       "<plugin>,...",
		Description: []string{"Add a plugin (by name) to run."},
		bind: func(st *State, value string) error {
			plugins := contract.SplitList(value)
			if len(plugins) == 0 {
				return fmt.Errorf("expected at least one plugin name")
			}
			// Repeated -p options overwrite rather than accumulate.
			st.Plugins = plugins
			return nil
		},
	},
	{
		Names:       []string{"-l", "--load-config"},
		Kind:        StringKind,
		Usage:       "<path>",
		Description: []string{"Load a configuration file which contains a list of plugins to run."},
		bind: func(st *State, value string) error {
			st.LoadConfig = value
			return nil
		},
	},
	{
		Names:       []string{"-s", "--save-config"},
		Kind:        StringKind,
		Usage:       "<path>",
		Description: []string{"Save the configuration file of this command call."},
		bind: func(st *State, value string) error {
			st.SaveConfig = value
			return nil
		},
	},
}

// lookupOption matches a name case-sensitively against every option's
// name set in registry order; first match wins.
func lookupOption(name string) *Option {
	for i := range registry {
		for _, n := range registry[i].Names {
			if n == name {
				return &registry[i]
			}
		}
	}
	return nil
}

// Options returns a copy of the option registry for presentation purposes.
func Options() []Option {
	out := make([]Option, len(registry))
	copy(out, registry)
	return out
}
