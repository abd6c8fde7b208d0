package schema

import "errors"

// ErrNoPlugins is returned when a Configuration is constructed with an
// empty plugin list. Callers signal "no analysis requested" with a nil
// Configuration instead of an empty one.
var ErrNoPlugins = errors.New("configuration requires at least one plugin")

// Configuration is the resolved, immutable set of inputs driving one
// analysis run: a working path and an ordered list of plugin names.
// Duplicate plugin names are permitted and order is preserved.
type Configuration struct {
	repoPath string
	plugins  []string
}

// NewConfiguration builds a Configuration from a working path and plugin
// names. An empty path defaults to the current directory. The plugin
// slice is copied so later mutation of the argument cannot leak in.
func NewConfiguration(repoPath string, plugins []string) (*Configuration, error) {
	if len(plugins) == 0 {
		return nil, ErrNoPlugins
	}
	if repoPath == "" {
		repoPath = "."
	}
	owned := make([]string, len(plugins))
	copy(owned, plugins)
	return &Configuration{repoPath: repoPath, plugins: owned}, nil
}

// RepoPath returns the working path for the analysis.
func (c *Configuration) RepoPath() string {
	return c.repoPath
}

// Plugins returns a copy of the requested plugin names in request order.
func (c *Configuration) Plugins() []string {
	out := make([]string, len(c.plugins))
	copy(out, c.plugins)
	return out
}
