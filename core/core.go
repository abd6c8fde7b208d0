// Package core has the analyzer orchestration and built-in plugin logic
// for visulog.
package core

import (
	"context"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// Plugin is one independently runnable analysis unit. A plugin is run
// exactly once; repeated Run calls after a completed run are no-ops, and
// Result never re-executes the analysis.
type Plugin interface {
	// Name returns the registered plugin name.
	Name() string

	// Run performs the analysis and populates the result.
	Run(ctx context.Context) error

	// Result returns the result of the analysis, or nil if the plugin
	// has not completed a successful run.
	Result() schema.Result
}

// PluginFactory builds a plugin bound to a configuration and Git client.
type PluginFactory func(cfg *schema.Configuration, client contract.GitClient) Plugin
