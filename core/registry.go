package core

import (
	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// PluginInfo describes one registered plugin for presentation purposes.
type PluginInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// pluginEntry binds a plugin name to its factory and description.
type pluginEntry struct {
	name        string
	description string
	factory     PluginFactory
}

// pluginRegistry is the ordered catalog of built-in plugins. Order only
// affects listings; execution order follows the request order in the
// resolved Configuration.
var pluginRegistry = []pluginEntry{
	{
		name:        "authors",
		description: "Count commits per author.",
		factory: func(cfg *schema.Configuration, client contract.GitClient) Plugin {
			return newAuthorsPlugin(cfg, client)
		},
	},
	{
		name:        "activity",
		description: "Count commits per weekday.",
		factory: func(cfg *schema.Configuration, client contract.GitClient) Plugin {
			return newActivityPlugin(cfg, client)
		},
	},
	{
		name:        "churn",
		description: "Count lines added and deleted per author.",
		factory: func(cfg *schema.Configuration, client contract.GitClient) Plugin {
			return newChurnPlugin(cfg, client)
		},
	},
}

// LookupPlugin resolves a plugin name to its factory, or nil when the
// name is unknown.
func LookupPlugin(name string) PluginFactory {
	for _, entry := range pluginRegistry {
		if entry.name == name {
			return entry.factory
		}
	}
	return nil
}

// PluginInfos returns the registered plugins in registry order.
func PluginInfos() []PluginInfo {
	out := make([]PluginInfo, 0, len(pluginRegistry))
	for _, entry := range pluginRegistry {
		out = append(out, PluginInfo{Name: entry.name, Description: entry.description})
	}
	return out
}
