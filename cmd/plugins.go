package cmd

import (
	"os"

	"github.com/huangsam/visulog/core"
	"github.com/huangsam/visulog/internal/contract"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// pluginsCmd lists the available analyzer plugins.
var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the available analyzer plugins",
	Long: `List every analyzer plugin that can be requested with -p/--plugins.

Plugins run in the order they are requested and their results are
concatenated into one report.

Examples:
  # See what can be analyzed
  visulog plugins

  # Run two of them
  visulog -p=authors -p=churn /path/to/repo`,
	Run: func(_ *cobra.Command, _ []string) {
		rows := make([][]string, 0)
		for _, info := range core.PluginInfos() {
			rows = append(rows, []string{info.Name, info.Description})
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Name", "Description"})
		if err := table.Bulk(rows); err != nil {
			contract.LogFatal("Failed to build plugin listing", err)
		}
		if err := table.Render(); err != nil {
			contract.LogFatal("Failed to render plugin listing", err)
		}
	},
}
