package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/visulog/schema"
)

// RunConfig holds the validated ambient configuration for one invocation:
// everything outside the core option grammar (output routing, color,
// persistence backends, and the defaults that seed argument resolution).
type RunConfig struct {
	Output           schema.OutputMode     // Report format: "text" or "html"
	OutputFile       string                // Optional path to write the report to
	Color            bool                  // Enable colored report headers
	Width            int                   // Terminal width override (0 = auto-detect)
	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string
	DefaultPath      string   // Default working path when no positional arg is given
	DefaultPlugins   []string // Default plugin list when no -p option is given
}

// RawInput holds the raw, unvalidated configuration from all ambient
// sources (config file, env, flags). Viper unmarshals into this struct.
type RawInput struct {
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Path             string `mapstructure:"path"`
	Plugins          string `mapstructure:"plugins"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final RunConfig struct.
func ProcessAndValidate(cfg *RunConfig, input *RawInput) error {
	// --- 1. Output Validation ---
	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text or html", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	// --- 2. Color and Width ---
	useColor, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.Color = useColor

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 3. Persistence Backends ---
	cacheBackend := schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if err := ValidateDatabaseConnectionString(cacheBackend, input.CacheDBConnect); err != nil {
		return err
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	// History tracking is opt-in; an empty backend disables it.
	if input.HistoryBackend != "" {
		historyBackend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
		if err := ValidateDatabaseConnectionString(historyBackend, input.HistoryDBConnect); err != nil {
			return err
		}
		cfg.HistoryBackend = historyBackend
		cfg.HistoryDBConnect = input.HistoryDBConnect
	}

	// --- 4. Resolution Defaults ---
	cfg.DefaultPath = input.Path
	if cfg.DefaultPath == "" {
		cfg.DefaultPath = "."
	}
	cfg.DefaultPlugins = SplitList(input.Plugins)

	return nil
}

// ValidateDatabaseConnectionString checks that the backend is known and that
// server-based backends carry a connection string.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid database backend '%s'. must be sqlite, mysql, postgresql, or none", backend)
	}
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required for the %s backend", backend)
		}
	}
	return nil
}
