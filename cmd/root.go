package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/visulog/core"
	"github.com/huangsam/visulog/internal/argparse"
	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/internal/iocache"
	"github.com/huangsam/visulog/internal/outwriter"
	"github.com/huangsam/visulog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.RunConfig{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.RawInput{}

// rootCmd is the command-line entrypoint for all other commands.
//
// Flag parsing is disabled on the root command on purpose: analysis
// arguments follow their own grammar (-p=..., --load-config=..., a bare
// positional path) and are resolved by the argparse package, not by
// Cobra. Subcommands parse flags normally.
var rootCmd = &cobra.Command{
	Use:                "visulog [path] [options...]",
	Short:              "Analyze and visualize Git commit logs with pluggable analyzers.",
	Long:               `Visulog runs analyzer plugins over a repository's Git log and renders their combined results as text or HTML.`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	DisableFlagParsing: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		return runRoot(rootCtx, args)
	},
}

// runRoot resolves the raw tokens into an analysis configuration and, when
// plugins were requested, runs them and writes the report.
func runRoot(ctx context.Context, args []string) error {
	resolved, diags, err := argparse.Resolve(args, argparse.Defaults{
		WorkPath: cfg.DefaultPath,
		Plugins:  cfg.DefaultPlugins,
	})

	// Diagnostics are reported even when resolution fails.
	for _, warning := range diags.Warnings {
		contract.LogWarn(warning, nil)
	}
	for _, name := range diags.Unknown {
		fmt.Printf("Unknown option: '%s'!\n", name)
	}
	if diags.ShowHelp {
		fmt.Print(argparse.Usage())
	}
	if diags.ShowVersion {
		fmt.Printf("visulog %s\n", version)
	}
	if err != nil {
		return err
	}
	if resolved == nil {
		// No plugins requested; help, version or save-config only.
		return nil
	}

	client := contract.NewLocalGitClient()
	analyzer := core.NewAnalyzer(resolved, client, iocache.Manager)

	start := time.Now()
	result, err := analyzer.ComputeResults(ctx)
	if err != nil {
		return err
	}
	return outwriter.WriteReport(result, cfg, time.Since(start))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".visulog") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("VISULOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("width", 0)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("path", "")
	viper.SetDefault("plugins", "")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".visulog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
