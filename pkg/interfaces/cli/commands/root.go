package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/infrastructure/config"
	"github.com/vsinha/botplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/botplan/pkg/infrastructure/repositories/text"
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "botplan",
		Short: "Find the best robot build order for each blueprint",
		Long: `botplan searches robot build decisions for every blueprint and reports the
largest amount of the terminal resource that can be collected within the horizon.

Examples:
  botplan solve --input blueprints.txt
  botplan solve --input blueprints.txt --horizon 32 --first 3
  botplan solve --input costs.csv --format json --output results/
  botplan verify --input blueprints.txt --max-horizon 10`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./botplan.yaml or ./configs/botplan.yaml)")

	rootCmd.AddCommand(newSolveCobraCommand(&configPath))
	rootCmd.AddCommand(newVerifyCobraCommand(&configPath))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadBlueprints reads blueprints from a CSV cost table or puzzle text,
// chosen by file extension
func loadBlueprints(path string, chain entities.Chain) ([]*entities.Blueprint, error) {
	if path == "" {
		return nil, fmt.Errorf("an input file is required (--input)")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csv.NewLoader(chain).LoadBlueprints(path)
	}
	return text.NewLoader(chain).LoadBlueprints(path)
}

// applyOverrides copies explicitly set flags over the loaded configuration
func applyOverrides(cmd *cobra.Command, cfg *config.Config, flags *searchFlags) error {
	fs := cmd.Flags()
	if fs.Changed("horizon") {
		horizon := flags.horizon
		cfg.Search.Horizon = &horizon
	}
	if fs.Changed("resources") {
		cfg.Search.Resources = flags.resources
	}
	if fs.Changed("max-states") {
		cfg.Search.MaxStates = flags.maxStates
	}
	if fs.Changed("timeout") {
		cfg.Search.Timeout = flags.timeout
	}
	if fs.Changed("workers") {
		cfg.Search.Workers = flags.workers
	}
	if fs.Changed("no-spend-cap") {
		enabled := !flags.noSpendCap
		cfg.Search.SpendCap = &enabled
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	return config.ValidateConfig(cfg)
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
