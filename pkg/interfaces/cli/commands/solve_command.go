package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vsinha/botplan/pkg/application/services/orchestration"
	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/infrastructure/config"
	"github.com/vsinha/botplan/pkg/infrastructure/events"
	"github.com/vsinha/botplan/pkg/infrastructure/logging"
	"github.com/vsinha/botplan/pkg/infrastructure/metrics"
	"github.com/vsinha/botplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/botplan/pkg/interfaces/cli/output"
)

// searchFlags are the flags shared by solve and verify
type searchFlags struct {
	input      string
	horizon    int
	resources  []string
	maxStates  int
	timeout    time.Duration
	workers    int
	noSpendCap bool
	logLevel   string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Blueprint file (.csv cost table or puzzle text)")
	cmd.Flags().IntVar(&f.horizon, "horizon", config.DefaultHorizon, "Time units available")
	cmd.Flags().StringSliceVar(&f.resources, "resources", config.DefaultResources, "Resource chain in dependency order")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "Maximum states expanded per blueprint (0 = unlimited)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Deadline per blueprint search (0 = none)")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "Blueprints searched concurrently")
	cmd.Flags().BoolVar(&f.noSpendCap, "no-spend-cap", false, "Disable the robot spend cap")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func newSolveCobraCommand(configPath *string) *cobra.Command {
	flags := &searchFlags{}
	var (
		first       int
		format      string
		outputDir   string
		metricsFile string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search every blueprint and report yields and quality levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Dir = outputDir
			}
			if cmd.Flags().Changed("metrics-file") {
				cfg.Metrics.Enabled = true
				cfg.Metrics.File = metricsFile
			}
			if err := applyOverrides(cmd, cfg, flags); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			solve := NewSolveCommand(cfg, flags.input, first, verbose, cmd.OutOrStdout())
			return solve.Execute(cmd.Context())
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&first, "first", 0, "Multiply the yields of the first N blueprints (0 = all)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, csv, yaml, html")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for results (optional)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// SolveCommand handles the main search execution logic
type SolveCommand struct {
	config  *config.Config
	input   string
	first   int
	verbose bool
	out     io.Writer
}

// NewSolveCommand creates a new solve command with the given configuration
func NewSolveCommand(cfg *config.Config, input string, first int, verbose bool, out io.Writer) *SolveCommand {
	return &SolveCommand{
		config:  cfg,
		input:   input,
		first:   first,
		verbose: verbose,
		out:     writerOrStdout(out),
	}
}

// Execute runs the solve command
func (c *SolveCommand) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closer, err := logging.New(c.config.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	chain, err := entities.ParseChain(c.config.Search.Resources)
	if err != nil {
		return fmt.Errorf("invalid resource chain: %w", err)
	}

	if c.verbose {
		fmt.Fprintf(c.out, "🚀 Blueprint Planner\n")
		fmt.Fprintf(c.out, "Input: %s\n", c.input)
		fmt.Fprintf(c.out, "Chain: %s\n", chain)
		fmt.Fprintf(c.out, "Horizon: %d\n\n", c.config.Search.HorizonValue())
	}

	blueprints, err := loadBlueprints(c.input, chain)
	if err != nil {
		return fmt.Errorf("error loading blueprints: %w", err)
	}

	repo := memory.NewBlueprintRepository(len(blueprints))
	if err := repo.LoadBlueprints(blueprints); err != nil {
		return fmt.Errorf("failed to load blueprints into repository: %w", err)
	}

	if c.verbose {
		fmt.Fprintf(c.out, "✅ Loaded %d blueprints\n\n", repo.Count())
	}

	var (
		registry  *prometheus.Registry
		collector *metrics.SearchMetricsCollector
		recorder  orchestration.MetricsRecorder
	)
	if c.config.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		collector = metrics.NewSearchMetricsCollector()
		if err := collector.Register(registry); err != nil {
			return err
		}
		recorder = collector
	}

	store := events.NewInMemoryEventStore(logger)
	orchestrator := orchestration.NewPlanningOrchestrator(repo, store, recorder, logger)

	result, err := orchestrator.Run(ctx, orchestration.Settings{
		Horizon:   c.config.Search.HorizonValue(),
		MaxStates: c.config.Search.MaxStates,
		Timeout:   c.config.Search.Timeout,
		Workers:   c.config.Search.Workers,
		SpendCap:  c.config.Search.SpendCapEnabled(),
		First:     c.first,
	})
	if err != nil {
		return fmt.Errorf("error running search: %w", err)
	}

	err = output.Generate(result, output.Config{
		Format:    c.config.Output.Format,
		OutputDir: c.config.Output.Dir,
		Verbose:   c.verbose,
		Writer:    c.out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if registry != nil {
		if err := metrics.WriteFile(c.config.Metrics.File, registry); err != nil {
			return err
		}
		if c.verbose {
			fmt.Fprintf(c.out, "📈 Metrics written to: %s\n", c.config.Metrics.File)
		}
	}

	if c.verbose {
		all, _ := store.ReadAllEvents(0)
		fmt.Fprintf(c.out, "🏁 Done (%d events recorded)\n", len(all))
	}

	return nil
}
