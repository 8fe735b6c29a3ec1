package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vsinha/botplan/pkg/application/services/search"
	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/infrastructure/config"
	"github.com/vsinha/botplan/pkg/infrastructure/logging"
)

// maxVerifyHorizon keeps the unpruned enumeration tractable
const maxVerifyHorizon = 14

func newVerifyCobraCommand(configPath *string) *cobra.Command {
	flags := &searchFlags{}
	var maxHorizon int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare the pruned search with an exhaustive enumeration on short horizons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, cfg, flags); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			if maxHorizon < 1 || maxHorizon > maxVerifyHorizon {
				return fmt.Errorf("max horizon must be between 1 and %d, got %d", maxVerifyHorizon, maxHorizon)
			}

			verify := NewVerifyCommand(cfg, flags.input, maxHorizon, cmd.OutOrStdout())
			return verify.Execute(cmd.Context())
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxHorizon, "max-horizon", 10, "Largest horizon to check")

	return cmd
}

// VerifyCommand checks the explorer against the exhaustive baseline
type VerifyCommand struct {
	config     *config.Config
	input      string
	maxHorizon int
	out        io.Writer
}

// NewVerifyCommand creates a new verify command
func NewVerifyCommand(cfg *config.Config, input string, maxHorizon int, out io.Writer) *VerifyCommand {
	return &VerifyCommand{
		config:     cfg,
		input:      input,
		maxHorizon: maxHorizon,
		out:        writerOrStdout(out),
	}
}

// Execute runs both searches for every blueprint and horizon 1..maxHorizon
func (c *VerifyCommand) Execute(ctx context.Context) error {
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

	blueprints, err := loadBlueprints(c.input, chain)
	if err != nil {
		return fmt.Errorf("error loading blueprints: %w", err)
	}

	fmt.Fprintf(c.out, "%-10s %-8s %-10s %-10s %-6s\n", "Blueprint", "Horizon", "Explorer", "Baseline", "OK")
	fmt.Fprintf(c.out, "%-10s %-8s %-10s %-10s %-6s\n", "----------", "--------", "----------", "----------", "------")

	mismatches := 0
	for _, bp := range blueprints {
		for h := 1; h <= c.maxHorizon; h++ {
			opts := search.DefaultOptions(h)
			opts.SpendCap = c.config.Search.SpendCapEnabled()

			explorer, err := search.NewExplorer(bp, opts, logger)
			if err != nil {
				return err
			}
			result, err := explorer.Search(ctx)
			if err != nil {
				return fmt.Errorf("blueprint %d horizon %d: %w", bp.ID(), h, err)
			}

			baseline := search.ExhaustiveYield(bp, h)
			ok := result.Yield == baseline
			if !ok {
				mismatches++
				logger.Error("yield mismatch",
					"blueprint", bp.ID(),
					"horizon", h,
					"explorer", result.Yield,
					"baseline", baseline)
			}
			fmt.Fprintf(c.out, "%-10d %-8d %-10d %-10d %-6t\n", bp.ID(), h, result.Yield, baseline, ok)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d horizon checks disagree with the exhaustive search", mismatches)
	}
	fmt.Fprintf(c.out, "\n✅ All checks agree\n")
	return nil
}
