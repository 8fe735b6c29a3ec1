package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/botplan/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives console output (os.Stdout when nil)
	Writer io.Writer
}

// Generate renders the batch result in the configured format.
// When OutputDir is set the rendering is also saved to a file there.
func Generate(result *dto.BatchResult, config Config) error {
	w := config.Writer
	if w == nil {
		w = os.Stdout
	}

	var (
		buf bytes.Buffer
		err error
		ext string
	)
	switch config.Format {
	case "text":
		ext = "txt"
		err = writeText(&buf, result, config.Verbose)
	case "json":
		ext = "json"
		err = writeJSON(&buf, result)
	case "csv":
		ext = "csv"
		err = writeCSV(&buf, result)
	case "yaml":
		ext = "yaml"
		err = writeYAML(&buf, result)
	case "html":
		ext = "html"
		err = writeHTML(&buf, result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "botplan_results."+ext)
		if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write results file: %w", err)
		}

		if config.Verbose {
			fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// YieldRate returns yield per time unit, rounded to three places
func YieldRate(yield, horizon int) decimal.Decimal {
	if horizon <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(yield)).DivRound(decimal.NewFromInt(int64(horizon)), 3)
}

// AverageYield returns the mean yield of a batch, rounded to three places
func AverageYield(results []dto.SearchResult) decimal.Decimal {
	if len(results) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(decimal.NewFromInt(int64(r.Yield)))
	}
	return total.DivRound(decimal.NewFromInt(int64(len(results))), 3)
}

// writeText creates human-readable text output
func writeText(w io.Writer, result *dto.BatchResult, verbose bool) error {
	fmt.Fprintf(w, "📊 Blueprint Search Results\n")
	fmt.Fprintf(w, "===========================\n\n")

	fmt.Fprintf(w, "%-10s %-8s %-8s %-10s %-10s %-12s %-10s %-12s\n",
		"Blueprint", "Horizon", "Yield", "Quality", "Per Unit", "States", "Pruned", "Time")
	fmt.Fprintf(w, "%-10s %-8s %-8s %-10s %-10s %-12s %-10s %-12s\n",
		"----------", "--------", "--------", "----------", "----------", "------------", "----------", "------------")

	for _, r := range result.Results {
		yield := strconv.Itoa(r.Yield)
		if r.Truncated {
			yield += "*"
		}
		fmt.Fprintf(w, "%-10d %-8d %-8s %-10d %-10s %-12d %-10d %-12v\n",
			r.BlueprintID,
			r.Horizon,
			yield,
			r.QualityLevel(),
			YieldRate(r.Yield, r.Horizon).StringFixed(3),
			r.StatesExplored,
			r.TotalPruned(),
			r.Duration)

		if verbose && len(r.StatesPruned) > 0 {
			rules := make([]string, 0, len(r.StatesPruned))
			for rule := range r.StatesPruned {
				rules = append(rules, rule)
			}
			sort.Strings(rules)
			for _, rule := range rules {
				fmt.Fprintf(w, "    %-18s %d\n", rule, r.StatesPruned[rule])
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Quality Sum: %d\n", result.QualitySum)
	fmt.Fprintf(w, "Yield Product: %d\n", result.YieldProduct)
	fmt.Fprintf(w, "Average Yield: %s\n", AverageYield(result.Results).StringFixed(3))
	fmt.Fprintf(w, "Total Time: %v\n", result.Duration)
	if result.Truncated() {
		fmt.Fprintf(w, "⚠️  * search truncated, yield is a lower bound\n")
	}

	return nil
}

// writeJSON creates JSON output
func writeJSON(w io.Writer, result *dto.BatchResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// writeYAML creates YAML output
func writeYAML(w io.Writer, result *dto.BatchResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// writeCSV creates one CSV row per blueprint
func writeCSV(w io.Writer, result *dto.BatchResult) error {
	cw := csv.NewWriter(w)
	header := []string{"blueprint_id", "horizon", "terminal", "yield", "quality_level", "yield_per_unit",
		"states_explored", "candidates_pruned", "truncated", "duration_ms"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range result.Results {
		record := []string{
			strconv.Itoa(r.BlueprintID),
			strconv.Itoa(r.Horizon),
			r.Terminal,
			strconv.Itoa(r.Yield),
			strconv.Itoa(r.QualityLevel()),
			YieldRate(r.Yield, r.Horizon).StringFixed(3),
			strconv.Itoa(r.StatesExplored),
			strconv.Itoa(r.TotalPruned()),
			strconv.FormatBool(r.Truncated),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
