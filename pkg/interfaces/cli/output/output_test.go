package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/botplan/pkg/application/dto"
)

func sampleBatch() *dto.BatchResult {
	return &dto.BatchResult{
		RunID: "run-1",
		Results: []dto.SearchResult{
			{
				BlueprintID:    1,
				Horizon:        24,
				Terminal:       "geode",
				Yield:          9,
				StatesExplored: 1200,
				StatesPruned:   map[string]int{"LockIn": 40, "SpendCap": 7},
				Duration:       15 * time.Millisecond,
			},
			{
				BlueprintID:    2,
				Horizon:        24,
				Terminal:       "geode",
				Yield:          12,
				StatesExplored: 900,
				Truncated:      true,
			},
		},
		QualitySum:   33,
		YieldProduct: 108,
		Duration:     40 * time.Millisecond,
	}
}

func TestYieldRate(t *testing.T) {
	assert.Equal(t, "0.375", YieldRate(9, 24).StringFixed(3))
	assert.Equal(t, "0.333", YieldRate(1, 3).StringFixed(3))
	assert.True(t, YieldRate(5, 0).IsZero())
}

func TestAverageYield(t *testing.T) {
	assert.Equal(t, "10.500", AverageYield(sampleBatch().Results).StringFixed(3))
	assert.True(t, AverageYield(nil).IsZero())
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "text", Verbose: true, Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Quality Sum: 33")
	assert.Contains(t, out, "Yield Product: 108")
	assert.Contains(t, out, "Average Yield: 10.500")
	assert.Contains(t, out, "12*")
	assert.Contains(t, out, "search truncated")
	assert.Contains(t, out, "SpendCap")
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "json", Writer: &buf}))

	var decoded dto.BatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 33, decoded.QualitySum)
	assert.Equal(t, 108, decoded.YieldProduct)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, 40, decoded.Results[0].StatesPruned["LockIn"])
}

func TestGenerate_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "yaml", Writer: &buf}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, 33, decoded["quality_sum"])
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "csv", Writer: &buf}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "blueprint_id", records[0][0])
	assert.Equal(t, []string{"1", "24", "geode", "9", "9", "0.375", "1200", "47", "false", "15"}, records[1])
	assert.Equal(t, "true", records[2][8])
}

func TestGenerate_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "csv", OutputDir: dir, Writer: &buf}))

	content, err := os.ReadFile(filepath.Join(dir, "botplan_results.csv"))
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(content))
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleBatch(), Config{Format: "xml", Writer: &bytes.Buffer{}})
	assert.EqualError(t, err, "unsupported output format: xml")
}

func TestGenerate_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleBatch(), Config{Format: "html", Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Quality Sum<strong>33</strong>")
	assert.Contains(t, out, "Yield Product<strong>108</strong>")
	assert.Contains(t, out, "12 geode*")
	assert.Contains(t, out, "search truncated")
	assert.Contains(t, out, `"qualitySum":33`)
}

func TestHTMLReport_BarWidthsScaleToBestYield(t *testing.T) {
	report := NewHTMLReport()
	data := report.buildReportData(sampleBatch())

	require.Len(t, data.Rows, 2)
	assert.Equal(t, 300, data.Rows[0].BarWidth)
	assert.Equal(t, 400, data.Rows[1].BarWidth)
	assert.Equal(t, []PruneCount{{Rule: "LockIn", Count: 40}, {Rule: "SpendCap", Count: 7}}, data.Rows[0].Pruned)
	assert.Equal(t, "#FF9800", data.Rows[1].Color)
	assert.Equal(t, 47, data.Statistics.Pruned)
	assert.Equal(t, 2100, data.Statistics.StatesExplored)
}
