package output

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/vsinha/botplan/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport renders a batch result as a standalone HTML page
type HTMLReport struct {
	// BarWidth is the pixel width of a full-yield bar
	BarWidth int
}

// ReportRow is one blueprint line of the report
type ReportRow struct {
	BlueprintID    int          `json:"blueprintId"`
	Horizon        int          `json:"horizon"`
	Terminal       string       `json:"terminal"`
	Yield          int          `json:"yield"`
	QualityLevel   int          `json:"qualityLevel"`
	YieldPerUnit   string       `json:"yieldPerUnit"`
	StatesExplored int          `json:"statesExplored"`
	Pruned         []PruneCount `json:"pruned"`
	Truncated      bool         `json:"truncated"`
	Duration       string       `json:"duration"`
	BarWidth       int          `json:"barWidth"`
	Color          string       `json:"color"`
}

// PruneCount is the number of candidates one rule discarded
type PruneCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// ReportData contains everything the report template shows
type ReportData struct {
	RunID        string      `json:"runId"`
	Rows         []ReportRow `json:"rows"`
	QualitySum   int         `json:"qualitySum"`
	YieldProduct int         `json:"yieldProduct"`
	AverageYield string      `json:"averageYield"`
	Truncated    bool        `json:"truncated"`
	Statistics   struct {
		Blueprints     int `json:"blueprints"`
		StatesExplored int `json:"statesExplored"`
		Pruned         int `json:"pruned"`
		BestYield      int `json:"bestYield"`
	} `json:"statistics"`
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	*ReportData
	DataJSON      template.JS
	TotalDuration string
	GeneratedAt   string
}

// NewHTMLReport creates a new HTML report generator
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{BarWidth: 400}
}

// Render writes the report for result to w
func (hr *HTMLReport) Render(w io.Writer, result *dto.BatchResult) error {
	data := hr.buildReportData(result)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal report data: %w", err)
	}

	templateData := &TemplateData{
		ReportData:    data,
		DataJSON:      template.JS(jsonData),
		TotalDuration: hr.formatDuration(result.Duration),
		GeneratedAt:   time.Now().Format("2006-01-02 15:04:05"),
	}

	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(w, templateData); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// buildReportData converts search results into template-ready rows
func (hr *HTMLReport) buildReportData(result *dto.BatchResult) *ReportData {
	data := &ReportData{
		RunID:        result.RunID,
		QualitySum:   result.QualitySum,
		YieldProduct: result.YieldProduct,
		AverageYield: AverageYield(result.Results).StringFixed(3),
		Truncated:    result.Truncated(),
	}

	for _, r := range result.Results {
		if r.Yield > data.Statistics.BestYield {
			data.Statistics.BestYield = r.Yield
		}
	}

	for _, r := range result.Results {
		row := ReportRow{
			BlueprintID:    r.BlueprintID,
			Horizon:        r.Horizon,
			Terminal:       r.Terminal,
			Yield:          r.Yield,
			QualityLevel:   r.QualityLevel(),
			YieldPerUnit:   YieldRate(r.Yield, r.Horizon).StringFixed(3),
			StatesExplored: r.StatesExplored,
			Truncated:      r.Truncated,
			Duration:       hr.formatDuration(r.Duration),
			Color:          hr.getBarColor(r),
		}
		if data.Statistics.BestYield > 0 {
			row.BarWidth = r.Yield * hr.BarWidth / data.Statistics.BestYield
		}

		rules := make([]string, 0, len(r.StatesPruned))
		for rule := range r.StatesPruned {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			row.Pruned = append(row.Pruned, PruneCount{Rule: rule, Count: r.StatesPruned[rule]})
		}

		data.Rows = append(data.Rows, row)
		data.Statistics.StatesExplored += r.StatesExplored
		data.Statistics.Pruned += r.TotalPruned()
	}
	data.Statistics.Blueprints = len(result.Results)

	return data
}

// getBarColor returns color based on search status
func (hr *HTMLReport) getBarColor(r dto.SearchResult) string {
	switch {
	case r.Truncated:
		return "#FF9800" // Orange for lower bounds
	case r.Yield == 0:
		return "#9E9E9E" // Gray for blueprints that produce nothing
	default:
		return "#4CAF50"
	}
}

// formatDuration formats a time duration into human-readable format
func (hr *HTMLReport) formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "< 1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}

// writeHTML creates the HTML report
func writeHTML(w io.Writer, result *dto.BatchResult) error {
	if err := NewHTMLReport().Render(w, result); err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}
	return nil
}
