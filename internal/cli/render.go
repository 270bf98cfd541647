package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/sector-sift/internal/model"
)

// FormatPercent renders a fraction as a whole percentage.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// RenderResult renders a single classification.
func RenderResult(name string, result model.ClassificationResult) string {
	industry := SuccessStyle.Render(result.Industry)
	if result.IsUnclassified() {
		industry = WarningStyle.Render(result.Industry)
	}

	lines := []string{
		BoldStyle.Render("Industry:   ") + industry,
		BoldStyle.Render("Confidence: ") + FormatPercent(result.Confidence),
		BoldStyle.Render("Method:     ") + result.Classifier,
	}
	if len(result.MatchedTerms) > 0 {
		lines = append(lines, BoldStyle.Render("Matched:    ")+strings.Join(result.MatchedTerms, ", "))
	}

	title := "Classification"
	if strings.TrimSpace(name) != "" {
		title = name
	}
	return RenderBox(title, strings.Join(lines, "\n"))
}

// RenderRunSummary renders the totals of a batch run.
func RenderRunSummary(run *model.Run) string {
	lines := []string{
		fmt.Sprintf("%s %d records classified with %s", ChartIcon, run.Total, run.Classifier),
	}
	if run.Labeled > 0 {
		lines = append(lines, fmt.Sprintf("Accuracy: %s (%d of %d labeled records)",
			BoldStyle.Render(FormatPercent(run.Accuracy())), run.Correct, run.Labeled))
	} else {
		lines = append(lines, SubtleStyle.Render("No records carry an industry label; accuracy not computed."))
	}
	if run.Failed > 0 {
		lines = append(lines, FormatWarning(fmt.Sprintf("%d records failed to classify", run.Failed)))
	}
	if run.ID != "" {
		lines = append(lines, SubtleStyle.Render("Run ID: "+run.ID))
	}

	return RenderBox("Batch Summary", strings.Join(lines, "\n"))
}

// RenderTable lays out rows under a header with padded columns.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		rendered := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	var b strings.Builder
	b.WriteString(renderRow(header, TableHeaderStyle))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, lipgloss.NewStyle()))
	}
	return b.String()
}

// RenderResults renders per-row batch results.
func RenderResults(results []model.RunResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		predicted := r.PredictedIndustry
		if r.Error != "" {
			predicted = ErrorStyle.Render(ErrorIcon + " " + r.Error)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Row),
			r.CompanyName,
			r.OriginalIndustry,
			predicted,
			FormatPercent(r.Confidence),
		})
	}
	return RenderTable([]string{"Row", "Company", "Original", "Predicted", "Confidence"}, rows)
}

// RenderRuns renders a list of saved runs.
func RenderRuns(runs []model.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		accuracy := "-"
		if r.Labeled > 0 {
			accuracy = FormatPercent(r.Accuracy())
		}
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Classifier,
			r.Source,
			fmt.Sprintf("%d", r.Total),
			accuracy,
		})
	}
	return RenderTable([]string{"ID", "Started", "Method", "Source", "Records", "Accuracy"}, rows)
}

// RenderRules renders a rule table.
func RenderRules(table model.RuleTable) string {
	rows := make([][]string, 0, len(table))
	for i, rule := range table {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rule.Label,
			strings.Join(rule.Terms, ", "),
		})
	}
	return RenderTable([]string{"#", "Industry", "Terms"}, rows)
}
