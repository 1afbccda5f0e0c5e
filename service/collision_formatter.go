package service

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/hashscan/domain"
)

// CollisionFormatterImpl implements the CollisionOutputFormatter interface
type CollisionFormatterImpl struct{}

// NewCollisionFormatter creates a new collision output formatter
func NewCollisionFormatter() *CollisionFormatterImpl {
	return &CollisionFormatterImpl{}
}

// Format formats the collision response according to the specified format
func (f *CollisionFormatterImpl) Format(response *domain.CollisionResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	case domain.OutputFormatHTML:
		return f.formatHTML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *CollisionFormatterImpl) Write(response *domain.CollisionResponse, format domain.OutputFormat, writer io.Writer) error {
	formatted, err := f.Format(response, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, formatted)
	return err
}

// FormatResultLine renders one result as "<function> <capacity>: <rate>"
func FormatResultLine(r domain.EvaluationResult) string {
	return fmt.Sprintf("%s %d: %.2f", r.Function, r.Capacity, r.CollisionRate)
}

// formatText prints one line per selected result, then the summary sections when requested
func (f *CollisionFormatterImpl) formatText(response *domain.CollisionResponse) string {
	var builder strings.Builder
	for _, r := range response.Results {
		builder.WriteString(FormatResultLine(r))
		builder.WriteString("\n")
	}

	if !response.ShowSummary {
		return builder.String()
	}

	utils := NewFormatUtils()
	builder.WriteString("\n")
	builder.WriteString(utils.FormatMainHeader("Hash Collision Report"))

	summary := response.Summary
	builder.WriteString(utils.FormatSummaryStats([]StatItem{
		{"Corpus Entries", summary.CorpusSize},
		{"Duplicate Entries", summary.DuplicateEntries},
		{"Functions", summary.Functions},
		{"Capacities", summary.Capacities},
		{"Evaluations", summary.Evaluations},
		{"Perfect Evaluations", summary.PerfectEvaluations},
		{"Best Rate", utils.FormatRate(summary.BestRate)},
		{"Mode", summary.Mode},
		{"Selected", summary.Selected},
	}))

	if len(response.Functions) > 0 {
		builder.WriteString(utils.FormatSectionHeader("FUNCTIONS"))
		for _, fs := range response.Functions {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, fs.Function,
				fmt.Sprintf("best %s at %d, mean %s, %d perfect of %d",
					utils.FormatRate(fs.BestRate), fs.BestCapacity, utils.FormatRate(fs.MeanRate),
					fs.PerfectCapacities, fs.Evaluations)))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.Results) > 0 {
		builder.WriteString(utils.FormatSectionHeader("VERSUS UNIFORM HASH"))
		for _, r := range response.Results {
			quality := utils.GradeRate(r.CollisionRate, r.ExpectedRate)
			builder.WriteString(fmt.Sprintf("%s%s %d: %s (expected %s) %s%s%s\n",
				strings.Repeat(" ", SectionPadding), r.Function, r.Capacity,
				utils.FormatRate(r.CollisionRate), utils.FormatRate(r.ExpectedRate),
				utils.GetRateColor(quality), quality, ColorReset))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))

	builder.WriteString(utils.FormatSectionHeader("METADATA"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Corpus", strings.Join(response.CorpusSources, ", ")))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", response.GeneratedAt))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))

	return builder.String()
}

// formatCSV formats the selected results as CSV
func (f *CollisionFormatterImpl) formatCSV(response *domain.CollisionResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"Function", "Capacity", "CapacityKind", "CorpusSize", "BucketsUsed",
		"Collisions", "CollisionRate", "ExpectedRate"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, r := range response.Results {
		record := []string{
			r.Function,
			strconv.FormatInt(r.Capacity, 10),
			r.CapacityKind,
			strconv.Itoa(r.CorpusSize),
			strconv.Itoa(r.BucketsUsed),
			strconv.Itoa(r.Collisions),
			strconv.FormatFloat(r.CollisionRate, 'f', 6, 64),
			strconv.FormatFloat(r.ExpectedRate, 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}
	return builder.String(), nil
}

// formatHTML renders the report as a standalone HTML page
func (f *CollisionFormatterImpl) formatHTML(response *domain.CollisionResponse) (string, error) {
	funcMap := template.FuncMap{
		"percent": NewFormatUtils().FormatRate,
		"join":    strings.Join,
	}

	tmpl, err := template.New("collision_report").Funcs(funcMap).Parse(collisionHTMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, response); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.String(), nil
}

const collisionHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>hashscan collision report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f4f5fb;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .card {
            background: white;
            border-radius: 10px;
            padding: 24px;
            margin-bottom: 20px;
            box-shadow: 0 6px 20px rgba(0,0,0,0.08);
        }
        h1 { color: #667eea; }
        h2 { margin-bottom: 12px; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #eee; }
        th { background: #f8f9fb; }
        td.num { text-align: right; font-variant-numeric: tabular-nums; }
        .warning { color: #b7791f; }
        .meta { color: #777; font-size: 0.9em; }
    </style>
</head>
<body>
<div class="container">
    <div class="card">
        <h1>Hash Collision Report</h1>
        <p class="meta">Corpus: {{join .CorpusSources ", "}} &middot; Generated {{.GeneratedAt}} &middot; hashscan {{.Version}}</p>
        <p>{{.Summary.CorpusSize}} entries, {{.Summary.Functions}} functions, {{.Summary.Capacities}} capacities, {{.Summary.Evaluations}} evaluations. Best rate {{percent .Summary.BestRate}}.</p>
    </div>
    <div class="card">
        <h2>Results ({{.Summary.Mode}})</h2>
        <table>
            <tr><th>Function</th><th>Capacity</th><th>Kind</th><th>Collisions</th><th>Rate</th><th>Expected</th></tr>
            {{range .Results}}
            <tr><td>{{.Function}}</td><td class="num">{{.Capacity}}</td><td>{{.CapacityKind}}</td><td class="num">{{.Collisions}}</td><td class="num">{{percent .CollisionRate}}</td><td class="num">{{percent .ExpectedRate}}</td></tr>
            {{end}}
        </table>
    </div>
    <div class="card">
        <h2>Functions</h2>
        <table>
            <tr><th>Function</th><th>Best capacity</th><th>Best rate</th><th>Mean rate</th><th>Perfect</th></tr>
            {{range .Functions}}
            <tr><td>{{.Function}}</td><td class="num">{{.BestCapacity}}</td><td class="num">{{percent .BestRate}}</td><td class="num">{{percent .MeanRate}}</td><td class="num">{{.PerfectCapacities}} / {{.Evaluations}}</td></tr>
            {{end}}
        </table>
    </div>
    {{if .Warnings}}
    <div class="card">
        <h2>Warnings</h2>
        {{range .Warnings}}<p class="warning">{{.}}</p>{{end}}
    </div>
    {{end}}
</div>
</body>
</html>
`

// DigestFormatterImpl formats raw digests
type DigestFormatterImpl struct{}

// NewDigestFormatter creates a new digest formatter
func NewDigestFormatter() *DigestFormatterImpl {
	return &DigestFormatterImpl{}
}

// Write writes digests as "<function> <key>: <decimal>" lines, JSON or YAML
func (f *DigestFormatterImpl) Write(entries []domain.DigestEntry, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		for _, e := range entries {
			if _, err := fmt.Fprintf(writer, "%s %s: %s\n", e.Function, e.Key, e.Decimal); err != nil {
				return domain.NewOutputError("failed to write digest", err)
			}
		}
		return nil
	case domain.OutputFormatJSON:
		return WriteJSON(writer, entries)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, entries)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
