package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// reportTemplates is parsed once at startup; a broken embedded template is a
// programming error, not a runtime condition.
var reportTemplates = template.Must(template.New("report").Funcs(template.FuncMap{
	"plainDirection": contract.GetPlainDirectionLabel,
	"metric":         func(s string) schema.Metric { return schema.Metric(s) },
	"percent": func(ratio float64) template.HTML {
		// The value is derived only from a float; mark it safe so the
		// leading "+" is not escaped to "&#43;".
		return template.HTML(fmt.Sprintf("%+.1f%%", ratio*100))
	},
}).ParseFS(templatesFS, "templates/*.html.tmpl"))

// summaryPage is the template context for the single-subject report.
type summaryPage struct {
	Summary *schema.UserSummary
	Metrics []schema.Metric
	Kinds   []schema.EventKind
	Titles  map[schema.EventKind]string
}

// comparisonPage is the template context for the multi-subject report.
type comparisonPage struct {
	Comparison schema.ComparisonReport
	Metrics    []schema.Metric
	Subjects   []string
	SpanStart  time.Time
	SpanEnd    time.Time
}

// printSummaryHTML renders the single-subject HTML report.
func printSummaryHTML(summary *schema.UserSummary, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	page := summaryPage{
		Summary: summary,
		Metrics: schema.AllMetrics,
		Kinds:   schema.AllEventKinds,
		Titles:  kindTitles,
	}
	if err := reportTemplates.ExecuteTemplate(file, "summary.html.tmpl", page); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote HTML to %s\n", cfg.OutputFile)
	}
	return nil
}

// printComparisonHTML renders the multi-subject HTML report.
func printComparisonHTML(comparison schema.ComparisonReport, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	// Subjects in ranked total-activity order for a stable page layout.
	var subjects []string
	for _, ranking := range comparison.Rankings {
		if ranking.Measure != schema.RankTotalActivity {
			continue
		}
		for _, entry := range ranking.Entries {
			subjects = append(subjects, entry.Subject)
		}
	}

	page := comparisonPage{
		Comparison: comparison,
		Metrics:    schema.AllMetrics,
		Subjects:   subjects,
	}
	if n := len(comparison.UnionPeriods); n > 0 {
		page.SpanStart = comparison.UnionPeriods[0].Start
		page.SpanEnd = comparison.UnionPeriods[n-1].End
	}
	if err := reportTemplates.ExecuteTemplate(file, "compare.html.tmpl", page); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote HTML to %s\n", cfg.OutputFile)
	}
	return nil
}
