package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/soltixdb/finsight/internal/analytics/anomaly"
	"github.com/soltixdb/finsight/internal/analytics/trend"
	"github.com/soltixdb/finsight/internal/insights"
)

const (
	labelWidth = 12
	dateLayout = "2006-01-02"
)

// Renderer writes human-readable or JSON output. Colors are only emitted
// when the writer is a terminal.
type Renderer struct {
	w       io.Writer
	styles  Styles
	printer *message.Printer
	title   cases.Caser
}

// New creates a Renderer formatting numbers for English.
func New(w io.Writer) *Renderer {
	return NewWithLanguage(w, language.English)
}

// NewWithLanguage creates a Renderer formatting numbers and titles for tag.
func NewWithLanguage(w io.Writer, tag language.Tag) *Renderer {
	return &Renderer{
		w:       w,
		styles:  newStyles(lipgloss.NewRenderer(w)),
		printer: message.NewPrinter(tag),
		title:   cases.Title(tag),
	}
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(data))
	return err
}

// Number formats v with two decimals and locale digit grouping.
func (r *Renderer) Number(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

// Category title-cases a category label.
func (r *Renderer) Category(s string) string {
	return r.title.String(s)
}

func (r *Renderer) row(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(r.styles.Label.Render(fmt.Sprintf("%-*s", labelWidth, label)))
	b.WriteString(value)
	b.WriteByte('\n')
}

func (r *Renderer) flush(b *strings.Builder) error {
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Trend writes a single trend result under heading.
func (r *Renderer) Trend(heading string, res *trend.Result) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(heading))
	b.WriteByte('\n')
	r.writeResult(&b, res)
	return r.flush(&b)
}

func (r *Renderer) writeResult(b *strings.Builder, res *trend.Result) {
	r.row(b, "Type", r.styles.Bold.Render(string(res.Type)))
	r.row(b, "Direction", r.direction(res.Direction))
	r.row(b, "Strength", r.printer.Sprintf("%.2f", res.Strength))
	r.row(b, "Volatility", r.printer.Sprintf("%.2f", res.Volatility))

	s := res.Statistics
	r.row(b, "Mean", r.Number(s.Mean))
	r.row(b, "Median", r.Number(s.Median))
	r.row(b, "Std dev", r.Number(s.StdDev))
	r.row(b, "Range", fmt.Sprintf("%s to %s", r.Number(s.Min), r.Number(s.Max)))

	if res.CyclicalPattern != nil {
		r.row(b, "Cycle", fmt.Sprintf("every %d periods, amplitude %s",
			res.CyclicalPattern.Period, r.Number(res.CyclicalPattern.Amplitude)))
	}

	f := res.Forecast
	r.row(b, "Next", r.Number(f.Next))
	r.row(b, "Next 3", r.numbers(f.Next3[:]))
	r.row(b, "Next 6", r.numbers(f.Next6[:]))
}

func (r *Renderer) numbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = r.Number(v)
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) direction(d trend.Direction) string {
	switch d {
	case trend.DirectionUp:
		return r.styles.Success.Render("up")
	case trend.DirectionDown:
		return r.styles.Error.Render("down")
	default:
		return r.styles.Subtle.Render(string(d))
	}
}

// Comparison writes both period results and the change between them.
func (r *Renderer) Comparison(c *trend.Comparison) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Period 1"))
	b.WriteByte('\n')
	r.writeResult(&b, c.Period1)
	b.WriteByte('\n')
	b.WriteString(r.styles.Title.Render("Period 2"))
	b.WriteByte('\n')
	r.writeResult(&b, c.Period2)
	b.WriteByte('\n')
	b.WriteString(r.styles.Title.Render("Change"))
	b.WriteByte('\n')
	r.row(&b, "Average", fmt.Sprintf("%s (%s%%)", r.signed(c.AverageChange), r.signed(c.AverageChangePercentage)))
	r.row(&b, "Volatility", r.signed(c.VolatilityChange))
	r.row(&b, "Shift", r.styles.Bold.Render(string(c.TrendShift)))
	return r.flush(&b)
}

func (r *Renderer) signed(v float64) string {
	if v >= 0 {
		return "+" + r.Number(v)
	}
	return r.Number(v)
}

// Anomalies writes one line per anomaly.
func (r *Renderer) Anomalies(list []anomaly.Anomaly) error {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString(r.styles.Success.Render("No anomalies found."))
		b.WriteByte('\n')
		return r.flush(&b)
	}

	b.WriteString(r.styles.Title.Render(r.printer.Sprintf("%d anomalies", len(list))))
	b.WriteByte('\n')
	for _, a := range list {
		sev := r.styles.forAnomaly(a.Severity).Render(fmt.Sprintf("%-6s", a.Severity))
		line := fmt.Sprintf("  %s  %s  #%d  %s  %s  z=%s",
			sev, a.Point.Time.Format(dateLayout), a.Index, a.Type,
			r.Number(a.Point.Value), r.printer.Sprintf("%.2f", a.Deviation))
		b.WriteString(line)
		if a.Expected != nil {
			b.WriteString(r.styles.Subtle.Render(fmt.Sprintf("  expected %s to %s",
				r.Number(a.Expected.Min), r.Number(a.Expected.Max))))
		}
		b.WriteByte('\n')
	}
	return r.flush(&b)
}

// Insights writes the insights in the order given.
func (r *Renderer) Insights(list []insights.Insight) error {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString(r.styles.Success.Render("No insights for this period."))
		b.WriteByte('\n')
		return r.flush(&b)
	}

	for i, in := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		tag := r.styles.forInsight(in.Severity).Render(strings.ToUpper(string(in.Severity)))
		b.WriteString(fmt.Sprintf("%s  %s\n", tag, r.styles.Bold.Render(in.Title)))
		b.WriteString("  " + in.Description + "\n")
		if in.AffectedCategory != "" {
			r.row(&b, "Category", r.Category(in.AffectedCategory))
		}
		if in.Value != nil {
			r.row(&b, "Amount", r.Number(*in.Value))
		}
		if in.Recommendation != "" {
			r.row(&b, "Suggestion", in.Recommendation)
		}
	}
	return r.flush(&b)
}
