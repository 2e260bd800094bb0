// Package render formats analysis results for the terminal.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/soltixdb/finsight/internal/analytics/anomaly"
	"github.com/soltixdb/finsight/internal/insights"
)

var (
	primaryColor = lipgloss.Color("#FF6B6B")
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	infoColor    = lipgloss.Color("#95E1D3")
	subtleColor  = lipgloss.Color("#666666")
)

// Styles is the set of lipgloss styles bound to one output.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Bold    lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) Styles {
	return Styles{
		Title:   lg.NewStyle().Bold(true).Foreground(primaryColor),
		Label:   lg.NewStyle().Foreground(subtleColor),
		Subtle:  lg.NewStyle().Foreground(subtleColor),
		Success: lg.NewStyle().Foreground(successColor),
		Warning: lg.NewStyle().Foreground(warningColor),
		Error:   lg.NewStyle().Foreground(errorColor).Bold(true),
		Info:    lg.NewStyle().Foreground(infoColor),
		Bold:    lg.NewStyle().Bold(true),
	}
}

func (s Styles) forInsight(sev insights.Severity) lipgloss.Style {
	switch sev {
	case insights.SeverityCritical:
		return s.Error
	case insights.SeverityAlert, insights.SeverityWarning:
		return s.Warning
	default:
		return s.Info
	}
}

func (s Styles) forAnomaly(sev anomaly.Severity) lipgloss.Style {
	switch sev {
	case anomaly.SeverityHigh:
		return s.Error
	case anomaly.SeverityMedium:
		return s.Warning
	default:
		return s.Info
	}
}
