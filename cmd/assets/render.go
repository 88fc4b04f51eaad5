package main

import (
	"strconv"

	"vcdesk/internal/aggregator"
	"vcdesk/pkg/market"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	subtle = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	gain   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	loss   = lipgloss.AdaptiveColor{Light: "#E5484D", Dark: "#FF6369"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func summaryTable(base string, summaries []aggregator.Summary) string {
	t := newTable("VC", "UNITS", "RATE", "CHANGE")
	for _, s := range summaries {
		t.Row(s.VCType, formatFloat(s.Units), formatFloat(s.Rate), formatChange(s.Change))
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(base), t.String())
}

func assetTable(assets []market.Asset) string {
	t := newTable("ID", "VC", "UNITS", "RATE")
	for _, a := range assets {
		t.Row(a.ID(), a.VCType, formatFloat(a.Units), formatFloat(a.Rate))
	}
	return t.String()
}

func basesTable(agg *aggregator.Aggregator) string {
	t := newTable("BASE", "ASSETS")
	for _, base := range agg.Bases() {
		t.Row(base, strconv.Itoa(len(agg.Assets(base))))
	}
	return t.String()
}

func idsOf(assets []market.Asset, vcType string) []string {
	var ids []string
	for _, a := range assets {
		if a.VCType == vcType {
			ids = append(ids, a.ID())
		}
	}
	return ids
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatChange(change *float64) string {
	if change == nil {
		return "-"
	}
	s := strconv.FormatFloat(*change, 'f', 4, 64)
	switch {
	case *change > 0:
		return lipgloss.NewStyle().Foreground(gain).Render(s)
	case *change < 0:
		return lipgloss.NewStyle().Foreground(loss).Render(s)
	}
	return s
}
