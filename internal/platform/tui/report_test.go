package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

func newReportModel(t *testing.T, width, height int) ReportModel {
	t.Helper()
	reqs, err := compat.LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	presets, err := device.LoadPresets("")
	if err != nil {
		t.Fatalf("LoadPresets() error = %v", err)
	}
	return NewReportModel(reqs, cat, presets, width, height)
}

func TestReportModelLoadsAllGames(t *testing.T) {
	m := newReportModel(t, 100, 30)

	if len(m.names) == 0 {
		t.Fatal("no device presets loaded")
	}
	if len(m.games) == 0 {
		t.Fatal("no games resolved from catalog and requirements")
	}
	if len(m.reports) != len(m.games) {
		t.Errorf("len(reports) = %d, expected %d", len(m.reports), len(m.games))
	}
	if !m.showSidebar {
		t.Error("sidebar should show at width 100")
	}
	if view := m.View(); view == "" {
		t.Error("View() is empty")
	}
}

func TestReportModelPresetCycle(t *testing.T) {
	m := newReportModel(t, 100, 30)
	if len(m.names) < 2 {
		t.Skip("needs at least two presets")
	}

	upd, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next := upd.(ReportModel)

	if next.cursor != 1 {
		t.Errorf("cursor = %d after tab, expected 1", next.cursor)
	}
	if len(next.reports) != len(next.games) {
		t.Errorf("reports not reloaded for the new preset")
	}
}

func TestReportModelNarrowCollapsesSidebar(t *testing.T) {
	m := newReportModel(t, 60, 20)

	if m.showSidebar {
		t.Error("sidebar should collapse below the width threshold")
	}
	if view := m.View(); view == "" {
		t.Error("narrow View() is empty")
	}
}

func TestWorstIssue(t *testing.T) {
	r := compat.Report{
		Issues: []compat.Issue{
			{Severity: compat.SeverityLow, Message: "minor"},
			{Severity: compat.SeverityHigh, Message: "major"},
			{Severity: compat.SeverityMedium, Message: "middling"},
		},
	}
	if got := worstIssue(r); got != "major" {
		t.Errorf("worstIssue() = %q, expected %q", got, "major")
	}
	if got := worstIssue(compat.Report{}); got != "-" {
		t.Errorf("worstIssue(empty) = %q, expected dash", got)
	}
}
