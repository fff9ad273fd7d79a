package notifier

import (
	"strings"
	"testing"

	"DugoutEdge/internal/model"
)

func TestFormatPassReportIncludesSkipped(t *testing.T) {
	opps := []model.Opportunity{{
		Matchup:     "BOS @ NYY",
		Market:      model.MarketMoneyline,
		Selection:   "NYY",
		Odds:        -150,
		ModelProb:   0.654,
		ImpliedProb: 0.600,
		Edge:        0.082,
		Confidence:  model.ConfidenceMedium,
		Stake:       337.50,
	}}
	skipped := []string{"402 form/SF: data unavailable"}

	report := FormatPassReport(opps, nil, 2, skipped)
	if !strings.Contains(report, "Games analyzed: 2 (1 skipped)") {
		t.Errorf("report missing skipped count:\n%s", report)
	}
	if !strings.Contains(report, "402 form/SF: data unavailable") {
		t.Errorf("report missing skipped reason line:\n%s", report)
	}
	if !strings.Contains(report, "NYY -150") {
		t.Errorf("report missing the value bet line:\n%s", report)
	}
}

func TestFormatPassReportNoSkipped(t *testing.T) {
	report := FormatPassReport(nil, nil, 3, nil)
	if strings.Contains(report, "skipped") || strings.Contains(report, "Skipped") {
		t.Errorf("report mentions skipped items when there are none:\n%s", report)
	}
	if !strings.Contains(report, "No value opportunities found.") {
		t.Errorf("empty pass must say so:\n%s", report)
	}
}

func TestFormatSkipped(t *testing.T) {
	if got := FormatSkipped(nil); got != "" {
		t.Errorf("FormatSkipped(nil) = %q, want empty", got)
	}
	got := FormatSkipped([]string{"quotes: data unavailable"})
	if !strings.Contains(got, "Skipped") || !strings.Contains(got, "quotes: data unavailable") {
		t.Errorf("FormatSkipped output = %q", got)
	}
}
