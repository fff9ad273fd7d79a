package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"DugoutEdge/internal/model"
)

func TestSQLiteRecordPass(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder() error: %v", err)
	}
	defer r.Close()

	pass := &PassSummary{
		PassID:        "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		StartedAt:     time.Now(),
		Events:        2,
		Opportunities: 1,
		Parlays:       1,
		Skipped:       1,
	}
	opps := []model.Opportunity{{
		EventID: "401", Matchup: "BOS @ NYY",
		Market: model.MarketMoneyline, Side: model.SideHome,
		Selection: "NYY", Odds: -150,
		ModelProb: 0.68, ImpliedProb: 0.60, Edge: 0.13,
		Confidence: model.ConfidenceMedium, StakeFraction: 0.05, Stake: 500,
	}}
	parlays := []model.ParlayCombination{{
		Pattern: "pitcher_dominance", Description: "G. Cole Over Ks + NYY ML",
		Legs: []model.ParlayLeg{
			{EventID: "401", Market: model.MarketPlayerProp, Selection: "G. Cole Over 6.5 Ks", Odds: -120, Probability: 0.8},
			{EventID: "401", Market: model.MarketMoneyline, Selection: "NYY ML", Odds: -150, Probability: 0.6},
		},
		Probability: 0.74, DecimalOdds: 3.06, AmericanOdds: 206, Payout: 306,
		Risk: model.RiskLow,
	}}
	skipped := []SkippedItem{{EventID: "402", Stage: "quotes", Reason: "data unavailable"}}

	if err := r.RecordPass(pass, opps, parlays, skipped); err != nil {
		t.Fatalf("RecordPass() error: %v", err)
	}

	for table, want := range map[string]int{
		"analysis_passes": 1,
		"opportunities":   1,
		"parlays":         1,
		"skipped_items":   1,
	} {
		var n int
		if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Errorf("%s rows = %d, want %d", table, n, want)
		}
	}

	var legs string
	if err := r.db.QueryRow("SELECT legs FROM parlays").Scan(&legs); err != nil {
		t.Fatalf("read legs: %v", err)
	}
	if legs == "" || legs == "null" {
		t.Errorf("legs column empty: %q", legs)
	}
}
