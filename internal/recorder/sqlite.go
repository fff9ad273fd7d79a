package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"DugoutEdge/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_passes (
			pass_id       TEXT PRIMARY KEY,
			started_at    INTEGER NOT NULL,
			events        INTEGER,
			opportunities INTEGER,
			parlays       INTEGER,
			skipped       INTEGER,
			stale_data    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_passes_ts ON analysis_passes(started_at)`,

		`CREATE TABLE IF NOT EXISTS opportunities (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			pass_id        TEXT NOT NULL,
			event_id       TEXT,
			matchup        TEXT,
			market         TEXT,
			side           TEXT,
			selection      TEXT,
			odds           INTEGER,
			model_prob     REAL,
			implied_prob   REAL,
			edge           REAL,
			confidence     TEXT,
			stake_fraction REAL,
			stake          REAL,
			stale_data     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_opps_pass ON opportunities(pass_id)`,

		`CREATE TABLE IF NOT EXISTS parlays (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			pass_id       TEXT NOT NULL,
			pattern       TEXT,
			description   TEXT,
			probability   REAL,
			decimal_odds  REAL,
			american_odds INTEGER,
			payout        REAL,
			risk          TEXT,
			legs          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parlays_pass ON parlays(pass_id)`,

		`CREATE TABLE IF NOT EXISTS skipped_items (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			pass_id  TEXT NOT NULL,
			event_id TEXT,
			stage    TEXT,
			reason   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skipped_pass ON skipped_items(pass_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordPass writes one analysis run and everything it produced in a
// single transaction.
func (r *SQLiteRecorder) RecordPass(pass *PassSummary, opps []model.Opportunity, parlays []model.ParlayCombination, skipped []SkippedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	startedAt := pass.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	if _, err := tx.Exec(`INSERT INTO analysis_passes
		(pass_id, started_at, events, opportunities, parlays, skipped, stale_data)
		VALUES (?,?,?,?,?,?,?)`,
		pass.PassID, startedAt.Unix(), pass.Events,
		pass.Opportunities, pass.Parlays, pass.Skipped, boolInt(pass.StaleData),
	); err != nil {
		return fmt.Errorf("insert pass: %w", err)
	}

	for _, o := range opps {
		if _, err := tx.Exec(`INSERT INTO opportunities
			(pass_id, event_id, matchup, market, side, selection, odds,
			 model_prob, implied_prob, edge, confidence, stake_fraction, stake, stale_data)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			pass.PassID, o.EventID, o.Matchup, string(o.Market), string(o.Side),
			o.Selection, o.Odds, o.ModelProb, o.ImpliedProb, o.Edge,
			string(o.Confidence), o.StakeFraction, o.Stake, boolInt(o.StaleData),
		); err != nil {
			return fmt.Errorf("insert opportunity: %w", err)
		}
	}

	for _, p := range parlays {
		legs, err := json.Marshal(p.Legs)
		if err != nil {
			return fmt.Errorf("marshal legs: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO parlays
			(pass_id, pattern, description, probability, decimal_odds, american_odds, payout, risk, legs)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			pass.PassID, p.Pattern, p.Description, p.Probability,
			p.DecimalOdds, p.AmericanOdds, p.Payout, string(p.Risk), string(legs),
		); err != nil {
			return fmt.Errorf("insert parlay: %w", err)
		}
	}

	for _, s := range skipped {
		if _, err := tx.Exec(`INSERT INTO skipped_items
			(pass_id, event_id, stage, reason)
			VALUES (?,?,?,?)`,
			pass.PassID, s.EventID, s.Stage, s.Reason,
		); err != nil {
			return fmt.Errorf("insert skipped item: %w", err)
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
