package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pitchlab/salestrainer/internal/persona"
)

// ErrScoreNotFound is returned when a session has no archived score.
var ErrScoreNotFound = errors.New("scoring: score not found")

// Archive persists score reports in SQLite for progress tracking. The engine
// itself never touches storage; callers archive results explicitly.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the score database at path and applies the
// schema.
func OpenArchive(path string) (*Archive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("scoring: archive path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scoring: open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("scoring: ping archive: %w", err)
	}
	a := &Archive{db: db}
	if err := a.applySchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) applySchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS call_scores (
			session_id TEXT NOT NULL,
			call_type TEXT NOT NULL,
			overall REAL NOT NULL,
			talk_ratio_score REAL NOT NULL,
			discovery_score REAL NOT NULL,
			objection_score REAL NOT NULL,
			confidence_score REAL NOT NULL,
			cta_score REAL NOT NULL,
			mode TEXT NOT NULL,
			report_json TEXT NOT NULL,
			scored_at TEXT NOT NULL,
			PRIMARY KEY (session_id, scored_at)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_call_scores_call_type ON call_scores(call_type)`,
		`CREATE INDEX IF NOT EXISTS idx_call_scores_scored_at ON call_scores(scored_at)`,
	}
	for _, statement := range statements {
		if _, err := a.db.Exec(statement); err != nil {
			return fmt.Errorf("scoring: apply archive schema: %w", err)
		}
	}
	return nil
}

// Save archives one score report under its session ID. Re-scoring the same
// session inserts a new row; the latest row supersedes earlier ones.
func (a *Archive) Save(ctx context.Context, sessionID string, score *CallScore) error {
	report, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("scoring: marshal report: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO call_scores (session_id, call_type, overall, talk_ratio_score,
			discovery_score, objection_score, confidence_score, cta_score, mode,
			report_json, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, string(score.CallType), score.Overall,
		score.TalkRatio.Score, score.Discovery.Score, score.Objection.Score,
		score.Confidence.Score, score.CTA.Score, string(score.Mode),
		string(report), score.ScoredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("scoring: insert score: %w", err)
	}
	return nil
}

// Latest returns the most recent archived score for a session.
func (a *Archive) Latest(ctx context.Context, sessionID string) (*CallScore, error) {
	var report string
	err := a.db.QueryRowContext(ctx,
		`SELECT report_json FROM call_scores WHERE session_id = ? ORDER BY scored_at DESC LIMIT 1`,
		sessionID).Scan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrScoreNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("scoring: load score: %w", err)
	}
	var score CallScore
	if err := json.Unmarshal([]byte(report), &score); err != nil {
		return nil, fmt.Errorf("scoring: unmarshal report: %w", err)
	}
	return &score, nil
}

// ProgressReport aggregates archived scores per call type.
type ProgressReport struct {
	CallType       persona.CallType `json:"call_type"`
	Calls          int              `json:"calls"`
	AverageOverall float64          `json:"average_overall"`
	BestOverall    float64          `json:"best_overall"`
	AvgTalkRatio   float64          `json:"avg_talk_ratio"`
	AvgDiscovery   float64          `json:"avg_discovery"`
	AvgObjection   float64          `json:"avg_objection"`
	AvgConfidence  float64          `json:"avg_confidence"`
	AvgCTA         float64          `json:"avg_cta"`
}

// Progress aggregates every archived score into per-call-type rollups, most
// practiced call type first.
func (a *Archive) Progress(ctx context.Context) ([]ProgressReport, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT call_type, COUNT(*), AVG(overall), MAX(overall),
			AVG(talk_ratio_score), AVG(discovery_score), AVG(objection_score),
			AVG(confidence_score), AVG(cta_score)
		FROM call_scores
		GROUP BY call_type
		ORDER BY COUNT(*) DESC, call_type ASC`)
	if err != nil {
		return nil, fmt.Errorf("scoring: progress query: %w", err)
	}
	defer rows.Close()

	var reports []ProgressReport
	for rows.Next() {
		var r ProgressReport
		var callType string
		if err := rows.Scan(&callType, &r.Calls, &r.AverageOverall, &r.BestOverall,
			&r.AvgTalkRatio, &r.AvgDiscovery, &r.AvgObjection,
			&r.AvgConfidence, &r.AvgCTA); err != nil {
			return nil, fmt.Errorf("scoring: scan progress row: %w", err)
		}
		r.CallType = persona.CallType(callType)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scoring: progress rows: %w", err)
	}
	return reports, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
