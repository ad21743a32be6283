package runs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/allocator/internal/database"
	"github.com/aristath/allocator/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultListLimit is used by List when limit is not positive.
const DefaultListLimit = 50

const runColumns = `id, kind, capital, risk_tolerance, asset_count, selected_json,
total_cost, total_return, total_risk, created_at`

// RunRepository stores optimization runs and their frontier points.
type RunRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, log zerolog.Logger) *RunRepository {
	return &RunRepository{
		db:  db,
		log: log.With().Str("repo", "run").Logger(),
	}
}

// Create inserts run, assigning a fresh ID and a creation time when unset.
// The stored run is returned.
func (r *RunRepository) Create(run Run) (Run, error) {
	run.ID = uuid.New().String()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.Truncate(time.Second)
	if run.Selected == nil {
		run.Selected = domain.Selection{}
	}

	selectedJSON, err := json.Marshal(run.Selected)
	if err != nil {
		return Run{}, fmt.Errorf("failed to marshal selection: %w", err)
	}

	var tolerance sql.NullInt64
	if run.RiskTolerance != nil {
		tolerance = sql.NullInt64{Int64: int64(*run.RiskTolerance), Valid: true}
	}

	_, err = r.db.Exec(`INSERT INTO optimization_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Capital, tolerance, run.AssetCount, string(selectedJSON),
		run.TotalCost, run.TotalReturn, run.TotalRisk, run.CreatedAt.Unix(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	r.log.Debug().Str("run_id", run.ID).Str("kind", string(run.Kind)).Msg("Run stored")
	return run, nil
}

// GetByID returns the run with the given ID, or domain.ErrNotFound.
func (r *RunRepository) GetByID(id string) (Run, error) {
	row := r.db.QueryRow("SELECT "+runColumns+" FROM optimization_runs WHERE id = ?", id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// List returns the most recent runs first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query("SELECT "+runColumns+
		" FROM optimization_runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// SaveFrontier replaces the frontier points of a run.
func (r *RunRepository) SaveFrontier(runID string, points []domain.FrontierPoint) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow("SELECT COUNT(*) FROM optimization_runs WHERE id = ?", runID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up run: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: run %s", domain.ErrNotFound, runID)
		}

		if _, err := tx.Exec("DELETE FROM frontier_points WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("failed to clear frontier points: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO frontier_points (run_id, tolerance, risk, expected_return)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare frontier insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range points {
			if _, err := stmt.Exec(runID, p.Tolerance, p.Risk, p.Return); err != nil {
				return fmt.Errorf("failed to insert frontier point %d: %w", p.Tolerance, err)
			}
		}
		return nil
	})
}

// GetFrontier returns the frontier points of a run ordered by tolerance.
// A run without points yields an empty slice.
func (r *RunRepository) GetFrontier(runID string) ([]domain.FrontierPoint, error) {
	rows, err := r.db.Query(`SELECT tolerance, risk, expected_return FROM frontier_points
		WHERE run_id = ? ORDER BY tolerance`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query frontier points: %w", err)
	}
	defer rows.Close()

	points := []domain.FrontierPoint{}
	for rows.Next() {
		var p domain.FrontierPoint
		if err := rows.Scan(&p.Tolerance, &p.Risk, &p.Return); err != nil {
			return nil, fmt.Errorf("failed to scan frontier point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frontier points: %w", err)
	}
	return points, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run          Run
		kind         string
		tolerance    sql.NullInt64
		selectedJSON string
		createdAt    int64
	)

	err := s.Scan(&run.ID, &kind, &run.Capital, &tolerance, &run.AssetCount, &selectedJSON,
		&run.TotalCost, &run.TotalReturn, &run.TotalRisk, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Kind = Kind(kind)
	run.CreatedAt = time.Unix(createdAt, 0)
	if tolerance.Valid {
		t := int(tolerance.Int64)
		run.RiskTolerance = &t
	}
	if err := json.Unmarshal([]byte(selectedJSON), &run.Selected); err != nil {
		return Run{}, fmt.Errorf("failed to unmarshal selection of run %s: %w", run.ID, err)
	}
	if run.Selected == nil {
		run.Selected = domain.Selection{}
	}
	return run, nil
}
