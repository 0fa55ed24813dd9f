package experiment

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/schedsim/marisa/errors"
)

// Store persists sweep results to a SQLite database opened via db.Open,
// supplementing the original's text-only output (spec.md's Non-goals never
// exclude a structured results store) with a queryable history of
// schedulability curves across repeated studies.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already-migrated *sql.DB (see db.OpenWithMigrations).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveSweep records a completed sweep and every (scheduler, utilization)
// data point it produced, under a fresh UUID identifying the run.
func (s *Store) SaveSweep(cfg Config, results Results) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "begin sweep save")
	}

	_, err = tx.Exec(
		`INSERT INTO sweeps (id, cores, util_steps, trials_per_util, task_count, finished_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		id, cfg.Cores, cfg.UtilSteps, cfg.TrialsPerUtil, cfg.TaskCount,
	)
	if err != nil {
		tx.Rollback()
		return "", errors.Wrap(err, "insert sweep")
	}

	stmt, err := tx.Prepare(
		`INSERT INTO sweep_points (sweep_id, scheduler, util_num, util_den, schedulable_fraction, avg_cswitches, avg_migrations)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return "", errors.Wrap(err, "prepare sweep point insert")
	}
	defer stmt.Close()

	for _, series := range results.Schedulers {
		for i, util := range series.Util {
			_, err := stmt.Exec(
				id, series.Name, util.Num, util.Den,
				series.SchedulableFraction[i], series.AvgCswitches[i], series.AvgMigrations[i],
			)
			if err != nil {
				tx.Rollback()
				return "", errors.Wrapf(err, "insert sweep point for %s", series.Name)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit sweep save")
	}
	return id, nil
}

// SweepPoint is one (scheduler, utilization) row loaded back from the store.
type SweepPoint struct {
	Scheduler           string
	UtilNum, UtilDen    int64
	SchedulableFraction float64
	AvgCswitches        float64
	AvgMigrations       float64
}

// LoadSweep returns every point recorded for a sweep id, ordered by
// scheduler then utilization.
func (s *Store) LoadSweep(id string) ([]SweepPoint, error) {
	rows, err := s.db.Query(
		`SELECT scheduler, util_num, util_den, schedulable_fraction, avg_cswitches, avg_migrations
		 FROM sweep_points WHERE sweep_id = ? ORDER BY scheduler, util_num * 1.0 / util_den`,
		id,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "load sweep %s", id)
	}
	defer rows.Close()

	var points []SweepPoint
	for rows.Next() {
		var p SweepPoint
		if err := rows.Scan(&p.Scheduler, &p.UtilNum, &p.UtilDen, &p.SchedulableFraction, &p.AvgCswitches, &p.AvgMigrations); err != nil {
			return nil, errors.Wrap(err, "scan sweep point")
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
