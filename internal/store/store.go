package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// DefaultTitle is used when a workout is saved without a title
const DefaultTitle = "Untitled Workout"

var (
	ErrNotFound        = errors.New("workout not found")
	ErrBuiltinReadOnly = errors.New("built-in workouts cannot be modified")
)

// Store keeps user-saved workouts in a SQLite database at dir/workouts.db.
// Every write runs in a transaction, so a failed save or delete leaves the
// previously stored workouts untouched.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (or creates) the workout database in dir
func Open(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		panic("Store: logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "workouts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening workout db: %w", err)
	}
	// A single connection serialises writers
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS workouts (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		plan        TEXT NOT NULL,
		created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating workouts table: %w", err)
	}

	logger.Printf("Store: opened %s", dbPath)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all saved workouts, oldest first. Rows whose plan cannot be
// decoded are logged and skipped.
func (s *Store) List(ctx context.Context) ([]workout.WorkoutInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, plan FROM workouts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()

	var result []workout.WorkoutInfo
	for rows.Next() {
		var id, title, description, planJSON string
		if err := rows.Scan(&id, &title, &description, &planJSON); err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}
		info, err := decode(id, title, description, planJSON)
		if err != nil {
			s.logger.Printf("Store: skipping corrupt workout %s: %v", id, err)
			continue
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	return result, nil
}

// Get returns the saved workout with the given id
func (s *Store) Get(ctx context.Context, id workout.WorkoutID) (workout.WorkoutInfo, error) {
	var title, description, planJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT title, description, plan FROM workouts WHERE id = ?`, string(id),
	).Scan(&title, &description, &planJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return workout.WorkoutInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return workout.WorkoutInfo{}, fmt.Errorf("loading workout %s: %w", id, err)
	}
	return decode(string(id), title, description, planJSON)
}

// Save validates plan and stores it under a new custom id
func (s *Store) Save(ctx context.Context, plan workout.WorkoutPlan, title, description string) (workout.WorkoutInfo, error) {
	if err := workout.Validate(plan); err != nil {
		return workout.WorkoutInfo{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	info := workout.WorkoutInfo{
		ID:          workout.WorkoutID(workout.CustomIDPrefix + uuid.NewString()),
		Title:       title,
		Description: strings.TrimSpace(description),
		Plan:        plan,
		IsCustom:    true,
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return workout.WorkoutInfo{}, fmt.Errorf("encoding plan: %w", err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (id, title, description, plan) VALUES (?, ?, ?, ?)`,
			string(info.ID), info.Title, info.Description, string(planJSON),
		)
		return err
	})
	if err != nil {
		return workout.WorkoutInfo{}, fmt.Errorf("saving workout: %w", err)
	}

	s.logger.Printf("Store: saved %q as %s", info.Title, info.ID)
	return info, nil
}

// Delete removes a saved workout. Built-in ids are rejected.
func (s *Store) Delete(ctx context.Context, id workout.WorkoutID) error {
	if !id.IsCustom() {
		return fmt.Errorf("%w: %s", ErrBuiltinReadOnly, id)
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, string(id))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}

	s.logger.Printf("Store: deleted %s", id)
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func decode(id, title, description, planJSON string) (workout.WorkoutInfo, error) {
	var plan workout.WorkoutPlan
	if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
		return workout.WorkoutInfo{}, fmt.Errorf("decoding plan of %s: %w", id, err)
	}
	return workout.WorkoutInfo{
		ID:          workout.WorkoutID(id),
		Title:       title,
		Description: description,
		Plan:        plan,
		IsCustom:    true,
	}, nil
}
