// Package store handles SQLite persistence of the course list.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/unigrade/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the course list.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			system TEXT NOT NULL,
			grade TEXT NOT NULL,
			credits TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_courses_position ON courses(position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadCourses returns the stored courses in list order. Rows that no longer
// decode into a course are skipped; the number skipped is returned.
func (s *Store) LoadCourses(ctx context.Context) ([]model.Course, int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, system, grade, credits FROM courses ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var courses []model.Course
	dropped := 0
	for rows.Next() {
		var c model.Course
		var id, system sql.NullString
		var name, grade, credits sql.NullString
		if err := rows.Scan(&id, &name, &system, &grade, &credits); err != nil {
			return nil, 0, err
		}
		c.ID = id.String
		c.System = model.GradingSystem(system.String)
		if !id.Valid || c.ID == "" || !c.System.Valid() {
			dropped++
			continue
		}
		c.Name = name.String
		c.Grade = grade.String
		c.Credits = credits.String
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return courses, dropped, nil
}

// SaveCourses replaces the stored list with courses.
func (s *Store) SaveCourses(ctx context.Context, courses []model.Course) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return err
	}
	if len(courses) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO courses (id, position, name, system, grade, credits, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		updatedAt := s.now().UTC().Format(time.RFC3339Nano)
		for i, c := range courses {
			if _, err = stmt.ExecContext(ctx, c.ID, i, c.Name, string(c.System), c.Grade, c.Credits, updatedAt); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ClearCourses removes every stored course.
func (s *Store) ClearCourses(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM courses`)
	return err
}
