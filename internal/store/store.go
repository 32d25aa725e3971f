package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mauv0809/padel-tournament/internal/padel"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// mapErr translates driver errors into domain errors. Both the sqlite and the
// libsql drivers only expose constraint failures through their messages.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", what, padel.ErrNotFound)
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "PRIMARY KEY constraint failed"):
		return fmt.Errorf("%s: %w", what, padel.ErrConflict)
	case isForeignKeyErr(err):
		return fmt.Errorf("%s references a missing row: %w", what, padel.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isForeignKeyErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func expectRows(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, padel.ErrNotFound)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func unix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}
