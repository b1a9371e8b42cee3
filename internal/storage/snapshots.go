// Package storage persists per-user expense and budget snapshots in a
// SQLite key-value table. Each user has two independent blobs, one per
// collection kind, replaced wholesale on every save.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const (
	kindExpenses = "expenses"
	kindBudgets  = "budgets"
)

// SnapshotStore is the durable persistence adapter behind the in-memory
// store. It is safe for concurrent use; *sql.DB does its own pooling.
type SnapshotStore struct {
	db *sql.DB
}

func Open(dbPath string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadExpenses returns the expense snapshot for userID, or nil when the
// user has never saved one.
func (s *SnapshotStore) LoadExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	payload, err := s.loadPayload(ctx, userID, kindExpenses)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	expenses, err := decodeExpenses(payload)
	if err != nil {
		return nil, fmt.Errorf("decode expense snapshot: %w", err)
	}
	return expenses, nil
}

// SaveExpenses replaces the expense snapshot for userID.
func (s *SnapshotStore) SaveExpenses(ctx context.Context, userID string, expenses []core.Expense) error {
	payload, err := encodeExpenses(expenses)
	if err != nil {
		return fmt.Errorf("encode expense snapshot: %w", err)
	}
	if err := s.savePayload(ctx, userID, kindExpenses, payload); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Expense snapshot saved",
		"user_id", userID,
		"count", len(expenses))
	return nil
}

// LoadBudgets returns the budget snapshot for userID, or nil when the
// user has never saved one.
func (s *SnapshotStore) LoadBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	payload, err := s.loadPayload(ctx, userID, kindBudgets)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	budgets, err := decodeBudgets(payload)
	if err != nil {
		return nil, fmt.Errorf("decode budget snapshot: %w", err)
	}
	return budgets, nil
}

// SaveBudgets replaces the budget snapshot for userID.
func (s *SnapshotStore) SaveBudgets(ctx context.Context, userID string, budgets []core.Budget) error {
	payload, err := encodeBudgets(budgets)
	if err != nil {
		return fmt.Errorf("encode budget snapshot: %w", err)
	}
	if err := s.savePayload(ctx, userID, kindBudgets, payload); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Budget snapshot saved",
		"user_id", userID,
		"count", len(budgets))
	return nil
}

func (s *SnapshotStore) loadPayload(ctx context.Context, userID, kind string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE user_id = ? AND kind = ?`,
		userID, kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	return payload, nil
}

func (s *SnapshotStore) savePayload(ctx context.Context, userID, kind string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, kind, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, kind)
		 DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		userID, kind, payload)
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", kind, err)
	}
	return nil
}
