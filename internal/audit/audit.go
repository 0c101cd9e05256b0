// Package audit keeps a local record of mutating admin actions. The entity
// data itself lives behind the remote API; this log is supplementary, so
// write failures are logged and never surfaced to the user.
package audit

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Log struct {
	db *sql.DB
}

type Entry struct {
	ID        int64
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	CreatedAt time.Time
}

func Open(dataSourceName string) (*Log, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Log{db: db}, nil
}

func (l *Log) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		actor TEXT NOT NULL,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		entity_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := l.db.Exec(query)
	if err != nil {
		slog.Error("Error creating audit schema", "error", err)
		return err
	}
	return nil
}

// Record stores one admin action, e.g. ("jane@lab", "delete", "package", "x1").
func (l *Log) Record(ctx context.Context, actor, action, entity, entityID string) {
	query := `INSERT INTO audit_log (actor, action, entity, entity_id, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	if _, err := l.db.ExecContext(ctx, query, actor, action, entity, entityID); err != nil {
		slog.Error("Failed to record audit entry", "action", action, "entity", entity, "error", err)
	}
}

// Recent returns the newest entries, most recent first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, actor, action, entity, COALESCE(entity_id, ''), created_at FROM audit_log ORDER BY id DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *Log) Close() error {
	return l.db.Close()
}
