// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// audit.go records content write events in the database. The content
// itself lives as files in the site repository, so the commit log knows
// WHAT changed; this table records WHO changed it through the admin panel.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Audit actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditStore handles content audit log operations.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Log records a content write event. Failures are logged and swallowed —
// auditing is best-effort and must never block a content write.
func (s *AuditStore) Log(domain, itemKey, action, actorEmail string) {
	_, err := s.db.Exec(`
		INSERT INTO content_audit_log (domain, item_key, action, actor_email)
		VALUES ($1, $2, $3, $4)
	`, domain, itemKey, action, actorEmail)
	if err != nil {
		slog.Warn("failed to log content write",
			"domain", domain,
			"item_key", itemKey,
			"action", action,
			"error", err,
		)
		return
	}
	slog.Debug("content write logged",
		"domain", domain,
		"item_key", itemKey,
		"action", action,
	)
}

// RecentEntries returns the most recent content write events, newest first.
// Limited to the specified count.
func (s *AuditStore) RecentEntries(limit int) ([]AuditEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, domain, item_key, action, actor_email, occurred_at
		FROM content_audit_log
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Domain, &e.ItemKey, &e.Action, &e.ActorEmail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AuditEntry represents a single content write event.
type AuditEntry struct {
	ID         int64
	Domain     string
	ItemKey    string
	Action     string
	ActorEmail string
	OccurredAt time.Time
}
