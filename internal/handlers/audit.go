// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"elevatecms/internal/store"
)

const defaultAuditLimit = 50

// Audit serves the content write history to administrators.
type Audit struct {
	store *store.AuditStore
}

// NewAudit creates the audit handler group. A nil store disables the
// endpoint (responds 404), for deployments without PostgreSQL.
func NewAudit(auditStore *store.AuditStore) *Audit {
	return &Audit{store: auditStore}
}

// Recent handles GET /api/audit?limit=N.
func (a *Audit) Recent(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		respondError(w, http.StatusNotFound, "audit log not configured")
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := a.store.RecentEntries(limit)
	if err != nil {
		slog.Error("audit query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if entries == nil {
		entries = []store.AuditEntry{}
	}
	respond(w, http.StatusOK, map[string]any{"entries": entries})
}
