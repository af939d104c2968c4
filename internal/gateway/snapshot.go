// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// snapshotStore persists the last successful fetch of each domain as a
// JSON file, so the panel still has content to show when the API is
// unreachable. All methods are nil-safe: a gateway without a snapshot
// directory simply skips this tier.
type snapshotStore struct {
	dir string
}

func newSnapshotStore(dir string) *snapshotStore {
	if dir == "" {
		return nil
	}
	return &snapshotStore{dir: dir}
}

func (s *snapshotStore) path(domain string) string {
	return filepath.Join(s.dir, domain+".json")
}

// save writes the domain's value best-effort; a failed snapshot is logged
// and never fails the fetch that produced it.
func (s *snapshotStore) save(domain string, v any) {
	if s == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("snapshot marshal failed", "domain", domain, "error", err)
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		slog.Warn("snapshot dir create failed", "dir", s.dir, "error", err)
		return
	}
	if err := os.WriteFile(s.path(domain), data, 0o644); err != nil {
		slog.Warn("snapshot write failed", "domain", domain, "error", err)
	}
}

// load reads the domain's last-known-good value into out. Returns false
// when no usable snapshot exists.
func (s *snapshotStore) load(domain string, out any) bool {
	if s == nil {
		return false
	}
	data, err := os.ReadFile(s.path(domain))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("snapshot decode failed", "domain", domain, "error", err)
		return false
	}
	return true
}
