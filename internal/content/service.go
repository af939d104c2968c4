// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the CMS content operations over the site
// repository. Posts live as markdown files with frontmatter plus an
// aggregate JSON index; servicios, casos, media, and settings live as
// JSON documents. Every write becomes a commit through the GitHub
// contents API, carries a version token (blob SHA) from the preceding
// read, and ends with a cache invalidation and an audit log entry.
package content

import (
	"context"
	"encoding/json"

	"elevatecms/internal/cache"
	"elevatecms/internal/github"
	"elevatecms/internal/store"
)

// Repository file paths, as laid out in the site repo.
const (
	postsIndexPath = "public/data/blog-posts.json"
	serviciosPath  = "content/data/servicios.json"
	casosPath      = "content/data/casos.json"
	mediaPath      = "content/data/media.json"
	blogDir        = "content/blog/"
	settingsDir    = "content/settings/"
)

// Cache domains.
const (
	domainPosts     = "posts"
	domainServicios = "servicios"
	domainCasos     = "casos"
	domainSettings  = "settings"
	domainMedia     = "media"
)

// Service executes content operations. The cache and audit stores are
// optional: a nil cache means every read goes to the GitHub API, a nil
// audit store means writes are not recorded.
type Service struct {
	gh    *github.Client
	cache *cache.ContentCache
	audit *store.AuditStore
}

// NewService creates a content service over the given GitHub client.
func NewService(gh *github.Client, cc *cache.ContentCache, audit *store.AuditStore) *Service {
	return &Service{gh: gh, cache: cc, audit: audit}
}

// cachedJSON attempts to decode a cached entry into out.
func (s *Service) cachedJSON(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// storeJSON serializes out into the cache. Errors are swallowed; caching
// is best-effort.
func (s *Service) storeJSON(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, data)
}

// invalidate clears a whole cache domain after a write.
func (s *Service) invalidate(ctx context.Context, domain string) {
	if s.cache != nil {
		s.cache.InvalidateDomain(ctx, domain)
	}
}

// logWrite records a content write in the audit log.
func (s *Service) logWrite(domain, itemKey, action, actor string) {
	if s.audit != nil {
		s.audit.Log(domain, itemKey, action, actor)
	}
}

// marshalIndent matches the two-space indentation the site repo's JSON
// files were originally committed with, keeping diffs clean.
func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
