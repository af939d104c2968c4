// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gateway is the admin client's access layer over the content API.
// Collection reads go through a degrading chain and never fail: the state
// store's TTL cache first, then the remote API (whose result is committed
// to the state store, the cache, and an on-disk snapshot), then the
// last-known-good snapshot, and finally an empty collection. Only a
// successful remote fetch populates the cache, so a degraded read is
// retried on the next call. Writes go straight to the API, surface their
// failures, and invalidate the domain's cache on success.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"elevatecms/internal/config"
	"elevatecms/internal/models"
	"elevatecms/internal/state"
)

const requestTimeout = 15 * time.Second

// Gateway talks to the content API on behalf of the admin client.
type Gateway struct {
	baseURL string
	token   string
	client  *http.Client
	state   *state.Store
	snaps   *snapshotStore
}

// New creates a gateway from the client-side configuration. The snapshot
// tier is active only when cfg.SnapshotDir is set.
func New(cfg *config.Config, st *state.Store) *Gateway {
	return &Gateway{
		baseURL: cfg.APIBaseURL,
		token:   cfg.APIToken,
		client:  &http.Client{Timeout: requestTimeout},
		state:   st,
		snaps:   newSnapshotStore(cfg.SnapshotDir),
	}
}

// SetToken replaces the bearer token used on subsequent requests. Called
// after login.
func (g *Gateway) SetToken(token string) {
	g.token = token
}

// apiError carries the HTTP status of a failed API call so callers can
// tell "not found" from "broken".
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.message, e.status)
}

// isNotFound reports whether err is an API 404.
func isNotFound(err error) bool {
	var ae *apiError
	return errors.As(err, &ae) && ae.status == http.StatusNotFound
}

// doJSON performs one API request. A non-nil body is sent as JSON; a
// non-nil out receives the decoded response. Non-2xx responses become an
// apiError built from the server's error envelope.
func (g *Gateway) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{status: resp.StatusCode, message: envelope.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// fetchList pulls one collection from the API and unwraps its list
// envelope ({"posts": [...]} and friends).
func fetchList[T any](ctx context.Context, g *Gateway, path, key string) ([]T, error) {
	var raw map[string]json.RawMessage
	if err := g.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var items []T
	if msg, ok := raw[key]; ok {
		if err := json.Unmarshal(msg, &items); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// listDomain runs the degrading read chain for one collection.
func listDomain[T any](ctx context.Context, g *Gateway, domain, path, key string) []T {
	if v, ok := g.state.GetCache(domain); ok {
		if items, ok := v.([]T); ok {
			return items
		}
	}

	items, err := fetchList[T](ctx, g, path, key)
	if err == nil {
		g.state.Set(domain, items)
		g.state.SetCache(domain, items)
		g.snaps.save(domain, items)
		return items
	}

	slog.Warn("remote fetch failed, degrading", "domain", domain, "error", err)
	var snap []T
	if g.snaps.load(domain, &snap) {
		g.state.Set(domain, snap)
		return snap
	}
	return []T{}
}

// invalidate drops the domain's cache so the next read refetches.
func (g *Gateway) invalidate(domain string) {
	g.state.ClearCache(domain)
}

// ListPosts returns the post metadata index.
func (g *Gateway) ListPosts(ctx context.Context) []models.Post {
	return listDomain[models.Post](ctx, g, state.DomainPosts, "/posts", "posts")
}

// GetPost loads one full post including its body. Returns nil for a slug
// the API does not know. When the fetch fails for any other reason the
// post's index entry is served instead, body-less, so the panel degrades
// rather than erroring.
func (g *Gateway) GetPost(ctx context.Context, slug string) (*models.Post, error) {
	var envelope struct {
		Post *models.Post `json:"post"`
	}
	err := g.doJSON(ctx, http.MethodGet, "/posts/"+slug, nil, &envelope)
	if err == nil {
		return envelope.Post, nil
	}
	if isNotFound(err) {
		return nil, nil
	}

	slog.Warn("post fetch failed, degrading to index entry", "slug", slug, "error", err)
	for _, p := range g.ListPosts(ctx) {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, err
}

// SavePost creates or updates a post and returns its saved metadata.
func (g *Gateway) SavePost(ctx context.Context, patch *models.PostPatch) (*models.Post, error) {
	var envelope struct {
		Post *models.Post `json:"post"`
	}
	if err := g.doJSON(ctx, http.MethodPost, "/posts", patch, &envelope); err != nil {
		return nil, err
	}
	g.invalidate(state.DomainPosts)
	return envelope.Post, nil
}

// DeletePost removes a post by slug.
func (g *Gateway) DeletePost(ctx context.Context, slug string) error {
	if err := g.doJSON(ctx, http.MethodDelete, "/posts/"+slug, nil, nil); err != nil {
		return err
	}
	g.invalidate(state.DomainPosts)
	return nil
}

// ListServicios returns the service listings.
func (g *Gateway) ListServicios(ctx context.Context) []models.Servicio {
	return listDomain[models.Servicio](ctx, g, state.DomainServicios, "/servicios", "servicios")
}

// SaveServicio creates or updates a servicio.
func (g *Gateway) SaveServicio(ctx context.Context, patch *models.ServicioPatch) (*models.Servicio, error) {
	var envelope struct {
		Servicio *models.Servicio `json:"servicio"`
	}
	if err := g.doJSON(ctx, http.MethodPost, "/servicios", patch, &envelope); err != nil {
		return nil, err
	}
	g.invalidate(state.DomainServicios)
	return envelope.Servicio, nil
}

// DeleteServicio removes a servicio by id.
func (g *Gateway) DeleteServicio(ctx context.Context, id int) error {
	if err := g.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/servicios/%d", id), nil, nil); err != nil {
		return err
	}
	g.invalidate(state.DomainServicios)
	return nil
}

// ListCasos returns the case studies.
func (g *Gateway) ListCasos(ctx context.Context) []models.Caso {
	return listDomain[models.Caso](ctx, g, state.DomainCasos, "/casos", "casos")
}

// SaveCaso creates or updates a caso.
func (g *Gateway) SaveCaso(ctx context.Context, patch *models.CasoPatch) (*models.Caso, error) {
	var envelope struct {
		Caso *models.Caso `json:"caso"`
	}
	if err := g.doJSON(ctx, http.MethodPost, "/casos", patch, &envelope); err != nil {
		return nil, err
	}
	g.invalidate(state.DomainCasos)
	return envelope.Caso, nil
}

// DeleteCaso removes a caso by id.
func (g *Gateway) DeleteCaso(ctx context.Context, id int) error {
	if err := g.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/casos/%d", id), nil, nil); err != nil {
		return err
	}
	g.invalidate(state.DomainCasos)
	return nil
}

// Settings fetches all four sections in parallel. Each section is guarded
// individually: a failing section comes back empty instead of failing the
// whole read.
func (g *Gateway) Settings(ctx context.Context) *models.Settings {
	if v, ok := g.state.GetCache(state.DomainSettings); ok {
		if settings, ok := v.(*models.Settings); ok {
			return settings
		}
	}

	settings := &models.Settings{}
	targets := map[string]*models.SettingsSection{
		"general": &settings.General,
		"social":  &settings.Social,
		"hero":    &settings.Hero,
		"seo":     &settings.SEO,
	}

	gr, gctx := errgroup.WithContext(ctx)
	for section, dst := range targets {
		gr.Go(func() error {
			var data models.SettingsSection
			if err := g.doJSON(gctx, http.MethodGet, "/settings/"+section, nil, &data); err != nil {
				slog.Warn("settings section fetch failed", "section", section, "error", err)
				data = models.SettingsSection{}
			}
			*dst = data
			return nil
		})
	}
	_ = gr.Wait()

	g.state.Set(state.DomainSettings, settings)
	g.state.SetCache(state.DomainSettings, settings)
	return settings
}

// SaveSettings merges a patch into one section and returns the merged
// section as stored.
func (g *Gateway) SaveSettings(ctx context.Context, section string, patch models.SettingsSection) (models.SettingsSection, error) {
	var envelope struct {
		Data models.SettingsSection `json:"data"`
	}
	if err := g.doJSON(ctx, http.MethodPost, "/settings/"+section, patch, &envelope); err != nil {
		return nil, err
	}
	g.invalidate(state.DomainSettings)
	return envelope.Data, nil
}

// ListMedia returns the media library index.
func (g *Gateway) ListMedia(ctx context.Context) []models.MediaItem {
	return listDomain[models.MediaItem](ctx, g, state.DomainMedia, "/media", "media")
}

// Stats aggregates posts, servicios, and casos fetched in parallel. Unlike
// the collection reads this fails as a whole when any constituent fetch
// fails: a dashboard built from partial numbers would lie.
func (g *Gateway) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		posts     []models.Post
		servicios []models.Servicio
		casos     []models.Caso
	)

	gr, gctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		var err error
		posts, err = fetchList[models.Post](gctx, g, "/posts", "posts")
		return err
	})
	gr.Go(func() error {
		var err error
		servicios, err = fetchList[models.Servicio](gctx, g, "/servicios", "servicios")
		return err
	})
	gr.Go(func() error {
		var err error
		casos, err = fetchList[models.Caso](gctx, g, "/casos", "casos")
		return err
	})
	if err := gr.Wait(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	stats := &models.Stats{}
	stats.Posts.Total = len(posts)
	for _, p := range posts {
		if p.Draft {
			stats.Posts.Drafts++
		} else {
			stats.Posts.Published++
		}
	}
	stats.Servicios.Total = len(servicios)
	for _, s := range servicios {
		if s.Active {
			stats.Servicios.Active++
		}
	}
	stats.Casos.Total = len(casos)
	for _, c := range casos {
		if c.Featured {
			stats.Casos.Featured++
		}
	}
	return stats, nil
}
