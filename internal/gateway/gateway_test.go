// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"elevatecms/internal/config"
	"elevatecms/internal/models"
	"elevatecms/internal/state"
)

// fakeAPI is a minimal content API used as the gateway's remote. Handlers
// are swappable per test; hits counts every request received.
type fakeAPI struct {
	mux  *http.ServeMux
	hits atomic.Int64

	mu       sync.Mutex
	lastAuth string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{mux: http.NewServeMux()}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	f.mu.Lock()
	f.lastAuth = r.Header.Get("Authorization")
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeAPI) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeAPI) respond(pattern string, v any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	})
}

func (f *fakeAPI) fail(pattern string, status int, msg string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	})
}

func testGateway(t *testing.T, api *fakeAPI) (*Gateway, *state.Store) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	st := state.New()
	g := New(&config.Config{APIBaseURL: srv.URL, APIToken: "test-token"}, st)
	return g, st
}

func samplePosts() []models.Post {
	return []models.Post{
		{Slug: "hola", Title: "Hola", Draft: false},
		{Slug: "borrador", Title: "Borrador", Draft: true},
	}
}

func TestListPostsFetchesAndCaches(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	g, st := testGateway(t, api)

	posts := g.ListPosts(context.Background())
	if len(posts) != 2 || posts[0].Slug != "hola" {
		t.Fatalf("posts = %+v", posts)
	}
	if got := api.auth(); got != "Bearer test-token" {
		t.Errorf("auth header = %q", got)
	}

	// Second read must come from the cache, not the network.
	before := api.hits.Load()
	again := g.ListPosts(context.Background())
	if len(again) != 2 {
		t.Fatalf("cached posts = %+v", again)
	}
	if api.hits.Load() != before {
		t.Errorf("cache miss: %d extra requests", api.hits.Load()-before)
	}

	// The state store carries the fetched collection.
	if v := st.Get(state.DomainPosts); v == nil {
		t.Error("state not populated after fetch")
	}
}

func TestListPostsFallsBackToSnapshot(t *testing.T) {
	dir := t.TempDir()

	// First gateway fetches successfully and leaves a snapshot behind.
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	srv := httptest.NewServer(api)
	g := New(&config.Config{APIBaseURL: srv.URL, SnapshotDir: dir}, state.New())
	if got := g.ListPosts(context.Background()); len(got) != 2 {
		t.Fatalf("seed fetch = %+v", got)
	}
	srv.Close()

	// Second gateway points at the now-dead server but shares the
	// snapshot directory.
	offline := New(&config.Config{APIBaseURL: srv.URL, SnapshotDir: dir}, state.New())
	posts := offline.ListPosts(context.Background())
	if len(posts) != 2 || posts[1].Slug != "borrador" {
		t.Errorf("snapshot fallback = %+v", posts)
	}
}

func TestListPostsDegradesToEmptyWithoutPoisoningCache(t *testing.T) {
	api := newFakeAPI()
	api.fail("GET /posts", http.StatusInternalServerError, "boom")
	g, st := testGateway(t, api)

	posts := g.ListPosts(context.Background())
	if posts == nil || len(posts) != 0 {
		t.Fatalf("posts = %#v, want empty non-nil slice", posts)
	}
	if _, ok := st.GetCache(state.DomainPosts); ok {
		t.Error("failed read must not populate the cache")
	}

	// The next read retries the network instead of serving the empty
	// result.
	before := api.hits.Load()
	g.ListPosts(context.Background())
	if api.hits.Load() == before {
		t.Error("degraded read was not retried")
	}
}

func TestGetPost(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts/hola", map[string]any{
		"post": models.Post{Slug: "hola", Title: "Hola", Body: "# Hola"},
	})
	api.fail("GET /posts/nope", http.StatusNotFound, "post not found")
	g, _ := testGateway(t, api)

	post, err := g.GetPost(context.Background(), "hola")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post == nil || post.Body != "# Hola" {
		t.Errorf("post = %+v", post)
	}

	missing, err := g.GetPost(context.Background(), "nope")
	if err != nil || missing != nil {
		t.Errorf("missing post = (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestGetPostDegradesToIndexEntry(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	api.fail("GET /posts/hola", http.StatusInternalServerError, "boom")
	g, _ := testGateway(t, api)

	post, err := g.GetPost(context.Background(), "hola")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post == nil || post.Title != "Hola" || post.Body != "" {
		t.Errorf("post = %+v, want body-less index entry", post)
	}
}

func TestSavePostInvalidatesCache(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	api.respond("POST /posts", map[string]any{
		"success": true,
		"post":    models.Post{Slug: "nuevo", Title: "Nuevo"},
	})
	g, st := testGateway(t, api)

	g.ListPosts(context.Background())
	if _, ok := st.GetCache(state.DomainPosts); !ok {
		t.Fatal("expected cache after list")
	}

	title := "Nuevo"
	saved, err := g.SavePost(context.Background(), &models.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	if saved == nil || saved.Slug != "nuevo" {
		t.Errorf("saved = %+v", saved)
	}
	if _, ok := st.GetCache(state.DomainPosts); ok {
		t.Error("save must invalidate the posts cache")
	}
}

func TestSavePostSurfacesFailure(t *testing.T) {
	api := newFakeAPI()
	api.fail("POST /posts", http.StatusInternalServerError, "github write failed")
	g, _ := testGateway(t, api)

	title := "Nuevo"
	_, err := g.SavePost(context.Background(), &models.PostPatch{Title: &title})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "github write failed") {
		t.Errorf("err = %v, want server message surfaced", err)
	}
}

func TestDeletePost(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	api.respond("DELETE /posts/hola", map[string]any{"success": true})
	g, st := testGateway(t, api)

	g.ListPosts(context.Background())
	if err := g.DeletePost(context.Background(), "hola"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, ok := st.GetCache(state.DomainPosts); ok {
		t.Error("delete must invalidate the posts cache")
	}
}

func TestServiciosAndCasos(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /servicios", map[string]any{"servicios": []models.Servicio{
		{ID: 1, Title: "SEO", Active: true},
	}})
	api.respond("POST /servicios", map[string]any{
		"success":  true,
		"servicio": models.Servicio{ID: 2, Title: "Ads", Active: true},
	})
	api.respond("DELETE /servicios/1", map[string]any{"success": true})
	api.respond("GET /casos", map[string]any{"casos": []models.Caso{
		{ID: 1, Title: "TechCorp", Featured: true},
	}})
	g, _ := testGateway(t, api)

	servicios := g.ListServicios(context.Background())
	if len(servicios) != 1 || servicios[0].Title != "SEO" {
		t.Errorf("servicios = %+v", servicios)
	}

	title := "Ads"
	saved, err := g.SaveServicio(context.Background(), &models.ServicioPatch{Title: &title})
	if err != nil {
		t.Fatalf("SaveServicio: %v", err)
	}
	if saved.ID != 2 {
		t.Errorf("saved = %+v", saved)
	}
	if err := g.DeleteServicio(context.Background(), 1); err != nil {
		t.Fatalf("DeleteServicio: %v", err)
	}

	casos := g.ListCasos(context.Background())
	if len(casos) != 1 || !casos[0].Featured {
		t.Errorf("casos = %+v", casos)
	}
}

func TestSettingsGuardsFailingSection(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /settings/general", models.SettingsSection{"siteName": "Elevate"})
	api.respond("GET /settings/social", models.SettingsSection{"instagram": "@elevate"})
	api.respond("GET /settings/hero", models.SettingsSection{})
	api.fail("GET /settings/seo", http.StatusInternalServerError, "boom")
	g, _ := testGateway(t, api)

	settings := g.Settings(context.Background())
	if settings.General["siteName"] != "Elevate" {
		t.Errorf("general = %+v", settings.General)
	}
	if settings.Social["instagram"] != "@elevate" {
		t.Errorf("social = %+v", settings.Social)
	}
	if settings.SEO == nil || len(settings.SEO) != 0 {
		t.Errorf("failed section must come back empty, got %+v", settings.SEO)
	}
}

func TestSettingsCached(t *testing.T) {
	api := newFakeAPI()
	for _, s := range []string{"general", "social", "hero", "seo"} {
		api.respond("GET /settings/"+s, models.SettingsSection{})
	}
	g, _ := testGateway(t, api)

	g.Settings(context.Background())
	before := api.hits.Load()
	g.Settings(context.Background())
	if api.hits.Load() != before {
		t.Error("second settings read must hit the cache")
	}
}

func TestSaveSettings(t *testing.T) {
	api := newFakeAPI()
	for _, s := range []string{"general", "social", "hero", "seo"} {
		api.respond("GET /settings/"+s, models.SettingsSection{})
	}
	api.respond("POST /settings/general", map[string]any{
		"success": true,
		"data":    models.SettingsSection{"siteName": "Elevate", "tagline": "Crece"},
	})
	g, st := testGateway(t, api)

	g.Settings(context.Background())
	merged, err := g.SaveSettings(context.Background(), "general", models.SettingsSection{"tagline": "Crece"})
	if err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if merged["siteName"] != "Elevate" || merged["tagline"] != "Crece" {
		t.Errorf("merged = %+v", merged)
	}
	if _, ok := st.GetCache(state.DomainSettings); ok {
		t.Error("save must invalidate the settings cache")
	}
}

func TestListMedia(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /media", map[string]any{"media": []models.MediaItem{
		{ID: "1", Name: "hero.jpg", Path: "images/hero.jpg"},
	}})
	g, _ := testGateway(t, api)

	media := g.ListMedia(context.Background())
	if len(media) != 1 || media[0].Name != "hero.jpg" {
		t.Errorf("media = %+v", media)
	}
}

func TestStats(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	api.respond("GET /servicios", map[string]any{"servicios": []models.Servicio{
		{ID: 1, Active: true}, {ID: 2, Active: false},
	}})
	api.respond("GET /casos", map[string]any{"casos": []models.Caso{
		{ID: 1, Featured: true},
	}})
	g, _ := testGateway(t, api)

	stats, err := g.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Posts.Total != 2 || stats.Posts.Published != 1 || stats.Posts.Drafts != 1 {
		t.Errorf("posts stats = %+v", stats.Posts)
	}
	if stats.Servicios.Active != 1 {
		t.Errorf("servicios stats = %+v", stats.Servicios)
	}
	if stats.Casos.Featured != 1 {
		t.Errorf("casos stats = %+v", stats.Casos)
	}
}

func TestStatsFailsWhole(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /posts", map[string]any{"posts": samplePosts()})
	api.respond("GET /servicios", map[string]any{"servicios": []models.Servicio{}})
	api.fail("GET /casos", http.StatusInternalServerError, "boom")
	g, _ := testGateway(t, api)

	if _, err := g.Stats(context.Background()); err == nil {
		t.Fatal("expected error when one constituent fails")
	}
}
