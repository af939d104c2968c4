// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"elevatecms/internal/config"
	"elevatecms/internal/gateway"
	"elevatecms/internal/models"
	"elevatecms/internal/state"
)

// testApp builds an App over an httptest content API serving a small
// fixed catalogue.
func testApp(t *testing.T) (*App, *state.Store) {
	t.Helper()

	mux := http.NewServeMux()
	serve := func(pattern string, v any) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(v)
		})
	}
	serve("GET /posts", map[string]any{"posts": []models.Post{
		{Slug: "hola", Title: "Hola"},
		{Slug: "borrador", Title: "Borrador", Draft: true},
	}})
	serve("GET /posts/hola", map[string]any{
		"post": models.Post{Slug: "hola", Title: "Hola", Body: "# Hola"},
	})
	mux.HandleFunc("GET /posts/perdido", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "post not found"})
	})
	serve("GET /servicios", map[string]any{"servicios": []models.Servicio{
		{ID: 1, Title: "SEO", Active: true},
		{ID: 2, Title: "Ads", Active: false},
	}})
	serve("GET /casos", map[string]any{"casos": []models.Caso{
		{ID: 1, Title: "TechCorp", Featured: true},
	}})
	for _, s := range []string{"general", "social", "hero", "seo"} {
		serve("GET /settings/"+s, models.SettingsSection{"section": s})
	}
	serve("GET /media", map[string]any{"media": []models.MediaItem{}})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	st := state.New()
	gw := gateway.New(&config.Config{APIBaseURL: srv.URL}, st)
	return New(gw, st), st
}

func TestStartShowsDashboard(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	view := a.CurrentView()
	if view == nil || view.Name != "dashboard" {
		t.Fatalf("view = %+v", view)
	}
	stats, ok := view.Data.(*models.Stats)
	if !ok {
		t.Fatalf("data = %T", view.Data)
	}
	if stats.Posts.Total != 2 || stats.Posts.Drafts != 1 {
		t.Errorf("stats = %+v", stats.Posts)
	}
}

func TestBlogListView(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Navigate(context.Background(), "/blog"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	view := a.CurrentView()
	posts, ok := view.Data.([]models.Post)
	if !ok || len(posts) != 2 {
		t.Errorf("view = %+v", view)
	}
}

func TestBlogEditBindsSlug(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Navigate(context.Background(), "/blog/edit/hola"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	view := a.CurrentView()
	if view.Name != "blog/edit" || view.Params["id"] != "hola" {
		t.Fatalf("view = %+v", view)
	}
	post := view.Data.(*models.Post)
	if post.Body != "# Hola" {
		t.Errorf("post = %+v", post)
	}
}

func TestBlogEditMissingRecoversToDashboard(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Navigate(context.Background(), "/blog/edit/perdido"); err == nil {
		t.Fatal("expected error for a missing post")
	}
	if view := a.CurrentView(); view == nil || view.Name != "dashboard" {
		t.Errorf("view = %+v, want dashboard recovery", view)
	}
}

func TestHashNavigation(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Navigate(context.Background(), "#/servicios"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if view := a.CurrentView(); view.Name != "servicios" {
		t.Errorf("view = %+v", view)
	}
}

func TestUnknownPathLandsOnDashboard(t *testing.T) {
	a, _ := testApp(t)

	if err := a.Navigate(context.Background(), "/no-such-screen"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if view := a.CurrentView(); view.Name != "dashboard" {
		t.Errorf("view = %+v", view)
	}
}

func TestEditorRoutes(t *testing.T) {
	a, _ := testApp(t)
	ctx := context.Background()

	if err := a.Navigate(ctx, "/blog/new"); err != nil {
		t.Fatalf("blog/new: %v", err)
	}
	if view := a.CurrentView(); view.Name != "blog/new" {
		t.Errorf("view = %+v", view)
	}

	if err := a.Navigate(ctx, "/servicios/edit/2"); err != nil {
		t.Fatalf("servicios/edit: %v", err)
	}
	servicio := a.CurrentView().Data.(*models.Servicio)
	if servicio.Title != "Ads" {
		t.Errorf("servicio = %+v", servicio)
	}

	if err := a.Navigate(ctx, "/casos/edit/1"); err != nil {
		t.Fatalf("casos/edit: %v", err)
	}
	caso := a.CurrentView().Data.(*models.Caso)
	if caso.Title != "TechCorp" {
		t.Errorf("caso = %+v", caso)
	}

	if err := a.Navigate(ctx, "/casos/edit/99"); err == nil {
		t.Error("expected error for unknown caso id")
	}
}

func TestSettingsAndMediaViews(t *testing.T) {
	a, _ := testApp(t)
	ctx := context.Background()

	if err := a.Navigate(ctx, "/settings"); err != nil {
		t.Fatalf("settings: %v", err)
	}
	settings := a.CurrentView().Data.(*models.Settings)
	if settings.General["section"] != "general" {
		t.Errorf("settings = %+v", settings)
	}

	if err := a.Navigate(ctx, "/media"); err != nil {
		t.Fatalf("media: %v", err)
	}
	media, ok := a.CurrentView().Data.([]models.MediaItem)
	if !ok || media == nil {
		t.Errorf("media view data = %T", a.CurrentView().Data)
	}
}

func TestViewChangeNotifiesSubscribers(t *testing.T) {
	a, st := testApp(t)

	var names []string
	st.Subscribe(ViewKey, func(newValue, oldValue any) {
		if v, ok := newValue.(*View); ok {
			names = append(names, v.Name)
		}
	})

	ctx := context.Background()
	if err := a.Navigate(ctx, "/blog"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := a.Navigate(ctx, "/casos"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if len(names) != 2 || names[0] != "blog" || names[1] != "casos" {
		t.Errorf("names = %v", names)
	}
}
