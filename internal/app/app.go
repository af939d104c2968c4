// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package app assembles the admin panel: the route surface, the content
// gateway behind it, and the state store the views read from. Each route
// handler loads its content through the gateway and commits a View into
// the state store under ViewKey; subscribers render from there.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"elevatecms/internal/gateway"
	"elevatecms/internal/models"
	"elevatecms/internal/router"
	"elevatecms/internal/state"
)

// ViewKey is the state store key holding the current View.
const ViewKey = "view"

// View is the committed result of a navigation: which screen is active,
// its bound route parameters, and the data it renders.
type View struct {
	Name   string
	Params router.Params
	Data   any
}

// App is the wired admin panel.
type App struct {
	router  *router.Router
	gateway *gateway.Gateway
	state   *state.Store
}

// New wires the route surface onto a fresh router. The dashboard is the
// default route; unknown paths and failed handlers land there.
func New(gw *gateway.Gateway, st *state.Store) *App {
	a := &App{
		router:  router.New(),
		gateway: gw,
		state:   st,
	}

	a.router.AddRoute("/dashboard", a.showDashboard)
	a.router.AddRoute("/blog", a.showBlog)
	a.router.AddRoute("/blog/new", a.showBlogEditor(""))
	a.router.AddRoute("/blog/edit/:id", a.showBlogEdit)
	a.router.AddRoute("/servicios", a.showServicios)
	a.router.AddRoute("/servicios/new", a.showServicioEditor(0))
	a.router.AddRoute("/servicios/edit/:id", a.showServicioEdit)
	a.router.AddRoute("/casos", a.showCasos)
	a.router.AddRoute("/casos/new", a.showCasoEditor(0))
	a.router.AddRoute("/casos/edit/:id", a.showCasoEdit)
	a.router.AddRoute("/settings", a.showSettings)
	a.router.AddRoute("/media", a.showMedia)
	a.router.SetDefault("/dashboard")

	a.router.OnError(func(path string, err error) {
		slog.Error("route handler failed", "path", path, "error", err)
	})

	return a
}

// Router exposes the route resolver for navigation and callbacks.
func (a *App) Router() *router.Router {
	return a.router
}

// Start navigates to the dashboard.
func (a *App) Start(ctx context.Context) error {
	return a.router.Start(ctx)
}

// Navigate resolves a path, normalizing hash-prefixed forms.
func (a *App) Navigate(ctx context.Context, path string) error {
	return a.router.Navigate(ctx, path)
}

// CurrentView returns the last committed View, or nil before Start.
func (a *App) CurrentView() *View {
	if v, ok := a.state.Get(ViewKey).(*View); ok {
		return v
	}
	return nil
}

// commit stores the view for the route that just resolved.
func (a *App) commit(name string, p router.Params, data any) {
	a.state.Set(ViewKey, &View{Name: name, Params: p, Data: data})
}

func (a *App) showDashboard(ctx context.Context, p router.Params) error {
	stats, err := a.gateway.Stats(ctx)
	if err != nil {
		return fmt.Errorf("loading dashboard: %w", err)
	}
	a.commit("dashboard", p, stats)
	return nil
}

func (a *App) showBlog(ctx context.Context, p router.Params) error {
	a.commit("blog", p, a.gateway.ListPosts(ctx))
	return nil
}

func (a *App) showBlogEdit(ctx context.Context, p router.Params) error {
	post, err := a.gateway.GetPost(ctx, p["id"])
	if err != nil {
		return fmt.Errorf("loading post %q: %w", p["id"], err)
	}
	if post == nil {
		return fmt.Errorf("post %q not found", p["id"])
	}
	a.commit("blog/edit", p, post)
	return nil
}

// showBlogEditor opens the editor on an empty post. The slug argument is
// kept so prefilled drafts can reuse the handler later.
func (a *App) showBlogEditor(slug string) router.HandlerFunc {
	return func(ctx context.Context, p router.Params) error {
		a.commit("blog/new", p, &models.Post{Slug: slug})
		return nil
	}
}

func (a *App) showServicios(ctx context.Context, p router.Params) error {
	a.commit("servicios", p, a.gateway.ListServicios(ctx))
	return nil
}

func (a *App) showServicioEdit(ctx context.Context, p router.Params) error {
	id := p["id"]
	for _, s := range a.gateway.ListServicios(ctx) {
		if fmt.Sprintf("%d", s.ID) == id {
			a.commit("servicios/edit", p, &s)
			return nil
		}
	}
	return fmt.Errorf("servicio %q not found", id)
}

func (a *App) showServicioEditor(id int) router.HandlerFunc {
	return func(ctx context.Context, p router.Params) error {
		a.commit("servicios/new", p, &models.Servicio{ID: id, Active: true})
		return nil
	}
}

func (a *App) showCasos(ctx context.Context, p router.Params) error {
	a.commit("casos", p, a.gateway.ListCasos(ctx))
	return nil
}

func (a *App) showCasoEdit(ctx context.Context, p router.Params) error {
	id := p["id"]
	for _, c := range a.gateway.ListCasos(ctx) {
		if fmt.Sprintf("%d", c.ID) == id {
			a.commit("casos/edit", p, &c)
			return nil
		}
	}
	return fmt.Errorf("caso %q not found", id)
}

func (a *App) showCasoEditor(id int) router.HandlerFunc {
	return func(ctx context.Context, p router.Params) error {
		a.commit("casos/new", p, &models.Caso{ID: id})
		return nil
	}
}

func (a *App) showSettings(ctx context.Context, p router.Params) error {
	a.commit("settings", p, a.gateway.Settings(ctx))
	return nil
}

func (a *App) showMedia(ctx context.Context, p router.Params) error {
	a.commit("media", p, a.gateway.ListMedia(ctx))
	return nil
}
