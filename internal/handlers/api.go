// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the admin panel's JSON API. Responses
// follow the panel's envelope conventions: list endpoints wrap their
// payload under a named key ({"posts": [...]}), writes return
// {"success": true, ...}, and failures return {"error": "..."} with an
// appropriate status code.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"elevatecms/internal/content"
	"elevatecms/internal/middleware"
	"elevatecms/internal/models"
)

// API groups the content CRUD handlers.
type API struct {
	svc *content.Service
}

// NewAPI creates the content API handler group.
func NewAPI(svc *content.Service) *API {
	return &API{svc: svc}
}

// respond writes v as JSON with the given status.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// actor returns the authenticated user's email for audit entries.
func actor(r *http.Request) string {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess.Email
	}
	return ""
}

// GetPosts handles GET /api/posts.
func (a *API) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.svc.ListPosts(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetPost handles GET /api/posts/{slug}.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := a.svc.GetPost(r.Context(), slug)
	if err != nil {
		slog.Error("get post failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respond(w, http.StatusOK, map[string]any{"post": post})
}

// SavePost handles POST /api/posts for both create and update.
func (a *API) SavePost(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePostPatch(&patch); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := a.svc.SavePost(r.Context(), &patch, actor(r))
	if err != nil {
		slog.Error("save post failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	meta := post.Meta()
	respond(w, http.StatusOK, map[string]any{"success": true, "post": meta})
}

// DeletePost handles DELETE /api/posts/{slug}.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := a.svc.DeletePost(r.Context(), slug, actor(r)); err != nil {
		slog.Error("delete post failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}

// GetServicios handles GET /api/servicios.
func (a *API) GetServicios(w http.ResponseWriter, r *http.Request) {
	servicios, err := a.svc.ListServicios(r.Context())
	if err != nil {
		slog.Error("list servicios failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"servicios": servicios})
}

// SaveServicio handles POST /api/servicios.
func (a *API) SaveServicio(w http.ResponseWriter, r *http.Request) {
	var patch models.ServicioPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.ID == 0 && (patch.Title == nil || *patch.Title == "") {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	servicio, err := a.svc.SaveServicio(r.Context(), &patch, actor(r))
	if err != nil {
		slog.Error("save servicio failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "servicio": servicio})
}

// DeleteServicio handles DELETE /api/servicios/{id}.
func (a *API) DeleteServicio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.svc.DeleteServicio(r.Context(), id, actor(r)); err != nil {
		slog.Error("delete servicio failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}

// GetCasos handles GET /api/casos.
func (a *API) GetCasos(w http.ResponseWriter, r *http.Request) {
	casos, err := a.svc.ListCasos(r.Context())
	if err != nil {
		slog.Error("list casos failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"casos": casos})
}

// SaveCaso handles POST /api/casos.
func (a *API) SaveCaso(w http.ResponseWriter, r *http.Request) {
	var patch models.CasoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.ID == 0 && (patch.Title == nil || *patch.Title == "") {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	caso, err := a.svc.SaveCaso(r.Context(), &patch, actor(r))
	if err != nil {
		slog.Error("save caso failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "caso": caso})
}

// DeleteCaso handles DELETE /api/casos/{id}.
func (a *API) DeleteCaso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.svc.DeleteCaso(r.Context(), id, actor(r)); err != nil {
		slog.Error("delete caso failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}

// GetAllSettings handles GET /api/settings.
func (a *API) GetAllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.svc.AllSettings(r.Context())
	if err != nil {
		slog.Error("load settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, settings)
}

// GetSettings handles GET /api/settings/{section}.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	data, err := a.svc.GetSettings(r.Context(), section)
	if err != nil {
		status := http.StatusInternalServerError
		if isUnknownSection(err) {
			status = http.StatusNotFound
		}
		respondError(w, status, err.Error())
		return
	}
	respond(w, http.StatusOK, data)
}

// SaveSettings handles POST /api/settings/{section}.
func (a *API) SaveSettings(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	var patch models.SettingsSection
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merged, err := a.svc.SaveSettings(r.Context(), section, patch, actor(r))
	if err != nil {
		status := http.StatusInternalServerError
		if isUnknownSection(err) {
			status = http.StatusNotFound
		}
		slog.Error("save settings failed", "section", section, "error", err)
		respondError(w, status, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "data": merged})
}

// GetMedia handles GET /api/media.
func (a *API) GetMedia(w http.ResponseWriter, r *http.Request) {
	items, err := a.svc.ListMedia(r.Context())
	if err != nil {
		slog.Error("list media failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"media": items})
}

// GetStats handles GET /api/stats.
func (a *API) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, stats)
}
