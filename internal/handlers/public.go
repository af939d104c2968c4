// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"elevatecms/internal/content"
	"elevatecms/internal/markdown"
)

// Public serves the unauthenticated read endpoints consumed by the site
// itself: published post listings and rendered post HTML.
type Public struct {
	svc *content.Service
}

// NewPublic creates the public handler group.
func NewPublic(svc *content.Service) *Public {
	return &Public{svc: svc}
}

// Posts handles GET /public/posts: the index filtered to published posts.
func (p *Public) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := p.svc.ListPosts(r.Context())
	if err != nil {
		slog.Error("public list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	published := posts[:0:0]
	for _, post := range posts {
		if !post.Draft {
			published = append(published, post)
		}
	}
	respond(w, http.StatusOK, map[string]any{"posts": published})
}

// PostHTML handles GET /public/posts/{slug}/html, returning the post
// body rendered to HTML. Drafts are hidden from this endpoint.
func (p *Public) PostHTML(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := p.svc.GetPost(r.Context(), slug)
	if err != nil {
		slog.Error("public get post failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if post == nil || post.Draft {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	html, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("markdown render failed", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
