// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"strings"
	"unicode/utf8"

	"elevatecms/internal/content"
	"elevatecms/internal/models"
)

// Validation limits for post fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxBodyLen    = 100_000
	maxExcerptLen = 1_000
)

// validatePostPatch checks a post write request and returns the first
// problem found, or "" when the patch is acceptable.
func validatePostPatch(p *models.PostPatch) string {
	if p.Slug == "" && (p.Title == nil || strings.TrimSpace(*p.Title) == "") {
		return "title is required"
	}
	if p.Title != nil && utf8.RuneCountInString(*p.Title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if p.Body != nil && utf8.RuneCountInString(*p.Body) > maxBodyLen {
		return "body is too long (max 100,000 characters)"
	}
	if p.Excerpt != nil && utf8.RuneCountInString(*p.Excerpt) > maxExcerptLen {
		return "excerpt is too long (max 1,000 characters)"
	}
	return ""
}

func isUnknownSection(err error) bool {
	return errors.Is(err, content.ErrUnknownSection)
}
