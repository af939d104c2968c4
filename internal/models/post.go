// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content records managed by the CMS and the
// explicit merge functions used for partial updates. Each record type has
// a Patch counterpart with pointer-typed optional fields: a nil field means
// "not provided, keep the existing value". This replaces ad hoc map merges
// with named, type-checked fields.
package models

import "time"

// Post is a blog entry stored as a markdown file with frontmatter, plus an
// entry in the aggregate metadata index.
type Post struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Date          string    `json:"date,omitempty"`
	Author        string    `json:"author,omitempty"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Category      string    `json:"category,omitempty"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Tags          []string  `json:"tags"`
	Draft         bool      `json:"draft"`
	ReadTime      int       `json:"readTime,omitempty"`
	Featured      bool      `json:"featured"`
	Body          string    `json:"body,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// PostPatch carries the fields of a create or update request. Nil pointers
// leave the corresponding Post field untouched on merge.
type PostPatch struct {
	Slug          string    `json:"slug,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Date          *string   `json:"date,omitempty"`
	Author        *string   `json:"author,omitempty"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Draft         *bool     `json:"draft,omitempty"`
	ReadTime      *int      `json:"readTime,omitempty"`
	Featured      *bool     `json:"featured,omitempty"`
	Body          *string   `json:"body,omitempty"`
}

// Apply merges the patch's provided fields over the post.
func (p *PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Date != nil {
		post.Date = *p.Date
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
	if p.FeaturedImage != nil {
		post.FeaturedImage = *p.FeaturedImage
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Tags != nil {
		post.Tags = *p.Tags
	}
	if p.Draft != nil {
		post.Draft = *p.Draft
	}
	if p.ReadTime != nil {
		post.ReadTime = *p.ReadTime
	}
	if p.Featured != nil {
		post.Featured = *p.Featured
	}
	if p.Body != nil {
		post.Body = *p.Body
	}
}

// Meta returns the post without its body, as stored in the aggregate index.
func (p *Post) Meta() Post {
	meta := *p
	meta.Body = ""
	return meta
}
