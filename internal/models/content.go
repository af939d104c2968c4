// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Servicio is a service listing shown on the agency site.
type Servicio struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}

// ServicioPatch carries the fields of a servicio create or update request.
type ServicioPatch struct {
	ID          int     `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Order       *int    `json:"order,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Apply merges the patch's provided fields over the servicio.
func (p *ServicioPatch) Apply(s *Servicio) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Slug != nil {
		s.Slug = *p.Slug
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Icon != nil {
		s.Icon = *p.Icon
	}
	if p.Order != nil {
		s.Order = *p.Order
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
}

// Caso is a client case study with its headline result metric.
type Caso struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Client      string `json:"client,omitempty"`
	Category    string `json:"category,omitempty"`
	Metric      string `json:"metric,omitempty"`
	Description string `json:"description,omitempty"`
	Featured    bool   `json:"featured"`
}

// CasoPatch carries the fields of a caso create or update request.
type CasoPatch struct {
	ID          int     `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Client      *string `json:"client,omitempty"`
	Category    *string `json:"category,omitempty"`
	Metric      *string `json:"metric,omitempty"`
	Description *string `json:"description,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

// Apply merges the patch's provided fields over the caso.
func (p *CasoPatch) Apply(c *Caso) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Client != nil {
		c.Client = *p.Client
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Metric != nil {
		c.Metric = *p.Metric
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Featured != nil {
		c.Featured = *p.Featured
	}
}

// SettingsSection names for the per-section site settings files.
var SettingsSections = []string{"general", "social", "hero", "seo"}

// SettingsSection is one independent settings document. Values are free-form
// key-value pairs edited in the admin panel; saving shallow-merges new keys
// over the existing section.
type SettingsSection map[string]any

// Merge returns a copy of the section with the patch's keys laid over it.
func (s SettingsSection) Merge(patch SettingsSection) SettingsSection {
	out := make(SettingsSection, len(s)+len(patch))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Settings aggregates the four independent sections.
type Settings struct {
	General SettingsSection `json:"general"`
	Social  SettingsSection `json:"social"`
	Hero    SettingsSection `json:"hero"`
	SEO     SettingsSection `json:"seo"`
}

// MediaItem is a file reference in the media library index. Uploads are
// managed outside the CMS; only the metadata listing is served here.
type MediaItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	URL        string    `json:"url,omitempty"`
	Type       string    `json:"type,omitempty"`
	Size       int64     `json:"size,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitzero"`
}

// Stats is the dashboard aggregation over posts, servicios, and casos.
type Stats struct {
	Posts struct {
		Total     int `json:"total"`
		Published int `json:"published"`
		Drafts    int `json:"drafts"`
	} `json:"posts"`
	Servicios struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"servicios"`
	Casos struct {
		Total    int `json:"total"`
		Featured int `json:"featured"`
	} `json:"casos"`
}
