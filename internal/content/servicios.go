// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"encoding/json"
	"fmt"

	"elevatecms/internal/cache"
	"elevatecms/internal/models"
)

// defaultServicios seeds the service catalog before the data file has
// ever been committed to the site repo.
func defaultServicios() []models.Servicio {
	return []models.Servicio{
		{ID: 1, Title: "Estrategia & Data Intelligence", Slug: "estrategia-data-intelligence", Order: 1, Active: true},
		{ID: 2, Title: "Publicidad 360°", Slug: "publicidad-360", Order: 2, Active: true},
		{ID: 3, Title: "Comunicación que Conecta", Slug: "comunicacion-que-conecta", Order: 3, Active: true},
		{ID: 4, Title: "Plan de Marketing & Performance", Slug: "marketing-performance", Order: 4, Active: true},
		{ID: 5, Title: "Activaciones & Experiencias 360°", Slug: "activaciones-experiencias", Order: 5, Active: true},
		{ID: 6, Title: "Engage Events & Summits", Slug: "engage-events", Order: 6, Active: true},
		{ID: 7, Title: "Research & Media Lab", Slug: "research-media-lab", Order: 7, Active: true},
	}
}

// ListServicios returns the service catalog, falling back to the built-in
// defaults when the data file has not been created yet.
func (s *Service) ListServicios(ctx context.Context) ([]models.Servicio, error) {
	key := cache.DomainKey(domainServicios, "index")

	var servicios []models.Servicio
	if s.cachedJSON(ctx, key, &servicios) {
		return servicios, nil
	}

	f, err := s.gh.GetFile(ctx, serviciosPath)
	if err != nil {
		return nil, fmt.Errorf("list servicios: %w", err)
	}
	if f == nil {
		return defaultServicios(), nil
	}
	if err := json.Unmarshal(f.Content, &servicios); err != nil {
		return nil, fmt.Errorf("list servicios: decode: %w", err)
	}

	s.storeJSON(ctx, key, servicios)
	return servicios, nil
}

// SaveServicio creates or updates a servicio. A zero ID means create;
// new entries get the next ID after the current maximum.
func (s *Service) SaveServicio(ctx context.Context, patch *models.ServicioPatch, actor string) (*models.Servicio, error) {
	f, err := s.gh.GetFile(ctx, serviciosPath)
	if err != nil {
		return nil, fmt.Errorf("save servicio: %w", err)
	}
	var servicios []models.Servicio
	var sha string
	if f != nil {
		sha = f.SHA
		if err := json.Unmarshal(f.Content, &servicios); err != nil {
			return nil, fmt.Errorf("save servicio: decode: %w", err)
		}
	}

	existingIdx := -1
	for i := range servicios {
		if servicios[i].ID == patch.ID {
			existingIdx = i
			break
		}
	}

	var servicio *models.Servicio
	auditAction := "update"
	if existingIdx >= 0 {
		servicio = &servicios[existingIdx]
		patch.Apply(servicio)
	} else {
		auditAction = "create"
		maxID := 0
		for _, sv := range servicios {
			if sv.ID > maxID {
				maxID = sv.ID
			}
		}
		servicios = append(servicios, models.Servicio{ID: maxID + 1})
		servicio = &servicios[len(servicios)-1]
		patch.Apply(servicio)
	}

	data, err := marshalIndent(servicios)
	if err != nil {
		return nil, fmt.Errorf("save servicio: encode: %w", err)
	}
	msg := fmt.Sprintf("Update servicio: %s", servicio.Title)
	if err := s.gh.PutFile(ctx, serviciosPath, data, msg, sha); err != nil {
		return nil, fmt.Errorf("save servicio: %w", err)
	}

	s.invalidate(ctx, domainServicios)
	s.logWrite(domainServicios, fmt.Sprint(servicio.ID), auditAction, actor)
	out := *servicio
	return &out, nil
}

// DeleteServicio removes a servicio by ID. Unknown IDs are a no-op write.
func (s *Service) DeleteServicio(ctx context.Context, id int, actor string) error {
	f, err := s.gh.GetFile(ctx, serviciosPath)
	if err != nil {
		return fmt.Errorf("delete servicio: %w", err)
	}
	var servicios []models.Servicio
	var sha string
	if f != nil {
		sha = f.SHA
		if err := json.Unmarshal(f.Content, &servicios); err != nil {
			return fmt.Errorf("delete servicio: decode: %w", err)
		}
	}

	filtered := servicios[:0]
	for _, sv := range servicios {
		if sv.ID != id {
			filtered = append(filtered, sv)
		}
	}

	data, err := marshalIndent(filtered)
	if err != nil {
		return fmt.Errorf("delete servicio: encode: %w", err)
	}
	msg := fmt.Sprintf("Delete servicio id: %d", id)
	if err := s.gh.PutFile(ctx, serviciosPath, data, msg, sha); err != nil {
		return fmt.Errorf("delete servicio: %w", err)
	}

	s.invalidate(ctx, domainServicios)
	s.logWrite(domainServicios, fmt.Sprint(id), "delete", actor)
	return nil
}
