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

// defaultCasos seeds the case study list before the data file has ever
// been committed to the site repo.
func defaultCasos() []models.Caso {
	return []models.Caso{
		{ID: 1, Title: "Transformación Digital TechCorp", Client: "TechCorp", Category: "Estrategia & Data Intelligence", Metric: "+250% ROI", Featured: true},
		{ID: 2, Title: "Lanzamiento Marca EcoLife", Client: "EcoLife", Category: "Publicidad 360°", Metric: "+45M Reach", Featured: true},
		{ID: 3, Title: "Reputación FoodHub", Client: "FoodHub", Category: "Comunicación", Metric: "+80% Engagement", Featured: false},
		{ID: 4, Title: "Optimización FinTech Solutions", Client: "FinTech Solutions", Category: "Performance Marketing", Metric: "-60% CAC", Featured: false},
		{ID: 5, Title: "Summit Innovation 2024", Client: "Summit Innovation", Category: "Eventos & Experiencias", Metric: "5K Asistentes", Featured: true},
		{ID: 6, Title: "Estudio RetailTech Insights", Client: "RetailTech", Category: "Research & Media Lab", Metric: "+35% Brand Lift", Featured: false},
	}
}

// ListCasos returns the case studies, falling back to the built-in
// defaults when the data file has not been created yet.
func (s *Service) ListCasos(ctx context.Context) ([]models.Caso, error) {
	key := cache.DomainKey(domainCasos, "index")

	var casos []models.Caso
	if s.cachedJSON(ctx, key, &casos) {
		return casos, nil
	}

	f, err := s.gh.GetFile(ctx, casosPath)
	if err != nil {
		return nil, fmt.Errorf("list casos: %w", err)
	}
	if f == nil {
		return defaultCasos(), nil
	}
	if err := json.Unmarshal(f.Content, &casos); err != nil {
		return nil, fmt.Errorf("list casos: decode: %w", err)
	}

	s.storeJSON(ctx, key, casos)
	return casos, nil
}

// SaveCaso creates or updates a caso. A zero ID means create; new entries
// get the next ID after the current maximum.
func (s *Service) SaveCaso(ctx context.Context, patch *models.CasoPatch, actor string) (*models.Caso, error) {
	f, err := s.gh.GetFile(ctx, casosPath)
	if err != nil {
		return nil, fmt.Errorf("save caso: %w", err)
	}
	var casos []models.Caso
	var sha string
	if f != nil {
		sha = f.SHA
		if err := json.Unmarshal(f.Content, &casos); err != nil {
			return nil, fmt.Errorf("save caso: decode: %w", err)
		}
	}

	existingIdx := -1
	for i := range casos {
		if casos[i].ID == patch.ID {
			existingIdx = i
			break
		}
	}

	var caso *models.Caso
	auditAction := "update"
	if existingIdx >= 0 {
		caso = &casos[existingIdx]
		patch.Apply(caso)
	} else {
		auditAction = "create"
		maxID := 0
		for _, c := range casos {
			if c.ID > maxID {
				maxID = c.ID
			}
		}
		casos = append(casos, models.Caso{ID: maxID + 1})
		caso = &casos[len(casos)-1]
		patch.Apply(caso)
	}

	data, err := marshalIndent(casos)
	if err != nil {
		return nil, fmt.Errorf("save caso: encode: %w", err)
	}
	msg := fmt.Sprintf("Update caso: %s", caso.Title)
	if err := s.gh.PutFile(ctx, casosPath, data, msg, sha); err != nil {
		return nil, fmt.Errorf("save caso: %w", err)
	}

	s.invalidate(ctx, domainCasos)
	s.logWrite(domainCasos, fmt.Sprint(caso.ID), auditAction, actor)
	out := *caso
	return &out, nil
}

// DeleteCaso removes a caso by ID. Unknown IDs are a no-op write.
func (s *Service) DeleteCaso(ctx context.Context, id int, actor string) error {
	f, err := s.gh.GetFile(ctx, casosPath)
	if err != nil {
		return fmt.Errorf("delete caso: %w", err)
	}
	var casos []models.Caso
	var sha string
	if f != nil {
		sha = f.SHA
		if err := json.Unmarshal(f.Content, &casos); err != nil {
			return fmt.Errorf("delete caso: decode: %w", err)
		}
	}

	filtered := casos[:0]
	for _, c := range casos {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}

	data, err := marshalIndent(filtered)
	if err != nil {
		return fmt.Errorf("delete caso: encode: %w", err)
	}
	msg := fmt.Sprintf("Delete caso id: %d", id)
	if err := s.gh.PutFile(ctx, casosPath, data, msg, sha); err != nil {
		return fmt.Errorf("delete caso: %w", err)
	}

	s.invalidate(ctx, domainCasos)
	s.logWrite(domainCasos, fmt.Sprint(id), "delete", actor)
	return nil
}
