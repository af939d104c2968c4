// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"elevatecms/internal/models"
)

// Stats aggregates dashboard counters over all three content listings.
// The three reads run concurrently; any failure fails the whole call,
// since partial counters would be misleading on the dashboard.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		posts     []models.Post
		servicios []models.Servicio
		casos     []models.Caso
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.ListPosts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		servicios, err = s.ListServicios(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		casos, err = s.ListCasos(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	stats := &models.Stats{}
	stats.Posts.Total = len(posts)
	for _, p := range posts {
		if p.Draft {
			stats.Posts.Drafts++
		} else {
			stats.Posts.Published++
		}
	}
	stats.Servicios.Total = len(servicios)
	for _, sv := range servicios {
		if sv.Active {
			stats.Servicios.Active++
		}
	}
	stats.Casos.Total = len(casos)
	for _, c := range casos {
		if c.Featured {
			stats.Casos.Featured++
		}
	}
	return stats, nil
}
