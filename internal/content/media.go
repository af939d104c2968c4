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

// ListMedia returns the media library index. Uploads happen outside the
// CMS, so this is read-only: a listing of what the site repo references.
func (s *Service) ListMedia(ctx context.Context) ([]models.MediaItem, error) {
	key := cache.DomainKey(domainMedia, "index")

	var items []models.MediaItem
	if s.cachedJSON(ctx, key, &items) {
		return items, nil
	}

	f, err := s.gh.GetFile(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	items = []models.MediaItem{}
	if f != nil {
		if err := json.Unmarshal(f.Content, &items); err != nil {
			return nil, fmt.Errorf("list media: decode: %w", err)
		}
	}

	s.storeJSON(ctx, key, items)
	return items, nil
}
