// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"elevatecms/internal/cache"
	"elevatecms/internal/models"
)

// ErrUnknownSection is returned for settings sections outside the known set.
var ErrUnknownSection = fmt.Errorf("content: unknown settings section")

func settingsPath(section string) string {
	return settingsDir + section + ".json"
}

func validSection(section string) bool {
	for _, s := range models.SettingsSections {
		if s == section {
			return true
		}
	}
	return false
}

// GetSettings loads one settings section. A missing file is an empty
// section, not an error.
func (s *Service) GetSettings(ctx context.Context, section string) (models.SettingsSection, error) {
	if !validSection(section) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	key := cache.DomainKey(domainSettings, section)

	var data models.SettingsSection
	if s.cachedJSON(ctx, key, &data) {
		return data, nil
	}

	f, err := s.gh.GetFile(ctx, settingsPath(section))
	if err != nil {
		return nil, fmt.Errorf("get settings %s: %w", section, err)
	}
	data = models.SettingsSection{}
	if f != nil {
		if err := json.Unmarshal(f.Content, &data); err != nil {
			return nil, fmt.Errorf("get settings %s: decode: %w", section, err)
		}
	}

	s.storeJSON(ctx, key, data)
	return data, nil
}

// SaveSettings shallow-merges the patch over the existing section and
// commits the result.
func (s *Service) SaveSettings(ctx context.Context, section string, patch models.SettingsSection, actor string) (models.SettingsSection, error) {
	if !validSection(section) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	f, err := s.gh.GetFile(ctx, settingsPath(section))
	if err != nil {
		return nil, fmt.Errorf("save settings %s: %w", section, err)
	}
	existing := models.SettingsSection{}
	var sha string
	if f != nil {
		sha = f.SHA
		if err := json.Unmarshal(f.Content, &existing); err != nil {
			return nil, fmt.Errorf("save settings %s: decode: %w", section, err)
		}
	}

	merged := existing.Merge(patch)

	data, err := marshalIndent(merged)
	if err != nil {
		return nil, fmt.Errorf("save settings %s: encode: %w", section, err)
	}
	msg := fmt.Sprintf("Update %s settings", section)
	if err := s.gh.PutFile(ctx, settingsPath(section), data, msg, sha); err != nil {
		return nil, fmt.Errorf("save settings %s: %w", section, err)
	}

	s.invalidate(ctx, domainSettings)
	s.logWrite(domainSettings, section, "update", actor)
	return merged, nil
}

// AllSettings fetches the four sections concurrently. A section that
// fails to load comes back empty rather than failing the whole call, so
// the settings screen always renders.
func (s *Service) AllSettings(ctx context.Context) (*models.Settings, error) {
	sections := make([]models.SettingsSection, len(models.SettingsSections))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range models.SettingsSections {
		g.Go(func() error {
			data, err := s.GetSettings(gctx, name)
			if err != nil {
				data = models.SettingsSection{}
			}
			sections[i] = data
			return nil
		})
	}
	g.Wait()

	return &models.Settings{
		General: sections[0],
		Social:  sections[1],
		Hero:    sections[2],
		SEO:     sections[3],
	}, nil
}
