// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestPostPatchApply(t *testing.T) {
	post := Post{
		Slug:     "hello",
		Title:    "Hello",
		Author:   "Elevate Media Labs",
		Category: "Estrategia",
		Tags:     []string{"a"},
		Draft:    true,
		ReadTime: 5,
	}

	patch := PostPatch{
		Title: strPtr("Hello v2"),
		Draft: boolPtr(false),
		Tags:  &[]string{"a", "b"},
	}
	patch.Apply(&post)

	if post.Title != "Hello v2" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Draft {
		t.Error("Draft should be false after patch")
	}
	if !reflect.DeepEqual(post.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v", post.Tags)
	}
	// Untouched fields survive.
	if post.Author != "Elevate Media Labs" || post.Category != "Estrategia" || post.ReadTime != 5 {
		t.Errorf("unpatched fields changed: %+v", post)
	}
}

func TestPostPatchEmptyStringIsProvided(t *testing.T) {
	// An explicit empty string clears the field; a nil pointer keeps it.
	post := Post{Excerpt: "old excerpt"}

	patch := PostPatch{Excerpt: strPtr("")}
	patch.Apply(&post)

	if post.Excerpt != "" {
		t.Errorf("Excerpt = %q, want cleared", post.Excerpt)
	}
}

func TestPostPatchFromJSON(t *testing.T) {
	// Absent JSON keys decode to nil pointers and leave fields untouched.
	var patch PostPatch
	if err := json.Unmarshal([]byte(`{"title":"New","draft":false}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	post := Post{Title: "Old", Draft: true, Featured: true}
	patch.Apply(&post)

	if post.Title != "New" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Draft {
		t.Error("Draft should be false")
	}
	if !post.Featured {
		t.Error("Featured was not in the patch and must survive")
	}
}

func TestPostMetaStripsBody(t *testing.T) {
	post := Post{Slug: "s", Title: "t", Body: "long body"}
	meta := post.Meta()

	if meta.Body != "" {
		t.Errorf("Meta body = %q, want empty", meta.Body)
	}
	if meta.Slug != "s" || meta.Title != "t" {
		t.Errorf("Meta lost fields: %+v", meta)
	}
	if post.Body != "long body" {
		t.Error("Meta must not mutate the original")
	}
}

func TestServicioPatchApply(t *testing.T) {
	s := Servicio{ID: 3, Title: "Publicidad 360°", Order: 2, Active: true}

	patch := ServicioPatch{
		Order:  intPtr(1),
		Active: boolPtr(false),
	}
	patch.Apply(&s)

	if s.Order != 1 || s.Active {
		t.Errorf("after patch: %+v", s)
	}
	if s.ID != 3 || s.Title != "Publicidad 360°" {
		t.Errorf("unpatched fields changed: %+v", s)
	}
}

func TestCasoPatchApply(t *testing.T) {
	c := Caso{ID: 1, Title: "TechCorp", Metric: "+250% ROI", Featured: true}

	patch := CasoPatch{
		Metric:   strPtr("+300% ROI"),
		Featured: boolPtr(false),
	}
	patch.Apply(&c)

	if c.Metric != "+300% ROI" || c.Featured {
		t.Errorf("after patch: %+v", c)
	}
	if c.Title != "TechCorp" {
		t.Errorf("Title changed: %q", c.Title)
	}
}

func TestSettingsSectionMerge(t *testing.T) {
	section := SettingsSection{"siteName": "Elevate", "tagline": "old"}

	merged := section.Merge(SettingsSection{"tagline": "new", "email": "hola@elevate.mx"})

	if merged["siteName"] != "Elevate" || merged["tagline"] != "new" || merged["email"] != "hola@elevate.mx" {
		t.Errorf("merged = %v", merged)
	}
	// Merge must not mutate the receiver.
	if section["tagline"] != "old" {
		t.Errorf("receiver mutated: %v", section)
	}
}

func TestUserNeeds2FASetup(t *testing.T) {
	secret := "SECRET"
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"no secret", User{}, true},
		{"secret but not enabled", User{TOTPSecret: &secret}, true},
		{"enrolled", User{TOTPSecret: &secret, TOTPEnabled: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup = %v, want %v", got, tt.want)
			}
		})
	}
}
