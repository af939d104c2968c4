// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: a content service
// backed by an in-memory fake of the GitHub contents API, so handler
// tests run without network, PostgreSQL, or Redis.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"elevatecms/internal/content"
	"elevatecms/internal/github"
)

type fakeFile struct {
	content []byte
	sha     string
}

type fakeRepo struct {
	mu     sync.Mutex
	files  map[string]fakeFile
	shaSeq int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: make(map[string]fakeFile)}
}

func (fr *fakeRepo) seed(path, content string) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.shaSeq++
	fr.files[path] = fakeFile{content: []byte(content), sha: "sha-" + strconv.Itoa(fr.shaSeq)}
}

func (fr *fakeRepo) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.SplitN(r.URL.Path, "/contents/", 2)
		if len(parts) != 2 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		path := parts[1]

		fr.mu.Lock()
		defer fr.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			f, ok := fr.files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString(f.content),
				"sha":     f.sha,
			})
		case http.MethodPut:
			var body struct {
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			existing, exists := fr.files[path]
			if exists && body.SHA != existing.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}
			decoded, _ := base64.StdEncoding.DecodeString(body.Content)
			fr.shaSeq++
			fr.files[path] = fakeFile{content: decoded, sha: "sha-" + strconv.Itoa(fr.shaSeq)}
			if exists {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusCreated)
			}
		case http.MethodDelete:
			var body struct {
				SHA string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			existing, exists := fr.files[path]
			if !exists || body.SHA != existing.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}
			delete(fr.files, path)
			w.WriteHeader(http.StatusOK)
		}
	})
}

// testContentService wires a content service (no cache, no audit) to a
// fresh fake repository.
func testContentService(t *testing.T) (*content.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	srv := httptest.NewServer(repo.handler())
	t.Cleanup(srv.Close)

	gh := github.New("test-token", "acme/site", "main")
	gh.SetBaseURL(srv.URL)
	return content.NewService(gh, nil, nil), repo
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
