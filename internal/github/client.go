// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package github is a minimal client for the GitHub repository contents
// API, which serves as the authoritative content store: markdown posts,
// JSON indexes, and settings files all live as committed files in the
// site repository. Every write is a commit on the configured branch.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// File is the decoded result of a contents API read: the file body plus
// the blob SHA required as a version token on subsequent writes.
type File struct {
	Content []byte
	SHA     string
}

// Client talks to the contents API of a single repository and branch.
type Client struct {
	baseURL string
	token   string
	repo    string // "owner/repo"
	branch  string
	client  *http.Client
}

// New creates a client for the given repository ("owner/repo") and branch.
func New(token, repo, branch string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		repo:    repo,
		branch:  branch,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Tests point this at a local server.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// GetFile fetches a file from the repository. A missing file returns
// (nil, nil) rather than an error, mirroring how the content layer treats
// not-yet-created indexes as empty.
func (c *Client) GetFile(ctx context.Context, path string) (*File, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s",
		c.baseURL, c.repo, path, url.QueryEscape(c.branch))

	var payload struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	status, err := c.do(ctx, http.MethodGet, endpoint, nil, &payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("github: get %s: unexpected status %d", path, status)
	}

	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(payload.Content))
	if err != nil {
		return nil, fmt.Errorf("github: decode %s: %w", path, err)
	}
	return &File{Content: decoded, SHA: payload.SHA}, nil
}

// PutFile creates or updates a file. For updates, sha must carry the blob
// SHA from a prior GetFile; for new files it is empty. The message becomes
// the commit message.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, message, sha string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, path)

	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	status, err := c.do(ctx, http.MethodPut, endpoint, body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("github: put %s: unexpected status %d", path, status)
	}
	return nil
}

// DeleteFile removes a file. The blob SHA version token is required.
func (c *Client) DeleteFile(ctx context.Context, path, message, sha string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, path)

	body := map[string]any{
		"message": message,
		"sha":     sha,
		"branch":  c.branch,
	}

	status, err := c.do(ctx, http.MethodDelete, endpoint, body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("github: delete %s: unexpected status %d", path, status)
	}
	return nil
}

// do performs one API request, decoding a JSON response into out when
// given. It returns the HTTP status so callers can treat 404 specially.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("github marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("github http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("github read body: %w", err)
	}

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("github unmarshal: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// stripNewlines removes the line breaks GitHub inserts into base64 payloads.
func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
