// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"elevatecms/internal/cache"
	"elevatecms/internal/frontmatter"
	"elevatecms/internal/models"
	"elevatecms/internal/slug"
)

// Defaults applied when a new post omits the field.
const (
	defaultAuthor   = "Elevate Media Labs"
	defaultCategory = "Estrategia"
	defaultReadTime = 5
)

func postPath(postSlug string) string {
	return blogDir + postSlug + ".md"
}

// ListPosts returns the post metadata index, newest first. A missing
// index file is an empty list, not an error.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	key := cache.DomainKey(domainPosts, "index")

	var posts []models.Post
	if s.cachedJSON(ctx, key, &posts) {
		return posts, nil
	}

	f, err := s.gh.GetFile(ctx, postsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts = []models.Post{}
	if f != nil {
		if err := json.Unmarshal(f.Content, &posts); err != nil {
			return nil, fmt.Errorf("list posts: decode index: %w", err)
		}
	}

	s.storeJSON(ctx, key, posts)
	return posts, nil
}

// GetPost loads a single post, body included, from its markdown file.
// Returns nil when the post does not exist.
func (s *Service) GetPost(ctx context.Context, postSlug string) (*models.Post, error) {
	key := cache.DomainKey(domainPosts, postSlug)

	var cached models.Post
	if s.cachedJSON(ctx, key, &cached) {
		return &cached, nil
	}

	f, err := s.gh.GetFile(ctx, postPath(postSlug))
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postSlug, err)
	}
	if f == nil {
		return nil, nil
	}

	doc, err := frontmatter.Parse(string(f.Content))
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postSlug, err)
	}
	post := documentToPost(doc, postSlug)

	s.storeJSON(ctx, key, post)
	return post, nil
}

// SavePost creates or updates a post. A missing slug is generated from
// the title. Two commits result: the markdown file and the index update.
func (s *Service) SavePost(ctx context.Context, patch *models.PostPatch, actor string) (*models.Post, error) {
	postSlug := patch.Slug
	if postSlug == "" {
		if patch.Title == nil || *patch.Title == "" {
			return nil, fmt.Errorf("save post: title required to generate slug")
		}
		postSlug = slug.Generate(*patch.Title)
	}

	indexFile, err := s.gh.GetFile(ctx, postsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("save post: read index: %w", err)
	}
	var posts []models.Post
	var indexSHA string
	if indexFile != nil {
		indexSHA = indexFile.SHA
		if err := json.Unmarshal(indexFile.Content, &posts); err != nil {
			return nil, fmt.Errorf("save post: decode index: %w", err)
		}
	}

	existingIdx := -1
	for i := range posts {
		if posts[i].Slug == postSlug {
			existingIdx = i
			break
		}
	}

	// Build the full post: existing body and fields from the markdown
	// file for updates, defaults for new posts.
	var post *models.Post
	if existingIdx >= 0 {
		post, err = s.GetPost(ctx, postSlug)
		if err != nil {
			return nil, err
		}
		if post == nil {
			// Index entry without a markdown file; start from the meta.
			p := posts[existingIdx]
			post = &p
		}
	} else {
		post = &models.Post{
			Slug:     postSlug,
			Author:   defaultAuthor,
			Category: defaultCategory,
			ReadTime: defaultReadTime,
			Tags:     []string{},
		}
	}
	patch.Apply(post)
	post.Slug = postSlug

	now := time.Now().UTC()
	post.UpdatedAt = now
	if existingIdx >= 0 {
		post.CreatedAt = posts[existingIdx].CreatedAt
	} else {
		post.CreatedAt = now
	}

	// Write the markdown file first; if it fails the index stays intact.
	mdFile, err := s.gh.GetFile(ctx, postPath(postSlug))
	if err != nil {
		return nil, fmt.Errorf("save post: read markdown: %w", err)
	}
	var mdSHA string
	if mdFile != nil {
		mdSHA = mdFile.SHA
	}

	action := "Create"
	auditAction := "create"
	if existingIdx >= 0 {
		action = "Update"
		auditAction = "update"
	}
	mdContent := frontmatter.Serialize(postToDocument(post))
	msg := fmt.Sprintf("%s blog post: %s", action, post.Title)
	if err := s.gh.PutFile(ctx, postPath(postSlug), []byte(mdContent), msg, mdSHA); err != nil {
		return nil, fmt.Errorf("save post: write markdown: %w", err)
	}

	// Then the index: updates merge over the existing entry, new posts
	// are prepended so the index stays newest first.
	meta := post.Meta()
	if existingIdx >= 0 {
		posts[existingIdx] = meta
	} else {
		posts = append([]models.Post{meta}, posts...)
	}

	indexJSON, err := marshalIndent(posts)
	if err != nil {
		return nil, fmt.Errorf("save post: encode index: %w", err)
	}
	if err := s.gh.PutFile(ctx, postsIndexPath, indexJSON, "Update blog posts index", indexSHA); err != nil {
		return nil, fmt.Errorf("save post: write index: %w", err)
	}

	s.invalidate(ctx, domainPosts)
	s.logWrite(domainPosts, postSlug, auditAction, actor)
	return post, nil
}

// DeletePost removes a post's markdown file and its index entry. Deleting
// a slug with no markdown file still cleans the index.
func (s *Service) DeletePost(ctx context.Context, postSlug, actor string) error {
	indexFile, err := s.gh.GetFile(ctx, postsIndexPath)
	if err != nil {
		return fmt.Errorf("delete post: read index: %w", err)
	}
	var posts []models.Post
	var indexSHA string
	if indexFile != nil {
		indexSHA = indexFile.SHA
		if err := json.Unmarshal(indexFile.Content, &posts); err != nil {
			return fmt.Errorf("delete post: decode index: %w", err)
		}
	}

	filtered := posts[:0]
	for _, p := range posts {
		if p.Slug != postSlug {
			filtered = append(filtered, p)
		}
	}

	mdFile, err := s.gh.GetFile(ctx, postPath(postSlug))
	if err != nil {
		return fmt.Errorf("delete post: read markdown: %w", err)
	}
	if mdFile != nil {
		msg := fmt.Sprintf("Delete blog post: %s", postSlug)
		if err := s.gh.DeleteFile(ctx, postPath(postSlug), msg, mdFile.SHA); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
	}

	indexJSON, err := marshalIndent(filtered)
	if err != nil {
		return fmt.Errorf("delete post: encode index: %w", err)
	}
	msg := fmt.Sprintf("Remove post from index: %s", postSlug)
	if err := s.gh.PutFile(ctx, postsIndexPath, indexJSON, msg, indexSHA); err != nil {
		return fmt.Errorf("delete post: write index: %w", err)
	}

	s.invalidate(ctx, domainPosts)
	s.logWrite(domainPosts, postSlug, "delete", actor)
	return nil
}

// postToDocument lays out the frontmatter fields in the canonical order
// used by the site repo's markdown files.
func postToDocument(p *models.Post) *frontmatter.Document {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &frontmatter.Document{
		Fields: []frontmatter.Field{
			{Key: "title", Value: p.Title},
			{Key: "date", Value: p.Date},
			{Key: "author", Value: p.Author},
			{Key: "featuredImage", Value: p.FeaturedImage},
			{Key: "category", Value: p.Category},
			{Key: "excerpt", Value: p.Excerpt},
			{Key: "tags", Value: tags},
			{Key: "draft", Value: p.Draft},
			{Key: "readTime", Value: p.ReadTime},
			{Key: "featured", Value: p.Featured},
		},
		Body: p.Body,
	}
}

// documentToPost maps parsed frontmatter onto a post.
func documentToPost(doc *frontmatter.Document, postSlug string) *models.Post {
	return &models.Post{
		Slug:          postSlug,
		Title:         doc.String("title"),
		Date:          doc.String("date"),
		Author:        doc.String("author"),
		FeaturedImage: doc.String("featuredImage"),
		Category:      doc.String("category"),
		Excerpt:       doc.String("excerpt"),
		Tags:          doc.Strings("tags"),
		Draft:         doc.Bool("draft"),
		ReadTime:      doc.Int("readTime"),
		Featured:      doc.Bool("featured"),
		Body:          doc.Body,
	}
}
