package model

import (
	"context"
	"strings"
	"time"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id int64, publishedOnly bool) (Post, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (Post, error)
	List(ctx context.Context, publishedOnly bool, limit int) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID int64, publishedOnly bool) ([]Post, error)
	Search(ctx context.Context, term string, publishedOnly bool) ([]Post, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, post Post) (Post, error)
	SetPublished(ctx context.Context, id int64, publishedAt *time.Time) (Post, error)
	Delete(ctx context.Context, id int64) error
}

// Post represents an authored content record. Slug and Excerpt are nullable
// in storage but are derived on first save, so both are set on every post
// the authorship service returns. PublishedAt is non-nil iff IsPublished.
type Post struct {
	ID          int64
	Title       string
	Content     string
	Excerpt     *string
	Slug        *string
	Tags        *string
	IsPublished bool
	PublishedAt *time.Time
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagList splits the stored comma-delimited tag string into an ordered list.
func (p Post) TagList() []string {
	if p.Tags == nil || *p.Tags == "" {
		return nil
	}
	parts := strings.Split(*p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags normalizes a tag list into the stored delimited form. Empty and
// whitespace-only entries are dropped; nil is returned when nothing remains.
func JoinTags(tags []string) *string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	joined := strings.Join(cleaned, ", ")
	return &joined
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	Title     string
	Content   string
	AuthorID  int64
	Excerpt   string
	Tags      []string
	Published bool
}

// UpdatePostParams carries a partial update. Each field distinguishes
// "not supplied" from "explicitly cleared" through Optional.
type UpdatePostParams struct {
	Title     Optional[string]
	Content   Optional[string]
	Excerpt   Optional[string]
	Tags      Optional[[]string]
	Published Optional[bool]
}
