package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inkwell/inkwell-server/internal/derive"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/model"
)

const (
	maxTitleLength   = 200
	maxExcerptLength = 500
	maxTagsLength    = 500

	defaultListLimit = 20
	maxListLimit     = 100

	// maxSlugAttempts bounds the insert retry loop when a concurrent writer
	// takes the derived slug between the existence check and the insert.
	maxSlugAttempts = 3
)

// Post is the content authorship service. Reads are public but limited to
// published records for everyone except the author; every mutation requires
// the caller to own the record.
type Post struct {
	postStore model.PostStore
	logger    *logger.Logger
}

// NewPost creates the content authorship service.
func NewPost(postStore model.PostStore, logger *logger.Logger) *Post {
	return &Post{postStore: postStore, logger: logger}
}

// Create stores a new post owned by caller. Slug and excerpt are derived
// when absent; the slug is made unique by suffixing, and a lost race on the
// slug unique constraint re-derives and retries.
func (p *Post) Create(ctx context.Context, caller *model.User, params model.CreatePostParams) (model.Post, error) {
	if caller == nil {
		return model.Post{}, model.NewUnauthorizedError("authentication required")
	}

	params.Title = strings.TrimSpace(params.Title)
	if err := validateTitle(params.Title); err != nil {
		return model.Post{}, err
	}
	if params.Content == "" {
		return model.Post{}, model.NewValidationError("content is required")
	}

	excerpt := strings.TrimSpace(params.Excerpt)
	if excerpt == "" {
		excerpt = derive.Excerpt(params.Content, derive.ExcerptMaxLength)
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLength {
		return model.Post{}, model.NewValidationError("excerpt must be at most %d characters", maxExcerptLength)
	}

	tags := model.JoinTags(params.Tags)
	if tags != nil && utf8.RuneCountInString(*tags) > maxTagsLength {
		return model.Post{}, model.NewValidationError("tags must total at most %d characters", maxTagsLength)
	}

	post := model.Post{
		Title:       params.Title,
		Content:     params.Content,
		Excerpt:     &excerpt,
		Tags:        tags,
		IsPublished: params.Published,
		AuthorID:    caller.ID,
	}
	if params.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := derive.Slug(params.Title, func(candidate string) (bool, error) {
			return p.postStore.SlugExists(ctx, candidate, 0)
		})
		if err != nil {
			p.logger.Error("Post service: failed to derive slug", "title", params.Title, "error", err.Error())
			return model.Post{}, model.NewInternalError(err)
		}
		post.Slug = &slug

		created, err := p.postStore.Create(ctx, post)
		if err == nil {
			p.logger.Info("Post service: post created", "post_id", created.ID, "slug", slug, "author_id", caller.ID)
			return created, nil
		}

		var dup *model.DuplicateError
		if errors.As(err, &dup) && dup.Field == "slug" {
			continue
		}
		p.logger.Error("Post service: failed to create post", "author_id", caller.ID, "error", err.Error())
		return model.Post{}, model.NewInternalError(err)
	}

	return model.Post{}, model.NewInternalError(errors.New("slug contention persisted across retries"))
}

// Get returns a post by id. Unpublished posts resolve only for their author;
// everyone else observes absence, not denial.
func (p *Post) Get(ctx context.Context, caller *model.User, id int64) (model.Post, error) {
	post, err := p.postStore.GetByID(ctx, id, false)
	if err != nil {
		return model.Post{}, p.mapReadError(err, "post", "post_id", id)
	}
	if !visibleTo(post, caller) {
		return model.Post{}, model.NewNotFoundError("post")
	}
	return post, nil
}

// GetBySlug returns a post by its slug, with the same visibility rule as Get.
func (p *Post) GetBySlug(ctx context.Context, caller *model.User, slug string) (model.Post, error) {
	post, err := p.postStore.GetBySlug(ctx, slug, false)
	if err != nil {
		return model.Post{}, p.mapReadError(err, "post", "slug", slug)
	}
	if !visibleTo(post, caller) {
		return model.Post{}, model.NewNotFoundError("post")
	}
	return post, nil
}

// List returns published posts, newest first by publication time. The limit
// is clamped to a bounded page size.
func (p *Post) List(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	posts, err := p.postStore.List(ctx, true, limit)
	if err != nil {
		p.logger.Error("Post service: failed to list posts", "error", err.Error())
		return nil, model.NewInternalError(err)
	}
	return posts, nil
}

// ListByAuthor returns an author's posts. The author sees drafts too; every
// other caller sees only published records.
func (p *Post) ListByAuthor(ctx context.Context, caller *model.User, authorID int64) ([]model.Post, error) {
	publishedOnly := caller == nil || caller.ID != authorID
	posts, err := p.postStore.ListByAuthor(ctx, authorID, publishedOnly)
	if err != nil {
		p.logger.Error("Post service: failed to list posts by author", "author_id", authorID, "error", err.Error())
		return nil, model.NewInternalError(err)
	}
	return posts, nil
}

// Search returns published posts whose title, content or tags contain term.
func (p *Post) Search(ctx context.Context, term string) ([]model.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, model.NewValidationError("search term is required")
	}
	posts, err := p.postStore.Search(ctx, term, true)
	if err != nil {
		p.logger.Error("Post service: failed to search posts", "term", term, "error", err.Error())
		return nil, model.NewInternalError(err)
	}
	return posts, nil
}

// Update applies a partial update to a post the caller owns. Title and
// content cannot be cleared; clearing the excerpt re-derives it from the
// effective content; clearing tags removes them. The slug never changes
// after creation, so existing links stay valid.
func (p *Post) Update(ctx context.Context, caller *model.User, id int64, params model.UpdatePostParams) (model.Post, error) {
	post, err := p.loadOwned(ctx, caller, id)
	if err != nil {
		return model.Post{}, err
	}

	if params.Title.Set {
		if params.Title.Null {
			return model.Post{}, model.NewValidationError("title cannot be cleared")
		}
		title := strings.TrimSpace(params.Title.Value)
		if err := validateTitle(title); err != nil {
			return model.Post{}, err
		}
		post.Title = title
	}

	if params.Content.Set {
		if params.Content.Null || params.Content.Value == "" {
			return model.Post{}, model.NewValidationError("content cannot be cleared")
		}
		post.Content = params.Content.Value
	}

	if params.Excerpt.Set {
		if params.Excerpt.Null {
			excerpt := derive.Excerpt(post.Content, derive.ExcerptMaxLength)
			post.Excerpt = &excerpt
		} else {
			excerpt := strings.TrimSpace(params.Excerpt.Value)
			if excerpt == "" {
				excerpt = derive.Excerpt(post.Content, derive.ExcerptMaxLength)
			}
			if utf8.RuneCountInString(excerpt) > maxExcerptLength {
				return model.Post{}, model.NewValidationError("excerpt must be at most %d characters", maxExcerptLength)
			}
			post.Excerpt = &excerpt
		}
	}

	if params.Tags.Set {
		if params.Tags.Null {
			post.Tags = nil
		} else {
			tags := model.JoinTags(params.Tags.Value)
			if tags != nil && utf8.RuneCountInString(*tags) > maxTagsLength {
				return model.Post{}, model.NewValidationError("tags must total at most %d characters", maxTagsLength)
			}
			post.Tags = tags
		}
	}

	if params.Published.Set && !params.Published.Null {
		switch {
		case params.Published.Value && !post.IsPublished:
			now := time.Now()
			post.IsPublished = true
			post.PublishedAt = &now
		case !params.Published.Value && post.IsPublished:
			post.IsPublished = false
			post.PublishedAt = nil
		}
	}

	updated, err := p.postStore.Update(ctx, post)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, model.NewNotFoundError("post")
		}
		p.logger.Error("Post service: failed to update post", "post_id", id, "error", err.Error())
		return model.Post{}, model.NewInternalError(err)
	}

	p.logger.Info("Post service: post updated", "post_id", id)

	return updated, nil
}

// Publish marks a post the caller owns as published, stamping the
// publication time. Publishing an already published post keeps its original
// timestamp.
func (p *Post) Publish(ctx context.Context, caller *model.User, id int64) (model.Post, error) {
	post, err := p.loadOwned(ctx, caller, id)
	if err != nil {
		return model.Post{}, err
	}
	if post.IsPublished {
		return post, nil
	}

	now := time.Now()
	published, err := p.postStore.SetPublished(ctx, id, &now)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, model.NewNotFoundError("post")
		}
		p.logger.Error("Post service: failed to publish post", "post_id", id, "error", err.Error())
		return model.Post{}, model.NewInternalError(err)
	}

	p.logger.Info("Post service: post published", "post_id", id)

	return published, nil
}

// Unpublish returns a post the caller owns to draft state.
func (p *Post) Unpublish(ctx context.Context, caller *model.User, id int64) (model.Post, error) {
	post, err := p.loadOwned(ctx, caller, id)
	if err != nil {
		return model.Post{}, err
	}
	if !post.IsPublished {
		return post, nil
	}

	unpublished, err := p.postStore.SetPublished(ctx, id, nil)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, model.NewNotFoundError("post")
		}
		p.logger.Error("Post service: failed to unpublish post", "post_id", id, "error", err.Error())
		return model.Post{}, model.NewInternalError(err)
	}

	p.logger.Info("Post service: post unpublished", "post_id", id)

	return unpublished, nil
}

// Delete removes a post the caller owns.
func (p *Post) Delete(ctx context.Context, caller *model.User, id int64) error {
	if _, err := p.loadOwned(ctx, caller, id); err != nil {
		return err
	}

	if err := p.postStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("post")
		}
		p.logger.Error("Post service: failed to delete post", "post_id", id, "error", err.Error())
		return model.NewInternalError(err)
	}

	p.logger.Info("Post service: post deleted", "post_id", id)

	return nil
}

// loadOwned fetches a post for mutation, enforcing authentication and
// ownership. Non-owners get Forbidden, not NotFound: a mutation attempt is
// an explicit denial, unlike a read.
func (p *Post) loadOwned(ctx context.Context, caller *model.User, id int64) (model.Post, error) {
	if caller == nil {
		return model.Post{}, model.NewUnauthorizedError("authentication required")
	}

	post, err := p.postStore.GetByID(ctx, id, false)
	if err != nil {
		return model.Post{}, p.mapReadError(err, "post", "post_id", id)
	}

	if post.AuthorID != caller.ID {
		return model.Post{}, model.NewForbiddenError("post belongs to another author")
	}

	return post, nil
}

func (p *Post) mapReadError(err error, resource string, key string, value any) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewNotFoundError(resource)
	}
	p.logger.Error("Post service: failed to load "+resource, key, value, "error", err.Error())
	return model.NewInternalError(err)
}

func visibleTo(post model.Post, caller *model.User) bool {
	if post.IsPublished {
		return true
	}
	return caller != nil && caller.ID == post.AuthorID
}

func validateTitle(title string) error {
	if title == "" {
		return model.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return model.NewValidationError("title must be at most %d characters", maxTitleLength)
	}
	return nil
}
