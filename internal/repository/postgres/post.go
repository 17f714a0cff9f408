package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell/inkwell-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

const postColumns = `id, title, content, excerpt, slug, tags, is_published, published_at, author_id, created_at, updated_at`

func scanPost(row *sql.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Excerpt, &post.Slug, &post.Tags,
		&post.IsPublished, &post.PublishedAt, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Excerpt, &post.Slug, &post.Tags,
			&post.IsPublished, &post.PublishedAt, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (title, content, excerpt, slug, tags, is_published, published_at, author_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + postColumns

	saved, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Excerpt, post.Slug, post.Tags,
		post.IsPublished, post.PublishedAt, post.AuthorID,
	))
	if err != nil {
		if dup, ok := uniqueViolation(err); ok {
			return model.Post{}, dup
		}
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return saved, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64, publishedOnly bool) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	if publishedOnly {
		query += ` AND is_published`
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND is_published`
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return post, nil
}

// List returns posts newest first: by publication time when restricted to
// published posts, by creation time otherwise.
func (r *PostRepository) List(ctx context.Context, publishedOnly bool, limit int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM posts WHERE is_published ORDER BY published_at DESC LIMIT $1`
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, publishedOnly bool) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 AND is_published ORDER BY published_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts by author: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Search(ctx context.Context, term string, publishedOnly bool) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
			  WHERE (title LIKE $1 OR content LIKE $1 OR tags LIKE $1)`
	if publishedOnly {
		query += ` AND is_published`
	}
	query += ` ORDER BY published_at DESC NULLS LAST, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan searched posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

// Update rewrites the mutable columns in a single statement. The slug is
// fixed at creation and stays untouched.
func (r *PostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	query := `UPDATE posts
			  SET title = $1, content = $2, excerpt = $3, tags = $4,
			      is_published = $5, published_at = $6, updated_at = NOW()
			  WHERE id = $7
			  RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Excerpt, post.Tags,
		post.IsPublished, post.PublishedAt, post.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

// SetPublished flips the publication state atomically: a non-nil time
// publishes, nil returns the post to draft.
func (r *PostRepository) SetPublished(ctx context.Context, id int64, publishedAt *time.Time) (model.Post, error) {
	query := `UPDATE posts
			  SET is_published = $2::timestamptz IS NOT NULL, published_at = $2, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, publishedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to set post publication: %w", err)
	}

	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}
