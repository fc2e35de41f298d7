package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new post and returns it with timestamps filled in.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, title, content, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING likes, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.UserID).
		Scan(&post.Likes, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// GetByID returns the live post with the given id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT id, title, content, likes, user_id, created_at, updated_at, deleted_at
		FROM posts
		WHERE id = $1 AND deleted_at IS NULL
	`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Likes, &post.UserID,
		&post.CreatedAt, &post.UpdatedAt, &post.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// List returns all live posts, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT id, title, content, likes, user_id, created_at, updated_at, deleted_at
		FROM posts
		WHERE deleted_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Likes, &post.UserID,
			&post.CreatedAt, &post.UpdatedAt, &post.DeletedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return posts, nil
}

// Update rewrites title and content and returns the updated post.
func (r *PostgresRepository) Update(ctx context.Context, id, title, content string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, title, content, likes, user_id, created_at, updated_at, deleted_at
	`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id, title, content).Scan(
		&post.ID, &post.Title, &post.Content, &post.Likes, &post.UserID,
		&post.CreatedAt, &post.UpdatedAt, &post.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// SoftDelete stamps deleted_at; the row stays.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE posts
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// IncrementLikes adds one like in a single statement so concurrent likes
// never lose an increment.
func (r *PostgresRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE posts
		SET likes = likes + 1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING likes
	`
	var likes int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return likes, nil
}
