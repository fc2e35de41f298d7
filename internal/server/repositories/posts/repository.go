// Package posts provides the persistence layer for blog posts.
package posts

import (
	"context"

	"github.com/dmitrijs2005/miniblog/internal/server/models"
)

// Repository is the storage contract for post records. Lookups see live
// (non-soft-deleted) posts only.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id, title, content string) (*models.Post, error)
	SoftDelete(ctx context.Context, id string) error

	// IncrementLikes atomically adds one like and returns the new count.
	IncrementLikes(ctx context.Context, id string) (int64, error)
}
