// Package users provides the persistence layer for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/miniblog/internal/server/models"
)

// Repository is the storage contract for user records. Lookups see live
// (non-soft-deleted) users only.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByFullName(ctx context.Context, fullName string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SoftDelete(ctx context.Context, id string) error

	// AppendPost records postID in the user's owned-post list. Callers run
	// it in the same transaction as the post insert.
	AppendPost(ctx context.Context, userID, postID string) error
}
