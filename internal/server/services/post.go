package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/auth"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PostService provides post operations. The post side and the owner's
// reverse-reference list are written in one transaction on create; update
// and delete are gated by the ownership policy.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *auth.OwnershipPolicy
}

// NewPostService constructs a PostService.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, policy *auth.OwnershipPolicy) *PostService {
	return &PostService{db: db, repomanager: m, policy: policy}
}

// Create inserts a post owned by subjectID and appends its id to the
// owner's post list in the same transaction, so the two sides of the
// relation cannot diverge on failure.
func (s *PostService) Create(ctx context.Context, subjectID, title, content string) (*models.Post, error) {
	// The owner must still exist; a token can outlive its account.
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	post := &models.Post{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		UserID:  subjectID,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Posts(tx).Create(ctx, post)
		if err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		post = created
		if err := s.repomanager.Users(tx).AppendPost(ctx, subjectID, post.ID); err != nil {
			return fmt.Errorf("error linking post to user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, common.ErrorInternal
	}

	return post, nil
}

// List returns all live posts.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return posts, nil
}

// Get returns one live post.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return post, nil
}

// Update rewrites title and content. Only the post's owner may do it.
func (s *PostService) Update(ctx context.Context, subjectID, postID, title, content string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if !s.policy.CanMutatePost(subjectID, post.UserID) {
		return nil, common.ErrorForbidden
	}

	updated, err := repo.Update(ctx, postID, title, content)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// Delete soft-deletes the post. Only the post's owner may do it. The id
// stays in the owner's post list, matching the way deleted posts keep
// counting toward the profile's post tally.
func (s *PostService) Delete(ctx context.Context, subjectID, postID string) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if !s.policy.CanMutatePost(subjectID, post.UserID) {
		return common.ErrorForbidden
	}

	if err := repo.SoftDelete(ctx, postID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Like adds one like and returns the new count. Any authenticated caller
// may like any post, their own included; repeated likes keep counting.
func (s *PostService) Like(ctx context.Context, postID string) (int64, error) {
	likes, err := s.repomanager.Posts(s.db).IncrementLikes(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		return 0, common.ErrorInternal
	}
	return likes, nil
}
