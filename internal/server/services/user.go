// Package services contains server-side business logic. This file implements
// UserService: registration, login, token refresh and user profile
// management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/server/auth"
	"github.com/dmitrijs2005/miniblog/internal/server/config"
	"github.com/dmitrijs2005/miniblog/internal/server/mail"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MailEnqueuer hands a message to the background delivery queue. Enqueue is
// best-effort: the return value says whether the message was accepted, and
// no caller treats rejection as a failure.
type MailEnqueuer interface {
	Enqueue(ctx context.Context, msg mail.Message) bool
}

// RegisterResult is what a successful registration hands back to the
// transport layer.
type RegisterResult struct {
	User             *models.User
	Token            string
	VerificationLink string
}

// UserService provides account operations:
//   - Register: duplicate pre-check, hash, persist, token, verification mail
//   - Login: credential check and token issuance
//   - Refresh: new token for a still-valid one
//   - profile read/update/delete and password change, ownership-gated
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        auth.PasswordHasher
	policy        *auth.OwnershipPolicy
	mailq         MailEnqueuer
	jwtSecret     []byte
	tokenValidity time.Duration
	baseURL       string
}

// NewUserService constructs a UserService from repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, policy *auth.OwnershipPolicy, mailq MailEnqueuer, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		policy:        policy,
		mailq:         mailq,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		baseURL:       cfg.BaseURL,
	}
}

// Register creates a new account. Full name and e-mail must be unused among
// live users; the password is stored only as a bcrypt digest. On success a
// token is issued for the new user and the verification mail is queued —
// queue failures never fail the registration.
func (s *UserService) Register(ctx context.Context, fullName, email string, age int, password string) (*RegisterResult, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByFullName(ctx, fullName); err == nil {
		return nil, common.ErrorNameExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorEmailExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Age:          age,
		Email:        email,
		PasswordHash: digest,
		PostIDs:      []string{},
	}
	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	verificationLink := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, user.ID)
	s.mailq.Enqueue(ctx, mail.VerificationMessage(email, fullName, verificationLink))

	return &RegisterResult{User: user, Token: token, VerificationLink: verificationLink}, nil
}

// Login verifies the credentials and returns a fresh token. An unknown
// e-mail yields ErrorNotFound, a wrong password ErrorBadPassword.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorBadPassword
	}

	return auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
}

// Refresh verifies the presented token (expiry included) and issues a new
// one for the same subject. The old token stays usable until it expires.
func (s *UserService) Refresh(tokenString string) (string, error) {
	return auth.RefreshToken(tokenString, s.jwtSecret, s.tokenValidity)
}

// List returns all live users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return users, nil
}

// GetInfo returns the public projection of one live user.
func (s *UserService) GetInfo(ctx context.Context, userID string) (*models.UserInfo, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	info := user.Info()
	return &info, nil
}

// Update rewrites the profile of targetID. Only the owner may do it; an
// empty fullName/email or a nil age keeps the stored value, so an explicit
// zero age is distinguishable from an absent field.
func (s *UserService) Update(ctx context.Context, subjectID, targetID, fullName string, age *int, email string) error {
	if !s.policy.CanMutateUser(subjectID, targetID) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if age != nil {
		user.Age = *age
	}
	if email != "" {
		user.Email = email
	}

	if err := repo.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Delete soft-deletes the account. Only the owner may do it.
func (s *UserService) Delete(ctx context.Context, subjectID, targetID string) error {
	if !s.policy.CanMutateUser(subjectID, targetID) {
		return common.ErrorForbidden
	}

	if err := s.repomanager.Users(s.db).SoftDelete(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// ChangePassword re-hashes and replaces the stored digest. Ownership-gated
// like every other user mutation.
func (s *UserService) ChangePassword(ctx context.Context, subjectID, targetID, newPassword string) error {
	if !s.policy.CanMutateUser(subjectID, targetID) {
		return common.ErrorForbidden
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, targetID, digest); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
