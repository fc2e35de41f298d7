package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique_violation error code.
const uniqueViolationCode = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record and returns it with timestamps filled in.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, full_name, age, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FullName, user.Age, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Two registrations can both pass the service's pre-check; the
		// partial unique indexes are the final arbiter, so their violation
		// is the duplicate error, not an internal one.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			switch pgErr.ConstraintName {
			case "users_live_email_idx":
				return nil, common.ErrorEmailExists
			case "users_live_full_name_idx":
				return nil, common.ErrorNameExists
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, full_name, age, email, password_hash, created_at, updated_at, deleted_at
		FROM users
		WHERE ` + where + ` AND deleted_at IS NULL
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.FullName, &user.Age, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadPostIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns the live user with the given id, post list included.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail returns the live user with the given email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByFullName returns the live user with the given full name.
func (r *PostgresRepository) GetByFullName(ctx context.Context, fullName string) (*models.User, error) {
	return r.getOne(ctx, "full_name = $1", fullName)
}

// List returns all live users with their post lists.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, full_name, age, email, password_hash, created_at, updated_at, deleted_at
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	byID := map[string]*models.User{}
	var users []*models.User
	for rows.Next() {
		user := &models.User{PostIDs: []string{}}
		if err := rows.Scan(
			&user.ID, &user.FullName, &user.Age, &user.Email, &user.PasswordHash,
			&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		byID[user.ID] = user
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	refRows, err := r.db.QueryContext(ctx, `SELECT user_id, post_id FROM user_posts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer refRows.Close()

	for refRows.Next() {
		var userID, postID string
		if err := refRows.Scan(&userID, &postID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if user, ok := byID[userID]; ok {
			user.PostIDs = append(user.PostIDs, postID)
		}
	}
	if err := refRows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

// Update rewrites the profile fields and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = $2, age = $3, email = $4, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, user.ID, user.FullName, user.Age, user.Email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

// UpdatePassword replaces the stored digest.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

// SoftDelete stamps deleted_at; the row stays.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

// AppendPost inserts the reverse-reference row.
func (r *PostgresRepository) AppendPost(ctx context.Context, userID, postID string) error {
	query := `INSERT INTO user_posts (user_id, post_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) loadPostIDs(ctx context.Context, user *models.User) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id FROM user_posts WHERE user_id = $1 ORDER BY created_at`, user.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	user.PostIDs = []string{}
	for rows.Next() {
		var postID string
		if err := rows.Scan(&postID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		user.PostIDs = append(user.PostIDs, postID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
