// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the provided DBTX, so a
// service can run the same repository code against the pool or against an
// open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
