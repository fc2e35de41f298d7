package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/users"
)

type stubRepoManager struct {
	migrationsErr error
}

var _ repomanager.RepositoryManager = (*stubRepoManager)(nil)

func (m *stubRepoManager) Users(db dbx.DBTX) users.Repository { return nil }
func (m *stubRepoManager) Posts(db dbx.DBTX) posts.Repository { return nil }
func (m *stubRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return m.migrationsErr
}

func newPingableMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestInitDB_ClosesHandleOnPingFailure(t *testing.T) {
	db, mock := newPingableMockDB(t)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	if err := initDB(context.Background(), db, &stubRepoManager{}); err == nil {
		t.Fatal("expected ping error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestInitDB_ClosesHandleOnMigrationFailure(t *testing.T) {
	db, mock := newPingableMockDB(t)

	mock.ExpectPing()
	mock.ExpectClose()

	rm := &stubRepoManager{migrationsErr: errors.New("bad migration")}
	if err := initDB(context.Background(), db, rm); err == nil {
		t.Fatal("expected migration error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestInitDB_Success(t *testing.T) {
	db, mock := newPingableMockDB(t)
	defer db.Close()

	mock.ExpectPing()

	if err := initDB(context.Background(), db, &stubRepoManager{}); err != nil {
		t.Fatalf("initDB error: %v", err)
	}
}
