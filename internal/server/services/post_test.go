package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
)

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	seededUser(rm, "u-1", "Ana Ivanova", "ana@x.com", "pw")
	s := newTestPostService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectCommit()

	post, err := s.Create(ctx, "u-1", "First", "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.ID == "" || post.UserID != "u-1" || post.Title != "First" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if len(rm.users.appendedPosts) != 1 {
		t.Fatalf("expected 1 owner link, got %d", len(rm.users.appendedPosts))
	}
	if link := rm.users.appendedPosts[0]; link[0] != "u-1" || link[1] != post.ID {
		t.Fatalf("owner link = %v", link)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostService_CreateUnknownOwner(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newTestPostService(t, db, newFakeRepoManager())

	if _, err := s.Create(ctx, "ghost", "First", "hello"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("got %v, want ErrorNotFound", err)
	}
}

func TestPostService_CreateRollsBackOnLinkFailure(t *testing.T) {
	ctx := context.Background()
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	seededUser(rm, "u-1", "Ana Ivanova", "ana@x.com", "pw")
	rm.users.appendPostErr = errors.New("link failed")
	s := newTestPostService(t, db, rm)

	mock.ExpectBegin()
	mock.ExpectRollback()

	if _, err := s.Create(ctx, "u-1", "First", "hello"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("got %v, want ErrorInternal", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.posts.listOut = []*models.Post{{ID: "p-1"}, {ID: "p-2"}}
	rm.posts.byID["p-1"] = &models.Post{ID: "p-1", Title: "First", UserID: "u-1"}
	s := newTestPostService(t, db, rm)

	got, err := s.List(ctx)
	if err != nil || len(got) != 2 {
		t.Fatalf("List = %v, %v", got, err)
	}

	post, err := s.Get(ctx, "p-1")
	if err != nil || post.Title != "First" {
		t.Fatalf("Get = %+v, %v", post, err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("got %v, want ErrorNotFound", err)
	}
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.posts.byID["p-1"] = &models.Post{ID: "p-1", Title: "First", Content: "hello", UserID: "u-1"}
	s := newTestPostService(t, db, rm)

	if _, err := s.Update(ctx, "intruder", "p-1", "X", "Y"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("non-owner update: got %v, want ErrorForbidden", err)
	}

	updated, err := s.Update(ctx, "u-1", "p-1", "New title", "new body")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "New title" || updated.Content != "new body" {
		t.Fatalf("unexpected post: %+v", updated)
	}

	if _, err := s.Update(ctx, "u-1", "missing", "X", "Y"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("got %v, want ErrorNotFound", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.posts.byID["p-1"] = &models.Post{ID: "p-1", UserID: "u-1"}
	s := newTestPostService(t, db, rm)

	if err := s.Delete(ctx, "intruder", "p-1"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("non-owner delete: got %v, want ErrorForbidden", err)
	}
	if err := s.Delete(ctx, "u-1", "p-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(rm.posts.softDeleted) != 1 || rm.posts.softDeleted[0] != "p-1" {
		t.Fatalf("soft-deleted ids = %v", rm.posts.softDeleted)
	}
	if err := s.Delete(ctx, "u-1", "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("got %v, want ErrorNotFound", err)
	}
}

func TestPostService_Like(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.posts.byID["p-1"] = &models.Post{ID: "p-1", UserID: "u-1"}
	rm.posts.likesOut = 5
	s := newTestPostService(t, db, rm)

	// Liking is open to any authenticated user, the owner included.
	likes, err := s.Like(ctx, "p-1")
	if err != nil || likes != 5 {
		t.Fatalf("Like = %d, %v", likes, err)
	}

	rm.posts.likesErr = common.ErrorNotFound
	if _, err := s.Like(ctx, "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("got %v, want ErrorNotFound", err)
	}
}
