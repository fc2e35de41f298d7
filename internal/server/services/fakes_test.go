package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/dmitrijs2005/miniblog/internal/dbx"
	"github.com/dmitrijs2005/miniblog/internal/server/auth"
	"github.com/dmitrijs2005/miniblog/internal/server/config"
	"github.com/dmitrijs2005/miniblog/internal/server/mail"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BaseURL:               "http://localhost:3000",
	}
}

// --- fake users repository ---

type fakeUsersRepo struct {
	byID       map[string]*models.User
	byEmail    map[string]*models.User
	byFullName map[string]*models.User

	createErr         error
	updateErr         error
	updatePasswordErr error
	softDeleteErr     error
	appendPostErr     error
	listOut           []*models.User
	listErr           error

	created         []*models.User
	updated         []*models.User
	passwordUpdates map[string]string
	softDeleted     []string
	appendedPosts   [][2]string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byID:            map[string]*models.User{},
		byEmail:         map[string]*models.User{},
		byFullName:      map[string]*models.User{},
		passwordUpdates: map[string]string{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	f.byFullName[u.FullName] = u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.created = append(f.created, u)
	f.add(u)
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByFullName(ctx context.Context, fullName string) (*models.User, error) {
	if u, ok := f.byFullName[fullName]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, u)
	return nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	if f.updatePasswordErr != nil {
		return f.updatePasswordErr
	}
	f.passwordUpdates[id] = hash
	return nil
}

func (f *fakeUsersRepo) SoftDelete(ctx context.Context, id string) error {
	if f.softDeleteErr != nil {
		return f.softDeleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func (f *fakeUsersRepo) AppendPost(ctx context.Context, userID, postID string) error {
	if f.appendPostErr != nil {
		return f.appendPostErr
	}
	f.appendedPosts = append(f.appendedPosts, [2]string{userID, postID})
	return nil
}

// --- fake posts repository ---

type fakePostsRepo struct {
	byID map[string]*models.Post

	createErr error
	updateErr error
	deleteErr error
	listOut   []*models.Post
	listErr   error
	likesOut  int64
	likesErr  error

	created     []*models.Post
	softDeleted []string
	likedIDs    []string
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{byID: map[string]*models.Post{}}
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.created = append(f.created, p)
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) List(ctx context.Context) ([]*models.Post, error) {
	return f.listOut, f.listErr
}

func (f *fakePostsRepo) Update(ctx context.Context, id, title, content string) (*models.Post, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()
	return p, nil
}

func (f *fakePostsRepo) SoftDelete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func (f *fakePostsRepo) IncrementLikes(ctx context.Context, id string) (int64, error) {
	if f.likesErr != nil {
		return 0, f.likesErr
	}
	f.likedIDs = append(f.likedIDs, id)
	return f.likesOut, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users *fakeUsersRepo
	posts *fakePostsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), posts: newFakePostsRepo()}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) Posts(db dbx.DBTX) posts.Repository { return m.posts }
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

// --- fake mail queue ---

type fakeMailQueue struct {
	enqueued []mail.Message
	full     bool
}

func (q *fakeMailQueue) Enqueue(ctx context.Context, msg mail.Message) bool {
	if q.full {
		return false
	}
	q.enqueued = append(q.enqueued, msg)
	return true
}

// --- service constructors used across tests ---

func newTestUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager, mq MailEnqueuer) *UserService {
	t.Helper()
	if mq == nil {
		mq = &fakeMailQueue{}
	}
	return NewUserService(db, rm, auth.NewBcryptHasher(), auth.NewOwnershipPolicy(), mq, testConfig())
}

func newTestPostService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *PostService {
	t.Helper()
	return NewPostService(db, rm, auth.NewOwnershipPolicy())
}
