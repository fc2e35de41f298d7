package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/logging"
	"github.com/dmitrijs2005/miniblog/internal/server/config"
	"github.com/dmitrijs2005/miniblog/internal/server/models"
	"github.com/dmitrijs2005/miniblog/internal/server/services"
)

// UserService is the account surface the transport needs.
type UserService interface {
	Register(ctx context.Context, fullName, email string, age int, password string) (*services.RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(tokenString string) (string, error)
	List(ctx context.Context) ([]*models.User, error)
	GetInfo(ctx context.Context, userID string) (*models.UserInfo, error)
	Update(ctx context.Context, subjectID, targetID, fullName string, age *int, email string) error
	Delete(ctx context.Context, subjectID, targetID string) error
	ChangePassword(ctx context.Context, subjectID, targetID, newPassword string) error
}

// PostService is the post surface the transport needs.
type PostService interface {
	Create(ctx context.Context, subjectID, title, content string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, postID string) (*models.Post, error)
	Update(ctx context.Context, subjectID, postID, title, content string) (*models.Post, error)
	Delete(ctx context.Context, subjectID, postID string) error
	Like(ctx context.Context, postID string) (int64, error)
}

// Server serves the REST API.
type Server struct {
	users     UserService
	posts     PostService
	logger    logging.Logger
	jwtSecret []byte
	srv       *http.Server
}

// NewServer wires the routes and returns a server bound to cfg.EndpointAddr.
func NewServer(cfg *config.Config, logger logging.Logger, users UserService, posts PostService) *Server {
	s := &Server{
		users:     users,
		posts:     posts,
		logger:    logger.With("module", "http"),
		jwtSecret: []byte(cfg.SecretKey),
	}

	s.srv = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           s.withRequestLog(s.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/refresh_token", s.handleRefreshToken)

	mux.Handle("GET /api/user", s.authenticated(s.handleUserList))
	mux.Handle("GET /api/user/{userId}", s.authenticated(s.handleUserInfo))
	mux.Handle("PUT /api/user/{userId}", s.authenticated(s.handleUserUpdate))
	mux.Handle("DELETE /api/user/{userId}", s.authenticated(s.handleUserDelete))
	mux.Handle("POST /api/user/{userId}/changePassword", s.authenticated(s.handleChangePassword))

	mux.Handle("GET /api/posts", s.authenticated(s.handlePostList))
	mux.Handle("GET /api/posts/{id}", s.authenticated(s.handlePostGet))
	mux.Handle("POST /api/posts", s.authenticated(s.handlePostCreate))
	mux.Handle("PUT /api/posts/{id}", s.authenticated(s.handlePostUpdate))
	mux.Handle("DELETE /api/posts/{id}", s.authenticated(s.handlePostDelete))
	mux.Handle("POST /api/posts/{id}/like", s.authenticated(s.handlePostLike))

	return mux
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "http server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "http server stopping")
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Welcome to MiniBlog. Log in at /api/auth/login to continue.\n"))
}
