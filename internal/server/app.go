// Package server wires the application together: configuration, database,
// migrations, mail queue and the HTTP endpoint, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/logging"
	"github.com/dmitrijs2005/miniblog/internal/server/auth"
	"github.com/dmitrijs2005/miniblog/internal/server/config"
	httpapi "github.com/dmitrijs2005/miniblog/internal/server/http"
	"github.com/dmitrijs2005/miniblog/internal/server/mail"
	"github.com/dmitrijs2005/miniblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/miniblog/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	mailq  *mail.Queue
	server *httpapi.Server
}

// NewApp builds the full application. It fails fast: an unreachable
// database or a failed migration is a startup error, not something to limp
// along without.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := initDB(ctx, db, rm); err != nil {
		return nil, err
	}

	sender := mail.NewMailjetSender(cfg.MailjetAPIKey, cfg.MailjetAPISecret,
		cfg.MailSenderEmail, cfg.MailSenderName, "")
	mailq := mail.NewQueue(sender, logger, cfg.MailQueueSize)

	policy := auth.NewOwnershipPolicy()
	userService := services.NewUserService(db, rm, auth.NewBcryptHasher(), policy, mailq, cfg)
	postService := services.NewPostService(db, rm, policy)

	server := httpapi.NewServer(cfg, logger, userService, postService)

	return &App{config: cfg, logger: logger, db: db, mailq: mailq, server: server}, nil
}

// initDB verifies connectivity and applies migrations. On failure the
// handle is closed before the error is returned, so a failed startup does
// not leak the pool.
func initDB(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager) error {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("db ping error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is canceled or the listener fails, then
// shuts down in order: HTTP first, then the mail queue drain, then the
// database handle.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	// The mail worker gets its own context so queued mail still drains
	// after the serving context is canceled; Stop below closes the queue
	// and waits it out.
	app.mailq.Start(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
	}
	wg.Wait()

	app.mailq.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}

	app.logger.Info(shutdownCtx, "app stopped")
}
