package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iandyone/minesweeper-rss/internal/config"
	"github.com/iandyone/minesweeper-rss/internal/database"
	"github.com/iandyone/minesweeper-rss/internal/middleware"
	"github.com/iandyone/minesweeper-rss/internal/repository"
	"github.com/iandyone/minesweeper-rss/internal/scores"
	"github.com/iandyone/minesweeper-rss/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	router   *http.ServeMux
	addr     string
	hub      *session.Hub
	store    scores.Store
	ws       *config.WebSocket
	sessions *config.Sessions
}

func New(log *logrus.Logger, store scores.Store) (*App, error) {
	sessions, err := config.NewSessions()
	if err != nil {
		return nil, err
	}
	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	app := &App{
		log:      log,
		router:   http.NewServeMux(),
		addr:     config.Addr(),
		hub:      session.NewHub(sessions.Limit, sessions.TTL, nil),
		store:    store,
		ws:       ws,
		sessions: sessions,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(a.ws.AllowOrigin),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithFields(logrus.Fields{
		"addr":          a.addr,
		"session_limit": a.sessions.Limit,
		"session_ttl":   a.sessions.TTL,
		"max_cells":     a.sessions.MaxBoardCells,
	}).Info("ready to serve")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.hub.Maintain(gCtx, a.sessions.CleanupInterval)
	})

	err := g.Wait()
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// OpenStore builds the score store selected by cfg. The returned func
// releases its resources.
func OpenStore(
	ctx context.Context, log logrus.FieldLogger, cfg *config.Storage, migrations fs.FS,
) (scores.Store, func(), error) {
	switch cfg.Driver {
	case config.MemoryStorage:
		return scores.NewMemoryStore(), func() {}, nil

	case config.SQLiteStorage:
		db, err := scores.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := scores.NewSQLiteStore(ctx, db, cfg.SQLiteName)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("using sqlite score store")
		return store, func() { db.Close() }, nil

	case config.PostgresStorage:
		pool, migrator, err := database.ConnectAndMigrate(ctx, cfg.Database, migrations)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		if version, dirty, err := migrator.Version(); err == nil {
			log.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Info("using postgres score store")
		}
		migrator.Close()
		return repository.New(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
