package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/domain/pairing"
	"github.com/riskibarqy/courtside/internal/domain/session"
	archivecache "github.com/riskibarqy/courtside/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/courtside/internal/infrastructure/resultfeed"
	"github.com/riskibarqy/courtside/internal/interfaces/httpapi"
	"github.com/riskibarqy/courtside/internal/platform/cache"
	idgen "github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
	"github.com/riskibarqy/courtside/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server, the rest ticker, the result dispatcher and
// any open database.
type App struct {
	logger     *logging.Logger
	server     *http.Server
	ticker     *usecase.RestTicker
	dispatcher *usecase.ResultDispatcher
	db         *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	state := session.NewState()
	if cfg.SessionSeedDemo {
		seeded, err := memory.NewSeededState()
		if err != nil {
			return nil, fmt.Errorf("seed demo session: %w", err)
		}
		state = seeded
		logger.Info("demo session seeded", "courts", len(seeded.Courts()), "players", len(seeded.Players()))
	}
	store := memory.NewSessionStore(state)

	local, remote, archive, err := a.buildSinks(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if fanout := usecase.NewResultFanout(remote...); fanout.Len() > 0 {
		dispatcher, err := usecase.NewResultDispatcher(fanout, cfg.ResultPublishWorkers, cfg.ResultPublishTimeout, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("build result dispatcher: %w", err)
		}
		a.dispatcher = dispatcher
		local = append(local, dispatcher)
	}
	var sink session.ResultSink
	if fanout := usecase.NewResultFanout(local...); fanout.Len() > 0 {
		sink = fanout
	}

	sessions := usecase.NewSessionService(store, sink, archive, idgen.NewRandomGenerator(), cfg.AutoStartNext, logger)

	var suggestionCache *cache.Store[pairing.Suggestion]
	if cfg.CacheEnabled {
		suggestionCache = cache.NewStore[pairing.Suggestion](cfg.CacheTTL, 0)
	}
	pairings := usecase.NewPairingService(
		store,
		sessions,
		pairing.NewSearcher(cfg.PairingWorkers, cfg.PairingParallelMinPool),
		cfg.SkillWeights,
		suggestionCache,
		logger,
	)

	a.ticker = usecase.NewRestTicker(store, cfg.RestTickInterval, logger)

	handler := httpapi.NewHandler(sessions, pairings, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// buildSinks returns the result sinks for finished matches and the
// archive that backs the archived history endpoint, if any. Local sinks
// are in-process and run inline; remote sinks cross the network and are
// delivered through the dispatcher.
func (a *App) buildSinks(ctx context.Context, cfg config.Config) (local, remote []session.ResultSink, archive session.ResultArchive, err error) {
	if cfg.HistoryArchiveEnabled {
		switch cfg.HistoryArchiveDriver {
		case config.ArchiveDriverPostgres:
			db, err := openDB(ctx, cfg, a.logger)
			if err != nil {
				return nil, nil, nil, err
			}
			a.db = db
			var repo session.ResultArchive = postgres.NewMatchResultRepository(db)
			if cfg.CacheEnabled {
				repo = archivecache.NewResultArchive(repo, cache.NewStore[[]session.HistoryRecord](cfg.CacheTTL, 64))
			}
			remote = append(remote, repo)
			archive = repo
		default:
			repo := memory.NewResultArchive(cfg.HistoryArchiveCapacity)
			local = append(local, repo)
			archive = repo
		}
		a.logger.Info("history archive enabled", "driver", cfg.HistoryArchiveDriver)
	}

	if cfg.ResultWebhookEnabled {
		webhook, err := resultfeed.NewWebhookPublisher(resultfeed.WebhookConfig{
			URL:     cfg.ResultWebhookURL,
			Token:   cfg.ResultWebhookToken,
			Timeout: cfg.ResultWebhookTimeout,
			Retries: cfg.ResultWebhookRetries,
			Circuit: resilience.BreakerConfig{
				Enabled:          cfg.ResultWebhookCircuitEnabled,
				FailureThreshold: cfg.ResultWebhookCircuitFailureCount,
				OpenTimeout:      cfg.ResultWebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultWebhookCircuitHalfOpenMaxReq,
			},
		}, a.logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build result webhook: %w", err)
		}
		remote = append(remote, webhook)
		a.logger.Info("result webhook enabled", "url", cfg.ResultWebhookURL)
	}

	return local, remote, archive, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and ticks rest time until ctx is cancelled or the
// listener fails, then shuts both down.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		a.ticker.Run(runCtx)
	})
	wg.Go(func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("graceful shutdown: %w", err))
	}

	if recovered := wg.WaitAndRecover(); recovered != nil {
		a.logger.Error("background task panicked", "panic", recovered.Value, "stack", string(recovered.Stack))
		runErr = errors.Join(runErr, recovered.AsError())
	}

	if err := a.closeDispatcher(shutdownTimeout); err != nil {
		runErr = errors.Join(runErr, err)
	}

	a.logger.Info("http server stopped")
	return runErr
}

func (a *App) closeDispatcher(wait time.Duration) error {
	if a.dispatcher == nil {
		return nil
	}
	err := a.dispatcher.Close(wait)
	a.dispatcher = nil
	return err
}

func (a *App) Close() {
	if err := a.closeDispatcher(shutdownTimeout); err != nil {
		a.logger.Warn("close result dispatcher", "error", err)
	}
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
	a.db = nil
}
