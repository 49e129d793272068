package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/handlers"
	"github.com/GlebRadaev/orderdesk/internal/notify"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"github.com/GlebRadaev/orderdesk/internal/redisx"
	"github.com/GlebRadaev/orderdesk/internal/repo"
	"github.com/GlebRadaev/orderdesk/internal/service"
	"github.com/GlebRadaev/orderdesk/internal/service/intake"
	"github.com/GlebRadaev/orderdesk/internal/service/ratelimit"
	"github.com/GlebRadaev/orderdesk/pkg/auth"
	"github.com/GlebRadaev/orderdesk/pkg/logger"
)

const (
	publishWorkers = 4
	sweepInterval  = 10 * time.Minute
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	closers []io.Closer
	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	a.closers = append(a.closers, closerFunc(func() error {
		pool.Close()
		return nil
	}))
	txManager := pg.NewTXManager(pool)

	stores, err := a.buildStores(ctx, cfg)
	if err != nil {
		a.close()
		return err
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager, cfg.OrderIDAttempts)
	a.srv = service.New(a.repo, txManager, stores, cfg)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret), cfg.IsAdmin)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if sweepers := memorySweepers(stores); len(sweepers) > 0 {
		a.startSweeper(ctx, sweepers)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// buildStores picks redis and kafka when they are configured and falls back
// to in-process stores otherwise.
func (a *Application) buildStores(ctx context.Context, cfg *config.Config) (service.Stores, error) {
	var stores service.Stores

	if cfg.RedisAddr != "" {
		rdb, err := redisx.New(ctx, cfg.RedisAddr)
		if err != nil {
			zap.L().Error("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			return stores, fmt.Errorf("can't connect to redis: %w", err)
		}
		a.closers = append(a.closers, rdb)
		stores.Drafts = redisx.NewDraftStore(rdb, cfg.DraftTTL)
		stores.RateLimits = redisx.NewRateLimitStore(rdb)
		zap.L().Info("sessions are kept in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		stores.Drafts = intake.NewMemoryDraftStore(cfg.DraftTTL)
		stores.RateLimits = ratelimit.NewMemoryStore()
		zap.L().Warn("REDIS_ADDR is empty, sessions are kept in memory")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), publishWorkers)
		a.closers = append(a.closers, publisher)
		stores.Publisher = publisher
		zap.L().Info("events go to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		stores.Publisher = notify.NopPublisher{}
	}

	return stores, nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

type sweeper struct {
	name  string
	sweep func() int
}

// memorySweepers lists the in-process stores that need expired entries
// removed periodically.
func memorySweepers(stores service.Stores) []sweeper {
	var sweepers []sweeper
	if drafts, ok := stores.Drafts.(*intake.MemoryDraftStore); ok {
		sweepers = append(sweepers, sweeper{name: "drafts", sweep: drafts.Sweep})
	}
	if limits, ok := stores.RateLimits.(*ratelimit.MemoryStore); ok {
		sweepers = append(sweepers, sweeper{name: "rate_limits", sweep: func() int {
			return limits.Sweep(time.Now())
		}})
	}
	return sweepers
}

func (a *Application) startSweeper(ctx context.Context, sweepers []sweeper) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, sw := range sweepers {
					if n := sw.sweep(); n > 0 {
						zap.L().Debug("expired entries removed", zap.String("store", sw.name), zap.Int("count", n))
					}
				}
			}
		}
	}()
}

// close releases backends in reverse order of opening.
func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			zap.L().Error("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	a.close()
	close(a.errCh)
	wg.Wait()

	return appErr
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
