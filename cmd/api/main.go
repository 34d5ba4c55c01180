package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fhuszti/tmpfiles-ms-go/internal/cache"
	"github.com/fhuszti/tmpfiles-ms-go/internal/config"
	"github.com/fhuszti/tmpfiles-ms-go/internal/handler/api"
	workerHandler "github.com/fhuszti/tmpfiles-ms-go/internal/handler/worker"
	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/metastore"
	cMiddleware "github.com/fhuszti/tmpfiles-ms-go/internal/middleware"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/renderer"
	"github.com/fhuszti/tmpfiles-ms-go/internal/repository/disk"
	"github.com/fhuszti/tmpfiles-ms-go/internal/scheduler"
	"github.com/fhuszti/tmpfiles-ms-go/internal/storage"
	"github.com/fhuszti/tmpfiles-ms-go/internal/task"
	"github.com/fhuszti/tmpfiles-ms-go/internal/urls"
	fileSvc "github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	tfuuid "github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// closer is anything that must be released once the server has stopped.
type closer interface {
	Close() error
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	initDirs(ctx, cfg)

	repo := initRepository(ctx, cfg)
	if cfg.ClearOnStart {
		n, err := repo.Clear(ctx)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to clear file store: %v", err)
			os.Exit(1)
		}
		logger.Infof(ctx, "🧹 Cleared %d files on startup", n)
	}

	sweeper := scheduler.NewExpirySweeper(repo, cfg.SweepInterval, time.Now)
	sweeper.Start(ctx)

	links := urls.NewBuilder(urls.ResolveDomain(ctx, cfg.ServerDomain, cfg.ServerPort))

	var closers []closer
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		rc := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			logger.Warnf(ctx, "⚠️  Redis ping failed, cache reads will miss until it is reachable: %v", err)
		}
		ca = rc
		closers = append(closers, rc)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		lc, err := cache.NewLocal(cfg.LocalCacheSize)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to create local cache: %v", err)
			os.Exit(1)
		}
		ca = lc
		logger.Warn(ctx, "⚠️  Redis not configured, using in-process cache")
	}

	var worker *asynq.Server
	if cfg.QueueEnabled() {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
		d := task.NewDispatcher(redisOpt)
		dispatcher = d
		closers = append(closers, d)

		strg := initStorage(ctx, cfg)
		ingestSvc := fileSvc.NewStagedIngester(repo, strg, cfg.StagingBucket, cfg.DownloadDir, links)
		worker = startWorker(ctx, redisOpt, cfg.WorkerConcurrency, ingestSvc)
	} else {
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis or MinIO not configured, staged ingestion is disabled")
	}

	r := initRouter(ctx)

	var limiter func(http.Handler) http.Handler
	if cfg.RateLimitRPS > 0 {
		limiter = cMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware()
	} else {
		limiter = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/health", api.HealthHandler(repo.Root()))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter, cMiddleware.WithFileID())
		stream := api.StreamFileHandler(repo)
		download := api.DownloadFileHandler(repo)
		r.Get("/files/{id}", stream)
		r.Head("/files/{id}", stream)
		r.Get("/download/{id}", download)
		r.Head("/download/{id}", download)
	})

	describeSvc := fileSvc.NewFileDescriber(repo, links)
	rendererSvc := renderer.NewHTTPRenderer(ca, repo)
	deleteSvc := fileSvc.NewFileDeleter(repo, ca)
	statsSvc := fileSvc.NewStatsReporter(repo)

	r.Route("/admin", func(r chi.Router) {
		r.Use(cMiddleware.WithDSTAuth(cfg.JWTPublicKey))
		if cfg.JWTPublicKey != "" {
			r.Use(cMiddleware.RequireRole("admin"))
		} else {
			logger.Warn(ctx, "⚠️  JWT_PUBLIC_KEY not set, admin routes are unauthenticated")
		}

		r.Get("/stats", api.StatsHandler(statsSvc))
		r.Post("/sweep", api.SweepHandler(sweeper))
		r.Post("/ingest", api.IngestStagedHandler(dispatcher))
		r.With(cMiddleware.WithFileUUID()).Get("/files/{id}", api.DescribeFileHandler(rendererSvc, describeSvc))
		r.With(cMiddleware.WithFileUUID()).Delete("/files/{id}", api.DeleteFileHandler(deleteSvc))
	})

	logger.Infof(ctx, "📁 Serving files from %s (ttl %s)", repo.Root(), cfg.TTL())

	listenRouter(ctx, r, cfg, worker, sweeper, closers)
}

func initDirs(ctx context.Context, cfg *config.Settings) {
	for _, dir := range []string{cfg.UploadDir, cfg.DownloadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Errorf(ctx, "❌  Failed to create directory %q: %v", dir, err)
			os.Exit(1)
		}
	}
}

func initRepository(ctx context.Context, cfg *config.Settings) *disk.FileRepository {
	logger.Info(ctx, "initialising file repository...")

	store := metastore.NewJSONStore(cfg.UploadDir)
	repo, err := disk.NewFileRepository(ctx, cfg.UploadDir, cfg.TTL(), store, tfuuid.NewUUID, time.Now)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to open file repository: %v", err)
		os.Exit(1)
	}
	return repo
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cMiddleware.MetricsMiddleware())

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(cfg.StagingBucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.StagingBucket, err)
		os.Exit(1)
	}

	return strg
}

func startWorker(ctx context.Context, opt asynq.RedisClientOpt, concurrency int, svc port.StagedIngester) *asynq.Server {
	srv := asynq.NewServer(opt, asynq.Config{Concurrency: concurrency})

	mux := asynq.NewServeMux()
	mux.Handle(task.TypeIngestStaged, workerHandler.NewIngestStagedTaskHandler(svc))

	if err := srv.Start(mux); err != nil {
		logger.Errorf(ctx, "❌  Worker failed to start: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "🚀 Ingest worker started (concurrency %d)", concurrency)

	return srv
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, worker *asynq.Server, sweeper *scheduler.ExpirySweeper, closers []closer) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
	} else {
		logger.Info(ctx, "✅  Server gracefully stopped")
	}

	if worker != nil {
		worker.Shutdown()
		logger.Info(ctx, "✅  Worker gracefully stopped")
	}

	sweeper.Stop()

	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warnf(ctx, "close error: %v", err)
		}
	}
}
