package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cert-portfolio/internal/config"
	apphttp "cert-portfolio/internal/http"
	"cert-portfolio/internal/logging"
	"cert-portfolio/internal/repository"
	"cert-portfolio/internal/repository/jsonfile"
	"cert-portfolio/internal/repository/objectstore"
	"cert-portfolio/internal/repository/sqlite"
	"cert-portfolio/internal/repository/watch"
	"cert-portfolio/internal/service"
	"cert-portfolio/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, cleanup, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup dataset: %v", err)
	}
	defer cleanup()

	userService := service.NewUserService(provider)
	certificateService := service.NewCertificateService(provider, nil)
	searchService := service.NewSearchService(provider)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, certificateService, searchService, apphttp.Config{
		AllowOrigin: cfg.CORS.AllowOrigin,
		StaticDir:   cfg.Server.StaticDir,
		Logger:      logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.WithField("source", cfg.Dataset.Source).Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildProvider selects the dataset source. The returned cleanup releases
// whatever the source holds open and is safe to call once.
func buildProvider(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.DatasetProvider, func(), error) {
	noop := func() {}

	switch cfg.Dataset.Source {
	case config.SourceFile:
		file := jsonfile.NewProvider(cfg.Dataset.Path)
		if !cfg.Dataset.Watch {
			logger.Infof("serving dataset from %s", file.Path())
			return file, noop, nil
		}

		watcher := watch.NewProvider(file.Path(), file, logger)
		if err := watcher.Start(ctx); err != nil {
			return nil, noop, fmt.Errorf("watch dataset: %w", err)
		}
		logger.Infof("serving dataset from %s (watching for changes)", file.Path())
		return watcher, watcher.Shutdown, nil

	case config.SourceS3:
		store, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			return nil, noop, err
		}
		return objectstore.NewProvider(store, cfg.Storage.Bucket, cfg.Storage.Key, logger), noop, nil

	case config.SourceSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open database: %w", err)
		}
		repo := sqlite.NewDatasetRepository(db)
		if err := repo.Init(ctx); err != nil {
			closeDB(db, logger)
			return nil, noop, fmt.Errorf("init dataset repository: %w", err)
		}
		logger.Infof("serving dataset from sqlite %s", cfg.Database.Path)
		return repo, func() { closeDB(db, logger) }, nil
	}

	return nil, noop, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
}

func closeDB(db *sql.DB, logger *logrus.Logger) {
	if err := db.Close(); err != nil {
		logger.Warnf("close database: %v", err)
	}
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("serving dataset from s3://%s/%s (region %s)", cfg.Storage.Bucket, cfg.Storage.Key, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
