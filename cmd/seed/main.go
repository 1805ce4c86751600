// Command seed imports the JSON dataset at dataset.path into the sqlite
// database at database.path, replacing whatever the database held.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"cert-portfolio/internal/config"
	"cert-portfolio/internal/logging"
	"cert-portfolio/internal/repository/jsonfile"
	"cert-portfolio/internal/repository/sqlite"
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

	dataset, err := jsonfile.NewProvider(cfg.Dataset.Path).Load(ctx)
	if err != nil {
		logger.Fatalf("read dataset: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewDatasetRepository(db)
	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("init dataset repository: %v", err)
	}
	if err := repo.Import(ctx, dataset); err != nil {
		logger.Fatalf("import dataset: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"source":   cfg.Dataset.Path,
		"database": cfg.Database.Path,
		"users":    dataset.Len(),
	}).Info("dataset imported")
}
