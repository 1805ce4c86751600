// Package watch serves dataset snapshots that are refreshed whenever the
// backing file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
)

// ErrNotStarted is returned by Load before Start succeeded.
var ErrNotStarted = errors.New("dataset watcher not started")

// Provider keeps the last good snapshot loaded from source and swaps it
// atomically after every successful reload. Readers always see a complete,
// immutable dataset.
type Provider struct {
	path   string
	source repository.DatasetProvider
	logger *logrus.Logger

	current atomic.Pointer[domain.Dataset]
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewProvider watches path and reloads it through source, which is expected
// to read that same file.
func NewProvider(path string, source repository.DatasetProvider, logger *logrus.Logger) *Provider {
	if logger == nil {
		logger = logrus.New()
	}
	return &Provider{
		path:   filepath.Clean(path),
		source: source,
		logger: logger,
	}
}

// Start loads the initial snapshot and begins watching for changes.
func (p *Provider) Start(ctx context.Context) error {
	if err := p.Reload(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// watch the directory so atomic saves that replace the file are seen
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.watcher = watcher
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(runCtx)
	}()

	p.logger.Infof("watching dataset %s", p.path)
	return nil
}

// Shutdown stops watching and waits for the watch loop to exit.
func (p *Provider) Shutdown() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	if p.watcher != nil {
		p.watcher.Close()
	}
	p.logger.Info("dataset watcher stopped")
}

// Load returns the current snapshot.
func (p *Provider) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := p.current.Load()
	if ds == nil {
		return nil, ErrNotStarted
	}
	return ds, nil
}

// Reload reads the source once and publishes the result. On failure the
// previous snapshot stays in place.
func (p *Provider) Reload(ctx context.Context) error {
	ds, err := p.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}
	p.current.Store(ds)
	return nil
}

func (p *Provider) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := p.Reload(ctx); err != nil {
				p.logger.WithError(err).Warn("dataset reload failed, keeping previous snapshot")
				continue
			}
			p.logger.WithField("users", p.current.Load().Len()).Info("dataset reloaded")

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.WithError(err).Error("dataset watcher error")
		}
	}
}

var _ repository.DatasetProvider = (*Provider)(nil)
