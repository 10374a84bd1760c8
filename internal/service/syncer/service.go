package syncer

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

// Sync outcomes.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusBusy   = "busy"
)

type Reloader interface {
	Reload(ctx context.Context) *model.Snapshot
}

type Metrics interface {
	RecordSync(status string, bytes int64)
}

type Config struct {
	// Share link of the remote workbook. Empty means sync only reloads from disk.
	URL string
	// Where the workbook is written; the loader reads the same path.
	Dest string
	DownloadConfig
}

type service struct {
	cfg        Config
	downloader *downloader
	reloader   Reloader
	metrics    Metrics
	inFlight   atomic.Bool
}

func NewSyncService(client *http.Client, cfg Config, reloader Reloader, m Metrics) *service {
	return &service{
		cfg:        cfg,
		downloader: newDownloader(client, cfg.DownloadConfig),
		reloader:   reloader,
		metrics:    m,
	}
}

// Sync downloads the remote workbook when a URL is configured and then reloads.
// A failed download leaves both the file on disk and the visible snapshot untouched.
// Only one sync runs at a time; a concurrent call gets ErrSyncInProgress.
func (s *service) Sync(ctx context.Context) (model.SyncResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.RecordSync(StatusBusy, 0)
		return model.SyncResult{}, model.ErrSyncInProgress
	}
	defer s.inFlight.Store(false)

	var res model.SyncResult
	if s.cfg.URL != "" {
		logger.Info(ctx, "Syncing inventory source", logger.String("dest", s.cfg.Dest))

		n, err := s.downloader.Download(ctx, s.cfg.URL, s.cfg.Dest)
		if err != nil {
			s.metrics.RecordSync(StatusFailed, 0)
			logger.Error(ctx, "Inventory sync failed", logger.ErrorF(err))
			return model.SyncResult{}, err
		}
		res.Downloaded = true
		res.Bytes = n
	}

	res.Snapshot = s.reloader.Reload(ctx)
	s.metrics.RecordSync(StatusOK, res.Bytes)

	logger.Info(ctx, "Inventory synced",
		logger.Bool("downloaded", res.Downloaded),
		logger.Int64("bytes", res.Bytes),
		logger.Int("records", res.Snapshot.Len()),
	)

	return res, nil
}

// RunPeriodic syncs every interval until ctx is done. Failures are logged and
// the next tick tries again.
func (s *service) RunPeriodic(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	logger.Info(ctx, "Starting periodic sync", logger.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil && ctx.Err() == nil {
				logger.Warn(ctx, "Periodic sync failed", logger.ErrorF(err))
			}
		}
	}
}
