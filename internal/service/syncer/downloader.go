package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var (
	zipMagic = []byte("PK")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

var spreadsheetContentTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-excel",
	"application/octet-stream",
	"application/binary",
}

type DownloadConfig struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

type downloader struct {
	client *http.Client
	cfg    DownloadConfig
	now    func() time.Time
}

func newDownloader(client *http.Client, cfg DownloadConfig) *downloader {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	return &downloader{client: client, cfg: cfg, now: time.Now}
}

// Download fetches share into dest. The file is written next to dest and renamed
// over it only once complete and non-empty. Every failed attempt is retried
// after RetryDelay, up to Retries attempts in total.
func (d *downloader) Download(ctx context.Context, share, dest string) (int64, error) {
	const op = "syncer.Download"

	backoff := retry.WithMaxRetries(uint64(d.cfg.Retries-1), retry.NewConstant(d.cfg.RetryDelay))

	var written int64
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		n, err := d.attempt(ctx, share, dest)
		if err != nil {
			logger.Warn(ctx, "Download attempt failed",
				logger.Int("attempt", attempt),
				logger.Int("max_attempts", d.cfg.Retries),
				logger.ErrorF(err),
			)
			return retry.RetryableError(err)
		}
		written = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, model.ErrDownloadFailed, err)
	}

	return written, nil
}

func (d *downloader) attempt(ctx context.Context, share, dest string) (int64, error) {
	direct := d.resolveURL(ctx, share)

	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, direct, nil)
	if err != nil {
		return 0, err
	}
	setNoCacheHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	ct := resp.Header.Get("Content-Type")
	if !looksLikeSpreadsheet(ct) {
		logger.Warn(ctx, "Content type does not look like a spreadsheet", logger.String("content_type", ct))
	}

	return writeAtomically(ctx, dest, resp.Body)
}

func writeAtomically(ctx context.Context, dest string, body io.Reader) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err := io.Copy(tmp, body)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("downloaded file is empty")
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}

	head := make([]byte, 4)
	if _, err := tmp.ReadAt(head, 0); err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	if !bytes.HasPrefix(head, zipMagic) && !bytes.HasPrefix(head, oleMagic) {
		logger.Warn(ctx, "Downloaded file does not look like a workbook",
			logger.String("first_bytes", fmt.Sprintf("%x", head)),
		)
	}

	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, err
	}
	committed = true

	return n, nil
}

func looksLikeSpreadsheet(contentType string) bool {
	for _, ct := range spreadsheetContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}
