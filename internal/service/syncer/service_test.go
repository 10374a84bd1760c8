package syncer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/service/mocks"
)

var workbookBytes = append([]byte("PK\x03\x04"), []byte(strings.Repeat("x", 64))...)

func newService(t *testing.T, url, dest string, reloader Reloader, m Metrics) *service {
	t.Helper()
	return NewSyncService(nil, Config{
		URL:  url,
		Dest: dest,
		DownloadConfig: DownloadConfig{
			Timeout:    time.Second,
			Retries:    3,
			RetryDelay: time.Millisecond,
		},
	}, reloader, m)
}

func TestSync(t *testing.T) {
	t.Parallel()

	type deps struct {
		reloader *mocks.MockReloader
		metrics  *mocks.MockSyncMetrics
	}

	type testCase struct {
		name    string
		handler func(calls *atomic.Int32) http.HandlerFunc
		noURL   bool
		setup   func(d deps)
		assert  func(t *testing.T, res model.SyncResult, err error, dest string, calls int32)
	}

	snap := &model.Snapshot{Records: []model.Record{{ID: "A1"}}}

	tests := []testCase{
		{
			name: "downloads, replaces the file and reloads",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
					if r.Header.Get("Cache-Control") != "no-cache, no-store, must-revalidate" ||
						r.URL.Query().Get("cb") == "" || r.URL.Query().Get("foo") != "" {
						w.WriteHeader(http.StatusBadRequest)
						return
					}
					w.Header().Set("Content-Type", "application/octet-stream")
					_, _ = w.Write(workbookBytes)
				}
			},
			setup: func(d deps) {
				d.reloader.On("Reload", mock.Anything).Return(snap).Once()
				d.metrics.On("RecordSync", StatusOK, int64(len(workbookBytes))).Once()
			},
			assert: func(t *testing.T, res model.SyncResult, err error, dest string, calls int32) {
				require.NoError(t, err)
				assert.True(t, res.Downloaded)
				assert.Equal(t, int64(len(workbookBytes)), res.Bytes)
				assert.Same(t, snap, res.Snapshot)
				assert.Equal(t, int32(1), calls)

				got, err := os.ReadFile(dest)
				require.NoError(t, err)
				assert.Equal(t, workbookBytes, got)
			},
		},
		{
			name: "retries transient failures",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if calls.Add(1) < 3 {
						w.WriteHeader(http.StatusBadGateway)
						return
					}
					_, _ = w.Write(workbookBytes)
				}
			},
			setup: func(d deps) {
				d.reloader.On("Reload", mock.Anything).Return(snap).Once()
				d.metrics.On("RecordSync", StatusOK, mock.Anything).Once()
			},
			assert: func(t *testing.T, res model.SyncResult, err error, dest string, calls int32) {
				require.NoError(t, err)
				assert.Equal(t, int32(3), calls)
			},
		},
		{
			name: "empty body fails after all attempts and keeps the old file",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
				}
			},
			setup: func(d deps) {
				d.metrics.On("RecordSync", StatusFailed, int64(0)).Once()
			},
			assert: func(t *testing.T, res model.SyncResult, err error, dest string, calls int32) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDownloadFailed)
				assert.Equal(t, int32(3), calls)

				got, rerr := os.ReadFile(dest)
				require.NoError(t, rerr)
				assert.Equal(t, []byte("old"), got)

				entries, rerr := os.ReadDir(filepath.Dir(dest))
				require.NoError(t, rerr)
				assert.Len(t, entries, 1)
			},
		},
		{
			name:  "without a url sync only reloads",
			noURL: true,
			setup: func(d deps) {
				d.reloader.On("Reload", mock.Anything).Return(snap).Once()
				d.metrics.On("RecordSync", StatusOK, int64(0)).Once()
			},
			assert: func(t *testing.T, res model.SyncResult, err error, dest string, calls int32) {
				require.NoError(t, err)
				assert.False(t, res.Downloaded)
				assert.Same(t, snap, res.Snapshot)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{reloader: mocks.NewMockReloader(t), metrics: mocks.NewMockSyncMetrics(t)}
			tt.setup(d)

			dest := filepath.Join(t.TempDir(), "Spare_Parts_Inventory.xlsx")
			require.NoError(t, os.WriteFile(dest, []byte("old"), 0o600))

			var calls atomic.Int32
			url := ""
			if !tt.noURL {
				srv := httptest.NewServer(tt.handler(&calls))
				t.Cleanup(srv.Close)
				url = srv.URL + "/files/inventory.xlsx?foo=bar"
			}

			svc := newService(t, url, dest, d.reloader, d.metrics)
			res, err := svc.Sync(context.Background())
			tt.assert(t, res, err, dest, calls.Load())
		})
	}
}

func TestSync_InProgress(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	reloader := mocks.NewMockReloader(t)
	reloader.On("Reload", mock.Anything).Run(func(mock.Arguments) {
		once.Do(func() { close(started) })
		<-release
	}).Return(&model.Snapshot{}).Once()

	m := mocks.NewMockSyncMetrics(t)
	m.On("RecordSync", StatusOK, int64(0)).Once()
	m.On("RecordSync", StatusBusy, int64(0)).Once()

	svc := newService(t, "", filepath.Join(t.TempDir(), "x.xlsx"), reloader, m)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(context.Background())
		done <- err
	}()

	<-started
	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, model.ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestRunPeriodic(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	reloader := mocks.NewMockReloader(t)
	reloader.On("Reload", mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(&model.Snapshot{}).Once()
	m := mocks.NewMockSyncMetrics(t)
	m.On("RecordSync", StatusOK, int64(0)).Once()

	svc := newService(t, "", filepath.Join(t.TempDir(), "x.xlsx"), reloader, m)
	require.NoError(t, svc.RunPeriodic(ctx, time.Millisecond))

	assert.NoError(t, svc.RunPeriodic(context.Background(), 0))
}
