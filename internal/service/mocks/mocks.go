package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/you-humble/spare-parts/internal/model"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register[M interface {
	Test(mock.TestingT)
	AssertExpectations(mock.TestingT) bool
}](t testingT, m M) M {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockOpener mocks a workbook opener.
type MockOpener struct{ mock.Mock }

func NewMockOpener(t testingT) *MockOpener { return register(t, &MockOpener{}) }

func (m *MockOpener) Name() string {
	return m.Called().String(0)
}

func (m *MockOpener) Open(ctx context.Context) (model.Workbook, error) {
	ret := m.Called(ctx)
	wb, _ := ret.Get(0).(model.Workbook)
	return wb, ret.Error(1)
}

// MockWorkbook mocks an opened workbook.
type MockWorkbook struct{ mock.Mock }

func NewMockWorkbook(t testingT) *MockWorkbook { return register(t, &MockWorkbook{}) }

func (m *MockWorkbook) SheetNames() []string {
	names, _ := m.Called().Get(0).([]string)
	return names
}

func (m *MockWorkbook) Rows(ctx context.Context, sheet string) ([]model.RawRow, error) {
	ret := m.Called(ctx, sheet)
	rows, _ := ret.Get(0).([]model.RawRow)
	return rows, ret.Error(1)
}

func (m *MockWorkbook) Close() error {
	return m.Called().Error(0)
}

// MockLoadMetrics mocks the loader's metrics recorder.
type MockLoadMetrics struct{ mock.Mock }

func NewMockLoadMetrics(t testingT) *MockLoadMetrics { return register(t, &MockLoadMetrics{}) }

func (m *MockLoadMetrics) RecordLoad(status string, records int, loadedAt time.Time, d time.Duration) {
	m.Called(status, records, loadedAt, d)
}

func (m *MockLoadMetrics) RecordDefaulted(fields []string) {
	m.Called(fields)
}

// MockLoader mocks the dataset loader.
type MockLoader struct{ mock.Mock }

func NewMockLoader(t testingT) *MockLoader { return register(t, &MockLoader{}) }

func (m *MockLoader) Load(ctx context.Context) *model.Snapshot {
	snap, _ := m.Called(ctx).Get(0).(*model.Snapshot)
	return snap
}

// MockPublisher mocks the snapshot event publisher.
type MockPublisher struct{ mock.Mock }

func NewMockPublisher(t testingT) *MockPublisher { return register(t, &MockPublisher{}) }

func (m *MockPublisher) SendSnapshotLoaded(ctx context.Context, event model.SnapshotLoaded) error {
	return m.Called(ctx, event).Error(0)
}

// MockReloader mocks anything that can reload the snapshot.
type MockReloader struct{ mock.Mock }

func NewMockReloader(t testingT) *MockReloader { return register(t, &MockReloader{}) }

func (m *MockReloader) Reload(ctx context.Context) *model.Snapshot {
	snap, _ := m.Called(ctx).Get(0).(*model.Snapshot)
	return snap
}

// MockSyncMetrics mocks the sync metrics recorder.
type MockSyncMetrics struct{ mock.Mock }

func NewMockSyncMetrics(t testingT) *MockSyncMetrics { return register(t, &MockSyncMetrics{}) }

func (m *MockSyncMetrics) RecordSync(status string, bytes int64) {
	m.Called(status, bytes)
}

// MockSyncer mocks the sync service.
type MockSyncer struct{ mock.Mock }

func NewMockSyncer(t testingT) *MockSyncer { return register(t, &MockSyncer{}) }

func (m *MockSyncer) Sync(ctx context.Context) (model.SyncResult, error) {
	ret := m.Called(ctx)
	res, _ := ret.Get(0).(model.SyncResult)
	return res, ret.Error(1)
}
