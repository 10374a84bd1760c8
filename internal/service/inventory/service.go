package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/service/query"
	"github.com/you-humble/spare-parts/internal/service/stats"
	"github.com/you-humble/spare-parts/platform/logger"
)

type Loader interface {
	Load(ctx context.Context) *model.Snapshot
}

type SnapshotStore interface {
	Current() *model.Snapshot
	Swap(next *model.Snapshot) *model.Snapshot
}

type Publisher interface {
	SendSnapshotLoaded(ctx context.Context, event model.SnapshotLoaded) error
}

type QueryRecorder interface {
	RecordQuery(kind string)
}

// Query kinds reported to the recorder.
const (
	KindList       = "list"
	KindSearch     = "search"
	KindStats      = "stats"
	KindCategories = "categories"
	KindByID       = "by_id"
)

type service struct {
	loader    Loader
	store     SnapshotStore
	publisher Publisher
	recorder  QueryRecorder

	// serializes reloads; readers never take it
	reloadMu sync.Mutex
}

// NewInventoryService wires the read side over a snapshot store. publisher may be nil.
func NewInventoryService(
	loader Loader,
	store SnapshotStore,
	publisher Publisher,
	recorder QueryRecorder,
) *service {
	return &service{
		loader:    loader,
		store:     store,
		publisher: publisher,
		recorder:  recorder,
	}
}

func (s *service) Snapshot(_ context.Context) *model.Snapshot {
	return s.store.Current()
}

// Reload runs the loader to completion and only then swaps the result in.
func (s *service) Reload(ctx context.Context) *model.Snapshot {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	next := s.loader.Load(ctx)
	s.store.Swap(next)

	if s.publisher != nil {
		st := stats.Summarize(next)
		event := model.SnapshotLoaded{
			EventID:    uuid.New(),
			Source:     next.Source,
			Records:    next.Len(),
			OutOfStock: st.OutOfStock,
			LowStock:   st.LowStock,
			TotalValue: st.TotalValue,
			LoadedAt:   next.LoadedAt,
		}
		if err := s.publisher.SendSnapshotLoaded(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish snapshot loaded event",
				logger.String("event_uuid", event.EventID.String()),
				logger.ErrorF(err),
			)
		}
	}

	return next
}

func (s *service) Query(_ context.Context, c model.Criteria) model.Page {
	kind := KindList
	if c.SearchScope == model.SearchScopeAll {
		kind = KindSearch
	}
	s.record(kind)

	return query.Run(s.store.Current(), c)
}

func (s *service) Summarize(_ context.Context) model.Stats {
	s.record(KindStats)
	return stats.Summarize(s.store.Current())
}

func (s *service) Categories(_ context.Context) []string {
	s.record(KindCategories)
	return query.Categories(s.store.Current())
}

func (s *service) PartByID(_ context.Context, id string) (model.Record, error) {
	const op = "inventory.PartByID"

	s.record(KindByID)
	rec, err := query.ByID(s.store.Current(), id)
	if err != nil {
		return model.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func (s *service) record(kind string) {
	if s.recorder != nil {
		s.recorder.RecordQuery(kind)
	}
}
