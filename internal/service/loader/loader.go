package loader

import (
	"context"
	"errors"
	"time"

	"github.com/you-humble/spare-parts/internal/metrics"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

type Opener interface {
	Name() string
	Open(ctx context.Context) (model.Workbook, error)
}

type Normalizer interface {
	RecordFromRowAudited(row model.RawRow, ordinal int, loadedAt time.Time) (model.Record, []string)
}

type Metrics interface {
	RecordLoad(status string, records int, loadedAt time.Time, d time.Duration)
	RecordDefaulted(fields []string)
}

type loader struct {
	opener     Opener
	normalizer Normalizer
	metrics    Metrics
	sheet      string
	now        func() time.Time
}

// NewLoader builds a loader that prefers the sheet named sheet and falls back to the first one.
func NewLoader(opener Opener, normalizer Normalizer, m Metrics, sheet string) *loader {
	return &loader{
		opener:     opener,
		normalizer: normalizer,
		metrics:    m,
		sheet:      sheet,
		now:        time.Now,
	}
}

func (l *loader) Source() string { return l.opener.Name() }

// Load reads the source and normalizes every row of the selected sheet in source order.
// It never fails: a missing, unreadable or empty source yields an empty snapshot.
func (l *loader) Load(ctx context.Context) *model.Snapshot {
	start := l.now()
	src := l.opener.Name()
	ctx = logger.ContextWithFields(ctx, logger.String("source", src))

	snap, err := l.load(ctx, start)
	elapsed := l.now().Sub(start)

	switch {
	case err != nil:
		if errors.Is(err, model.ErrSourceNotFound) {
			logger.Warn(ctx, "Inventory source not found, serving empty dataset")
		} else {
			logger.Error(ctx, "Failed to load inventory, serving empty dataset", logger.ErrorF(err))
		}
		snap = model.EmptySnapshot(src, start)
		l.metrics.RecordLoad(metrics.LoadError, 0, start, elapsed)
	case snap.Len() == 0:
		logger.Warn(ctx, "Inventory source has no rows")
		l.metrics.RecordLoad(metrics.LoadEmpty, 0, start, elapsed)
	default:
		logger.Info(ctx, "Inventory loaded",
			logger.Int("records", snap.Len()),
			logger.Duration("took", elapsed),
		)
		l.metrics.RecordLoad(metrics.LoadOK, snap.Len(), start, elapsed)
	}

	return snap
}

func (l *loader) load(ctx context.Context, loadedAt time.Time) (*model.Snapshot, error) {
	wb, err := l.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			logger.Warn(ctx, "Failed to close workbook", logger.ErrorF(cerr))
		}
	}()

	sheet, ok := l.pickSheet(wb.SheetNames())
	if !ok {
		logger.Warn(ctx, "Inventory source has no sheets")
		return model.EmptySnapshot(l.opener.Name(), loadedAt), nil
	}
	if sheet != l.sheet {
		logger.Debug(ctx, "Preferred sheet missing, using first sheet",
			logger.String("preferred", l.sheet),
			logger.String("sheet", sheet),
		)
	}

	rows, err := wb.Rows(ctx, sheet)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		rec, defaulted := l.normalizer.RecordFromRowAudited(row, i, loadedAt)
		if len(defaulted) > 0 {
			l.metrics.RecordDefaulted(defaulted)
		}
		records = append(records, rec)
	}

	return &model.Snapshot{
		Records:  records,
		LoadedAt: loadedAt,
		Source:   l.opener.Name(),
	}, nil
}

func (l *loader) pickSheet(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	for _, n := range names {
		if n == l.sheet {
			return n, true
		}
	}
	return names[0], true
}
