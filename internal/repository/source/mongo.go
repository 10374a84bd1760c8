package source

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

// mongoOpener exposes a database as a workbook: every collection is a sheet and
// every document a row. The client is owned by the caller.
type mongoOpener struct {
	db *mongo.Database
}

func NewMongoOpener(db *mongo.Database) *mongoOpener {
	return &mongoOpener{db: db}
}

func (o *mongoOpener) Name() string { return "mongodb://" + o.db.Name() }

func (o *mongoOpener) Open(ctx context.Context) (model.Workbook, error) {
	const op = "source.mongoOpener.Open"

	names, err := o.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}
	slices.Sort(names)

	return &mongoWorkbook{db: o.db, sheets: names}, nil
}

type mongoWorkbook struct {
	db     *mongo.Database
	sheets []string
}

func (w *mongoWorkbook) SheetNames() []string {
	return slices.Clone(w.sheets)
}

func (w *mongoWorkbook) Rows(ctx context.Context, sheet string) ([]model.RawRow, error) {
	const op = "source.mongoWorkbook.Rows"

	cur, err := w.db.Collection(sheet).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, "failed to close cursor", logger.String("op", op), logger.ErrorF(cerr))
		}
	}()

	rows := make([]model.RawRow, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		rows = append(rows, rowFromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return rows, nil
}

func (w *mongoWorkbook) Close() error { return nil }

// InsertRows seeds a collection with rows. Used to import a workbook into mongo.
func InsertRows(ctx context.Context, coll *mongo.Collection, rows []model.RawRow) error {
	const op = "source.InsertRows"

	docs := make([]any, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		docs = append(docs, bson.M(r))
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func rowFromDocument(doc bson.M) model.RawRow {
	row := make(model.RawRow, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		switch vv := v.(type) {
		case bson.DateTime:
			row[k] = vv.Time().UTC()
		case bson.ObjectID:
			row[k] = vv.Hex()
		case bson.Decimal128:
			row[k] = vv.String()
		case bson.Null, bson.Undefined:
			continue
		case time.Time:
			row[k] = vv
		default:
			row[k] = v
		}
	}
	return row
}
