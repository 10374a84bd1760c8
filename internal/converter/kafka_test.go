package converter

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/spare-parts/internal/model"
)

func TestSnapshotLoadedPayload(t *testing.T) {
	t.Parallel()

	in := model.SnapshotLoaded{
		EventID:    uuid.New(),
		Source:     "data/Spare_Parts_Inventory.xlsx",
		Records:    120,
		OutOfStock: 4,
		LowStock:   9,
		TotalValue: 1234.5,
		LoadedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	conv := NewKafkaConverter()
	payload, err := conv.SnapshotLoadedToPayload(in)
	require.NoError(t, err)

	out, err := conv.SnapshotLoadedFromPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = conv.SnapshotLoadedFromPayload([]byte("not a proto"))
	assert.Error(t, err)
}

func TestCriteriaFromStruct(t *testing.T) {
	t.Parallel()

	s, err := structpb.NewStruct(map[string]any{
		KeyEquipment:  "PCT",
		KeyStockLevel: "LOW_STOCK",
		KeySearch:     " pump ",
		KeyScope:      ScopeAll,
		KeySortBy:     "unitCost",
		KeySortOrder:  "DESC",
		KeyPage:       3,
		KeyLimit:      "25",
	})
	require.NoError(t, err)

	c := CriteriaFromStruct(s)
	assert.Equal(t, model.Criteria{
		Equipment:   "PCT",
		StockLevel:  model.StockLevelLow,
		Search:      "pump",
		SearchScope: model.SearchScopeAll,
		SortBy:      model.SortFieldUnitCost,
		SortOrder:   model.SortDesc,
		Page:        3,
		Limit:       25,
	}, c)

	assert.Equal(t, model.Criteria{}, CriteriaFromStruct(nil))
}

func TestCriteriaFromStruct_OutOfRangeNumbers(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		in   float64
		want int
	}

	tests := []testCase{
		{name: "nan", in: math.NaN(), want: 0},
		{name: "positive infinity", in: math.Inf(1), want: 0},
		{name: "negative infinity", in: math.Inf(-1), want: 0},
		{name: "negative", in: -4, want: 0},
		{name: "fraction below one", in: 0.5, want: 0},
		{name: "huge", in: 1e18, want: math.MaxInt32},
		{name: "max float", in: math.MaxFloat64, want: math.MaxInt32},
		{name: "regular", in: 7.9, want: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := &structpb.Struct{Fields: map[string]*structpb.Value{
				"page":  structpb.NewNumberValue(tc.in),
				"limit": structpb.NewNumberValue(tc.in),
			}}

			var c model.Criteria
			require.NotPanics(t, func() { c = CriteriaFromStruct(s) })
			assert.Equal(t, tc.want, c.Page)
			assert.Equal(t, tc.want, c.Limit)
		})
	}
}

func TestPageToStruct(t *testing.T) {
	t.Parallel()

	p := model.Page{
		Records:    []model.Record{{ID: "A1", StockLevel: model.StockLevelLow, CurrentStock: 5}},
		Total:      1,
		Page:       1,
		Limit:      50,
		TotalPages: 1,
	}

	s, err := PageToStruct(p)
	require.NoError(t, err)

	data := s.GetFields()["data"].GetListValue().GetValues()
	require.Len(t, data, 1)
	row := data[0].GetStructValue().GetFields()
	assert.Equal(t, "A1", row[model.FieldID].GetStringValue())
	assert.Equal(t, "LOW_STOCK", row[model.FieldStockLevel].GetStringValue())
	assert.InDelta(t, 5.0, row[model.FieldCurrentStock].GetNumberValue(), 1e-9)

	pg := s.GetFields()["pagination"].GetStructValue().GetFields()
	assert.InDelta(t, 50.0, pg["limit"].GetNumberValue(), 1e-9)
}
