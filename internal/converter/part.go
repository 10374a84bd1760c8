package converter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/spare-parts/internal/model"
)

// Criteria keys accepted over gRPC and HTTP.
const (
	KeyEquipment  = "equipment"
	KeyStockLevel = "stockLevel"
	KeyStatus     = "status"
	KeySearch     = "search"
	KeyScope      = "scope"
	KeySortBy     = "sortBy"
	KeySortOrder  = "sortOrder"
	KeyPage       = "page"
	KeyLimit      = "limit"

	ScopeAll = "all"
)

func PartToStruct(r model.Record) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(RowFromRecord(r))
	if err != nil {
		return nil, fmt.Errorf("converter.PartToStruct: %w", err)
	}
	return s, nil
}

func PageToStruct(p model.Page) (*structpb.Struct, error) {
	data := make([]any, 0, len(p.Records))
	for _, r := range p.Records {
		data = append(data, map[string]any(RowFromRecord(r)))
	}

	s, err := structpb.NewStruct(map[string]any{
		"data": data,
		"pagination": map[string]any{
			"page":       p.Page,
			"limit":      p.Limit,
			"total":      p.Total,
			"totalPages": p.TotalPages,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("converter.PageToStruct: %w", err)
	}
	return s, nil
}

func StatsToStruct(st model.Stats) (*structpb.Struct, error) {
	levels := make(map[string]any, len(st.StockLevelBreakdown))
	for l, n := range st.StockLevelBreakdown {
		levels[string(l)] = n
	}

	equipment := make(map[string]any, len(st.EquipmentBreakdown))
	for cat, e := range st.EquipmentBreakdown {
		equipment[cat] = map[string]any{
			"totalParts":    e.TotalParts,
			"totalValue":    e.TotalValue,
			"criticalParts": e.CriticalParts,
		}
	}

	recent := lo.Map(st.RecentActivity, func(r model.Record, _ int) any {
		return map[string]any(RowFromRecord(r))
	})

	s, err := structpb.NewStruct(map[string]any{
		"totalParts":          st.TotalParts,
		"totalValue":          st.TotalValue,
		"inProcess":           st.InProcess,
		"outOfStock":          st.OutOfStock,
		"lowStock":            st.LowStock,
		"stockLevelBreakdown": levels,
		"equipmentBreakdown":  equipment,
		"recentActivity":      recent,
	})
	if err != nil {
		return nil, fmt.Errorf("converter.StatsToStruct: %w", err)
	}
	return s, nil
}

func SnapshotInfoToStruct(s *model.Snapshot) *structpb.Struct {
	out, _ := structpb.NewStruct(map[string]any{
		"count":    s.Len(),
		"loadedAt": s.LoadedAt.UTC().Format(time.RFC3339),
		"source":   s.Source,
	})
	return out
}

// clampCount converts a wire number to a page or limit. Non-finite and
// non-positive values read as unset; the rest saturate at MaxInt32.
func clampCount(f float64) int {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f < 1:
		return 0
	case f > math.MaxInt32:
		return math.MaxInt32
	default:
		return int(f)
	}
}

// CriteriaFromStruct reads query criteria from a loosely typed request. Unknown keys are ignored.
func CriteriaFromStruct(s *structpb.Struct) model.Criteria {
	fields := s.GetFields()
	str := func(key string) string {
		return strings.TrimSpace(fields[key].GetStringValue())
	}
	num := func(key string) int {
		v, ok := fields[key]
		if !ok {
			return 0
		}
		switch v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			return clampCount(v.GetNumberValue())
		case *structpb.Value_StringValue:
			n, _ := intOr(v.GetStringValue(), true)
			return n
		}
		return 0
	}

	c := model.Criteria{
		Equipment:  str(KeyEquipment),
		StockLevel: model.StockLevel(str(KeyStockLevel)),
		Status:     str(KeyStatus),
		Search:     str(KeySearch),
		SortBy:     model.SortField(str(KeySortBy)),
		SortOrder:  model.SortOrder(strings.ToLower(str(KeySortOrder))),
		Page:       num(KeyPage),
		Limit:      num(KeyLimit),
	}
	if str(KeyScope) == ScopeAll {
		c.SearchScope = model.SearchScopeAll
	}
	return c
}
