package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

type comparator func(a, b *model.Record) int

func byString(get func(r *model.Record) string) comparator {
	return func(a, b *model.Record) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

func byInt(get func(r *model.Record) int) comparator {
	return func(a, b *model.Record) int { return cmp.Compare(get(a), get(b)) }
}

func byFloat(get func(r *model.Record) float64) comparator {
	return func(a, b *model.Record) int { return cmp.Compare(get(a), get(b)) }
}

var comparators = map[model.SortField]comparator{
	model.SortFieldID:                byString(func(r *model.Record) string { return r.ID }),
	model.SortFieldEquipmentCategory: byString(func(r *model.Record) string { return r.EquipmentCategory }),
	model.SortFieldPartName:          byString(func(r *model.Record) string { return r.PartName }),
	model.SortFieldPartCode:          byString(func(r *model.Record) string { return r.PartCode }),
	model.SortFieldSupplier:          byString(func(r *model.Record) string { return r.Supplier }),
	model.SortFieldStatus:            byString(func(r *model.Record) string { return r.Status }),
	model.SortFieldStockLevel:        byString(func(r *model.Record) string { return string(r.StockLevel) }),
	model.SortFieldLastUpdated:       byString(func(r *model.Record) string { return r.LastUpdated }),
	model.SortFieldCurrentStock:      byInt(func(r *model.Record) int { return r.CurrentStock }),
	model.SortFieldMinRequired:       byInt(func(r *model.Record) int { return r.MinRequired }),
	model.SortFieldMaxThreshold:      byInt(func(r *model.Record) int { return r.MaxThreshold }),
	model.SortFieldInProcess:         byInt(func(r *model.Record) int { return r.InProcess }),
	model.SortFieldUnitCost:          byFloat(func(r *model.Record) float64 { return r.UnitCost }),
	model.SortFieldTotalValue:        byFloat(func(r *model.Record) float64 { return r.TotalValue }),
}

// Sortable reports whether field has a comparator. Other fields sort as a no-op.
func Sortable(field model.SortField) bool {
	_, ok := comparators[field]
	return ok
}

// Sort orders records in place with a stable sort, so ties keep their relative order.
// An unknown field leaves the order untouched.
func Sort(records []model.Record, field model.SortField, order model.SortOrder) {
	compare, ok := comparators[field]
	if !ok {
		return
	}

	slices.SortStableFunc(records, func(a, b model.Record) int {
		c := compare(&a, &b)
		if order == model.SortDesc {
			return -c
		}
		return c
	})
}
