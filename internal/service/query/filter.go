package query

import (
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

type predicate func(r *model.Record) bool

// predicates builds one predicate per supplied criterion. They are ANDed, so their
// order does not change the result.
func predicates(c model.Criteria) []predicate {
	var out []predicate

	if c.Equipment != "" {
		out = append(out, func(r *model.Record) bool { return r.EquipmentCategory == c.Equipment })
	}
	if c.StockLevel != "" {
		out = append(out, func(r *model.Record) bool { return r.StockLevel == c.StockLevel })
	}
	if c.Status != "" {
		out = append(out, func(r *model.Record) bool { return r.Status == c.Status })
	}
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		scope := c.SearchScope
		out = append(out, func(r *model.Record) bool { return matches(r, term, scope) })
	}

	return out
}

func matches(r *model.Record, term string, scope model.SearchScope) bool {
	if strings.Contains(strings.ToLower(r.PartName), term) ||
		strings.Contains(strings.ToLower(r.PartCode), term) {
		return true
	}
	return scope == model.SearchScopeAll && strings.Contains(strings.ToLower(r.Supplier), term)
}

// Filter returns the records matching every supplied criterion, in snapshot order.
// The input slice is never modified.
func Filter(records []model.Record, c model.Criteria) []model.Record {
	preds := predicates(c)

	out := make([]model.Record, 0, len(records))
next:
	for i := range records {
		for _, p := range preds {
			if !p(&records[i]) {
				continue next
			}
		}
		out = append(out, records[i])
	}
	return out
}
