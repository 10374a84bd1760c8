package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/spare-parts/internal/model"
)

// ByID returns the first record with the given id in snapshot order. A blank id
// matches nothing.
func ByID(snap *model.Snapshot, id string) (model.Record, error) {
	const op = "query.ByID"

	id = strings.TrimSpace(id)
	if id != "" && snap != nil {
		for i := range snap.Records {
			if snap.Records[i].ID == id {
				return snap.Records[i], nil
			}
		}
	}

	return model.Record{}, fmt.Errorf("%s: %w: %s", op, model.ErrRecordNotFound, id)
}

// Categories returns the sorted distinct equipment categories, without the placeholder one.
func Categories(snap *model.Snapshot) []string {
	if snap == nil {
		return []string{}
	}

	out := lo.Uniq(lo.FilterMap(snap.Records, func(r model.Record, _ int) (string, bool) {
		return r.EquipmentCategory, r.EquipmentCategory != model.DefaultEquipmentCategory
	}))
	slices.Sort(out)
	return out
}
