package stats

import (
	"slices"
	"time"

	"github.com/you-humble/spare-parts/internal/model"
)

// RecentActivityLimit caps the recent-activity list.
const RecentActivityLimit = 10

// Summarize computes totals and breakdowns over the whole snapshot in one pass.
func Summarize(snap *model.Snapshot) model.Stats {
	st := model.Stats{
		StockLevelBreakdown: make(map[model.StockLevel]int, len(model.StockLevels)),
		EquipmentBreakdown:  make(map[string]model.EquipmentStats),
		RecentActivity:      []model.Record{},
	}
	for _, l := range model.StockLevels {
		st.StockLevelBreakdown[l] = 0
	}
	if snap == nil {
		return st
	}

	for i := range snap.Records {
		r := &snap.Records[i]

		st.TotalParts++
		st.TotalValue += r.TotalValue
		st.InProcess += r.InProcess
		st.StockLevelBreakdown[r.StockLevel]++

		switch r.StockLevel {
		case model.StockLevelOutOfStock:
			st.OutOfStock++
		case model.StockLevelLow:
			st.LowStock++
		}

		eq := st.EquipmentBreakdown[r.EquipmentCategory]
		eq.TotalParts++
		eq.TotalValue += r.TotalValue
		if r.StockLevel.Critical() {
			eq.CriticalParts++
		}
		st.EquipmentBreakdown[r.EquipmentCategory] = eq
	}

	st.RecentActivity = RecentActivity(snap.Records, RecentActivityLimit)
	return st
}

// RecentActivity returns up to n records, most recently updated first.
// Unparseable dates sort as the oldest; ties keep snapshot order.
func RecentActivity(records []model.Record, n int) []model.Record {
	type dated struct {
		at  time.Time
		rec model.Record
	}

	all := make([]dated, len(records))
	for i, r := range records {
		at, _ := model.ParseDate(r.LastUpdated)
		all[i] = dated{at: at, rec: r}
	}

	slices.SortStableFunc(all, func(a, b dated) int {
		return b.at.Compare(a.at)
	})

	n = min(n, len(all))
	out := make([]model.Record, n)
	for i := range n {
		out[i] = all[i].rec
	}
	return out
}
