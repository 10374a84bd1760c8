package query

import (
	"github.com/you-humble/spare-parts/internal/model"
)

// Run filters, sorts and paginates one snapshot. Pagination is applied last, so
// Total is the filtered count.
func Run(snap *model.Snapshot, c model.Criteria) model.Page {
	c = c.WithDefaults()

	var records []model.Record
	if snap != nil {
		records = snap.Records
	}

	matched := Filter(records, c)
	Sort(matched, c.SortBy, c.SortOrder)

	return Paginate(matched, c.Page, c.Limit)
}

// Paginate cuts one 1-based page. A page past the end is empty but keeps Total.
func Paginate(records []model.Record, page, limit int) model.Page {
	if page < 1 {
		page = model.DefaultPage
	}
	if limit < 1 {
		limit = model.DefaultLimit
	}

	total := len(records)
	pages := totalPages(total, limit)
	out := model.Page{
		Records:    []model.Record{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
	}

	// compared in page units so (page-1)*limit never overflows
	if page-1 >= pages {
		return out
	}
	start := (page - 1) * limit
	end := start + min(limit, total-start)
	out.Records = records[start:end]

	return out
}

func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
