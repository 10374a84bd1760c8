package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

// criteriaFromQuery maps query parameters onto criteria. Malformed page or limit
// values are treated as absent and fall back to the defaults.
func criteriaFromQuery(q url.Values) model.Criteria {
	return model.Criteria{
		Equipment:  strings.TrimSpace(q.Get("equipment")),
		StockLevel: model.StockLevel(strings.TrimSpace(q.Get("stockLevel"))),
		Status:     strings.TrimSpace(q.Get("status")),
		Search:     strings.TrimSpace(q.Get("search")),
		SortBy:     model.SortField(strings.TrimSpace(q.Get("sortBy"))),
		SortOrder:  model.SortOrder(strings.ToLower(strings.TrimSpace(q.Get("sortOrder")))),
		Page:       atoiOrZero(q.Get("page")),
		Limit:      atoiOrZero(q.Get("limit")),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
