package model

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortField names a sortable record field. Unknown values sort as a no-op.
type SortField string

const (
	SortFieldNone              SortField = ""
	SortFieldID                SortField = FieldID
	SortFieldEquipmentCategory SortField = FieldEquipmentCategory
	SortFieldPartName          SortField = FieldPartName
	SortFieldPartCode          SortField = FieldPartCode
	SortFieldCurrentStock      SortField = FieldCurrentStock
	SortFieldMinRequired       SortField = FieldMinRequired
	SortFieldMaxThreshold      SortField = FieldMaxThreshold
	SortFieldInProcess         SortField = FieldInProcess
	SortFieldUnitCost          SortField = FieldUnitCost
	SortFieldSupplier          SortField = FieldSupplier
	SortFieldLastUpdated       SortField = FieldLastUpdated
	SortFieldStatus            SortField = FieldStatus
	SortFieldStockLevel        SortField = FieldStockLevel
	SortFieldTotalValue        SortField = FieldTotalValue
)

// SearchScope selects which fields a free-text search looks at.
type SearchScope int

const (
	// SearchScopeParts matches partName or partCode.
	SearchScopeParts SearchScope = iota
	// SearchScopeAll additionally matches supplier.
	SearchScopeAll
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Criteria holds optional, AND-composed query parameters. Zero values mean "not supplied".
type Criteria struct {
	Equipment   string
	StockLevel  StockLevel
	Status      string
	Search      string
	SearchScope SearchScope

	SortBy    SortField
	SortOrder SortOrder

	// 1-based.
	Page  int
	Limit int
}

// WithDefaults fills page, limit and sort order where they were not supplied or are invalid.
func (c Criteria) WithDefaults() Criteria {
	if c.Page < 1 {
		c.Page = DefaultPage
	}
	if c.Limit < 1 {
		c.Limit = DefaultLimit
	}
	if c.SortOrder != SortDesc {
		c.SortOrder = SortAsc
	}
	return c
}

type Page struct {
	Records    []Record
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
