package model

// RawRow is one untyped row as produced by a tabular reader.
// Keys are column headers; values may be missing, blank or of any type.
type RawRow map[string]any

const (
	DefaultEquipmentCategory = "UNKNOWN"
	DefaultPartName          = "Unknown Part"
	DefaultPartCode          = "N/A"
	DefaultSupplier          = "Unknown"
	DefaultStatus            = "Active"
)

// Canonical field names. They double as raw column names and as sort keys.
const (
	FieldID                = "id"
	FieldEquipmentCategory = "equipmentCategory"
	FieldPartName          = "partName"
	FieldPartCode          = "partCode"
	FieldCurrentStock      = "currentStock"
	FieldMinRequired       = "minRequired"
	FieldMaxThreshold      = "maxThreshold"
	FieldInProcess         = "inProcess"
	FieldUnitCost          = "unitCost"
	FieldSupplier          = "supplier"
	FieldLastUpdated       = "lastUpdated"
	FieldStatus            = "status"
	FieldStockLevel        = "stockLevel"
	FieldTotalValue        = "totalValue"
)

// Record is the canonical inventory row. Records are never mutated once placed in a Snapshot.
type Record struct {
	// Part code when present, otherwise a synthetic "<category>-<token>" value.
	ID                string
	EquipmentCategory string
	PartName          string
	PartCode          string
	CurrentStock      int
	MinRequired       int
	MaxThreshold      int
	InProcess         int
	UnitCost          float64
	Supplier          string
	// ISO calendar date (YYYY-MM-DD) when the raw value was parseable,
	// otherwise the raw text verbatim.
	LastUpdated string
	Status      string

	// Derived.
	StockLevel StockLevel
	TotalValue float64
}
