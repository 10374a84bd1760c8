package model

type Stats struct {
	TotalParts int
	TotalValue float64
	InProcess  int
	OutOfStock int
	LowStock   int
	// Always holds all four levels.
	StockLevelBreakdown map[StockLevel]int
	EquipmentBreakdown  map[string]EquipmentStats
	// Most recently updated records first.
	RecentActivity []Record
}

type EquipmentStats struct {
	TotalParts    int
	TotalValue    float64
	CriticalParts int
}
