package model

// StockLevel tells how urgently a part needs replenishment.
type StockLevel string

const (
	StockLevelOutOfStock StockLevel = "OUT_OF_STOCK"
	StockLevelLow        StockLevel = "LOW_STOCK"
	StockLevelMedium     StockLevel = "MEDIUM_STOCK"
	StockLevelHigh       StockLevel = "HIGH_STOCK"
)

// mediumStockFactor is the multiple of minRequired up to which stock is still MEDIUM.
const mediumStockFactor = 1.5

// StockLevels lists every level, most urgent first.
var StockLevels = []StockLevel{
	StockLevelOutOfStock,
	StockLevelLow,
	StockLevelMedium,
	StockLevelHigh,
}

// ClassifyStock derives the stock level from the current and minimum quantities.
// Zero stock is always OUT_OF_STOCK, even when nothing is required.
func ClassifyStock(currentStock, minRequired int) StockLevel {
	switch {
	case currentStock == 0:
		return StockLevelOutOfStock
	case currentStock <= minRequired:
		return StockLevelLow
	case float64(currentStock) <= float64(minRequired)*mediumStockFactor:
		return StockLevelMedium
	default:
		return StockLevelHigh
	}
}

// Critical reports whether the level needs attention (out of stock or low).
func (l StockLevel) Critical() bool {
	return l == StockLevelOutOfStock || l == StockLevelLow
}

// Valid reports whether l is one of the four known levels.
func (l StockLevel) Valid() bool {
	switch l {
	case StockLevelOutOfStock, StockLevelLow, StockLevelMedium, StockLevelHigh:
		return true
	default:
		return false
	}
}
