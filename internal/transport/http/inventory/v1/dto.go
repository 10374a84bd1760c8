package http

import (
	"time"

	"github.com/you-humble/spare-parts/internal/model"
)

type partDTO struct {
	ID                string  `json:"id"`
	EquipmentCategory string  `json:"equipmentCategory"`
	PartName          string  `json:"partName"`
	PartCode          string  `json:"partCode"`
	CurrentStock      int     `json:"currentStock"`
	MinRequired       int     `json:"minRequired"`
	MaxThreshold      int     `json:"maxThreshold"`
	InProcess         int     `json:"inProcess"`
	UnitCost          float64 `json:"unitCost"`
	Supplier          string  `json:"supplier"`
	LastUpdated       string  `json:"lastUpdated"`
	Status            string  `json:"status"`
	StockLevel        string  `json:"stockLevel"`
	TotalValue        float64 `json:"totalValue"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type pageDTO struct {
	Data       []partDTO     `json:"data"`
	Pagination paginationDTO `json:"pagination"`
}

type equipmentStatsDTO struct {
	TotalParts    int     `json:"totalParts"`
	TotalValue    float64 `json:"totalValue"`
	CriticalParts int     `json:"criticalParts"`
}

type statsDTO struct {
	TotalParts          int                          `json:"totalParts"`
	TotalValue          float64                      `json:"totalValue"`
	InProcess           int                          `json:"inProcess"`
	OutOfStock          int                          `json:"outOfStock"`
	LowStock            int                          `json:"lowStock"`
	StockLevelBreakdown map[string]int               `json:"stockLevelBreakdown"`
	EquipmentBreakdown  map[string]equipmentStatsDTO `json:"equipmentBreakdown"`
	RecentActivity      []partDTO                    `json:"recentActivity"`
}

type snapshotDTO struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt"`
	Source   string    `json:"source"`
}

type syncDTO struct {
	Downloaded bool      `json:"downloaded"`
	Bytes      int64     `json:"bytes"`
	Count      int       `json:"count"`
	LoadedAt   time.Time `json:"loadedAt"`
}

type errorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func partToDTO(r model.Record) partDTO {
	return partDTO{
		ID:                r.ID,
		EquipmentCategory: r.EquipmentCategory,
		PartName:          r.PartName,
		PartCode:          r.PartCode,
		CurrentStock:      r.CurrentStock,
		MinRequired:       r.MinRequired,
		MaxThreshold:      r.MaxThreshold,
		InProcess:         r.InProcess,
		UnitCost:          r.UnitCost,
		Supplier:          r.Supplier,
		LastUpdated:       r.LastUpdated,
		Status:            r.Status,
		StockLevel:        string(r.StockLevel),
		TotalValue:        r.TotalValue,
	}
}

func partsToDTO(recs []model.Record) []partDTO {
	out := make([]partDTO, len(recs))
	for i := range recs {
		out[i] = partToDTO(recs[i])
	}
	return out
}

func pageToDTO(p model.Page) pageDTO {
	return pageDTO{
		Data: partsToDTO(p.Records),
		Pagination: paginationDTO{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
}

func statsToDTO(st model.Stats) statsDTO {
	levels := make(map[string]int, len(st.StockLevelBreakdown))
	for l, n := range st.StockLevelBreakdown {
		levels[string(l)] = n
	}

	equipment := make(map[string]equipmentStatsDTO, len(st.EquipmentBreakdown))
	for cat, e := range st.EquipmentBreakdown {
		equipment[cat] = equipmentStatsDTO(e)
	}

	return statsDTO{
		TotalParts:          st.TotalParts,
		TotalValue:          st.TotalValue,
		InProcess:           st.InProcess,
		OutOfStock:          st.OutOfStock,
		LowStock:            st.LowStock,
		StockLevelBreakdown: levels,
		EquipmentBreakdown:  equipment,
		RecentActivity:      partsToDTO(st.RecentActivity),
	}
}

func snapshotToDTO(s *model.Snapshot) snapshotDTO {
	return snapshotDTO{
		Count:    s.Len(),
		LoadedAt: s.LoadedAt.UTC(),
		Source:   s.Source,
	}
}
