package converter

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/you-humble/spare-parts/internal/model"
)

// IDGenerator issues ids for rows that carry no part code.
type IDGenerator interface {
	NewID(category string, ordinal int, row model.RawRow) string
}

// Normalizer turns raw rows into canonical records. It never fails: every
// missing or malformed field degrades to its documented default.
type Normalizer struct {
	ids IDGenerator
}

func NewNormalizer(ids IDGenerator) *Normalizer {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &Normalizer{ids: ids}
}

// RecordFromRow normalizes one row. ordinal is the 0-based row position in the source.
func (n *Normalizer) RecordFromRow(row model.RawRow, ordinal int, loadedAt time.Time) model.Record {
	rec, _ := n.RecordFromRowAudited(row, ordinal, loadedAt)
	return rec
}

// RecordFromRowAudited also reports the canonical names of fields that fell back to a default.
func (n *Normalizer) RecordFromRowAudited(
	row model.RawRow,
	ordinal int,
	loadedAt time.Time,
) (model.Record, []string) {
	cols := newColumns(row)
	var defaulted []string
	mark := func(field string, d bool) {
		if d {
			defaulted = append(defaulted, field)
		}
	}

	var rec model.Record
	var d bool

	raw, ok := cols.get(model.FieldEquipmentCategory)
	rec.EquipmentCategory, d = stringOr(raw, ok, model.DefaultEquipmentCategory)
	mark(model.FieldEquipmentCategory, d)

	raw, ok = cols.get(model.FieldPartName)
	rec.PartName, d = stringOr(raw, ok, model.DefaultPartName)
	mark(model.FieldPartName, d)

	raw, ok = cols.get(model.FieldPartCode)
	rec.PartCode, d = stringOr(raw, ok, model.DefaultPartCode)
	mark(model.FieldPartCode, d)
	if d {
		rec.ID = n.ids.NewID(rec.EquipmentCategory, ordinal, row)
	} else {
		rec.ID = rec.PartCode
	}

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{model.FieldCurrentStock, &rec.CurrentStock},
		{model.FieldMinRequired, &rec.MinRequired},
		{model.FieldMaxThreshold, &rec.MaxThreshold},
		{model.FieldInProcess, &rec.InProcess},
	} {
		raw, ok = cols.get(f.name)
		*f.dst, d = intOr(raw, ok)
		mark(f.name, d)
	}

	raw, ok = cols.get(model.FieldUnitCost)
	rec.UnitCost, d = floatOr(raw, ok)
	mark(model.FieldUnitCost, d)

	raw, ok = cols.get(model.FieldSupplier)
	rec.Supplier, d = stringOr(raw, ok, model.DefaultSupplier)
	mark(model.FieldSupplier, d)

	raw, ok = cols.get(model.FieldLastUpdated)
	rec.LastUpdated, d = dateOr(raw, ok, loadedAt)
	mark(model.FieldLastUpdated, d)

	raw, ok = cols.get(model.FieldStatus)
	rec.Status, d = stringOr(raw, ok, model.DefaultStatus)
	mark(model.FieldStatus, d)

	rec.StockLevel = model.ClassifyStock(rec.CurrentStock, rec.MinRequired)
	rec.TotalValue = float64(rec.CurrentStock) * rec.UnitCost

	return rec, defaulted
}

// RowFromRecord renders a record back into a raw row keyed by canonical field names.
func RowFromRecord(r model.Record) model.RawRow {
	return model.RawRow{
		model.FieldID:                r.ID,
		model.FieldEquipmentCategory: r.EquipmentCategory,
		model.FieldPartName:          r.PartName,
		model.FieldPartCode:          r.PartCode,
		model.FieldCurrentStock:      r.CurrentStock,
		model.FieldMinRequired:       r.MinRequired,
		model.FieldMaxThreshold:      r.MaxThreshold,
		model.FieldInProcess:         r.InProcess,
		model.FieldUnitCost:          r.UnitCost,
		model.FieldSupplier:          r.Supplier,
		model.FieldLastUpdated:       r.LastUpdated,
		model.FieldStatus:            r.Status,
		model.FieldStockLevel:        string(r.StockLevel),
		model.FieldTotalValue:        r.TotalValue,
	}
}

// columns resolves canonical field names against whatever headers a row carries.
// "Part Code", "part_code" and "PART-CODE" all resolve to partCode.
type columns struct {
	row    model.RawRow
	folded map[string]string
}

func newColumns(row model.RawRow) columns {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	// smallest header wins when two fold to the same name
	slices.Sort(keys)

	folded := make(map[string]string, len(keys))
	for _, k := range keys {
		f := foldColumn(k)
		if _, taken := folded[f]; !taken {
			folded[f] = k
		}
	}
	return columns{row: row, folded: folded}
}

func (c columns) get(field string) (any, bool) {
	if v, ok := c.row[field]; ok {
		return v, true
	}
	key, ok := c.folded[foldColumn(field)]
	if !ok {
		return nil, false
	}
	return c.row[key], true
}

func foldColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsSpace(r), r == '_', r == '-':
			continue
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
