package converter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/you-humble/spare-parts/internal/model"
)

// Every parser below returns (value, defaulted). defaulted is true when the raw value
// was missing or unusable and the fallback was substituted.

func stringOr(raw any, present bool, def string) (string, bool) {
	if !present || raw == nil {
		return def, true
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		s = v.Format(model.DateLayout)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	case json.Number:
		s = v.String()
	case interface{ String() string }:
		s = v.String()
	default:
		return def, true
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	return s, false
}

// intOr truncates fractional input and treats negatives as unusable.
func intOr(raw any, present bool) (int, bool) {
	f, defaulted := numberOr(raw, present)
	if defaulted {
		return 0, true
	}
	if f > math.MaxInt32 {
		return 0, true
	}
	return int(f), false
}

func floatOr(raw any, present bool) (float64, bool) {
	return numberOr(raw, present)
}

func numberOr(raw any, present bool) (float64, bool) {
	if !present || raw == nil {
		return 0, true
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, true
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, true
		}
		f = parsed
	default:
		return 0, true
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, true
	}
	return f, false
}

// dateOr canonicalises parseable dates to YYYY-MM-DD and keeps unparseable text verbatim.
func dateOr(raw any, present bool, loadedAt time.Time) (string, bool) {
	fallback := loadedAt.Format(model.DateLayout)
	if !present || raw == nil {
		return fallback, true
	}

	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return fallback, true
		}
		return v.Format(model.DateLayout), false
	case float64:
		if t, ok := model.ExcelSerialToTime(v); ok {
			return t.Format(model.DateLayout), false
		}
		return fallback, true
	case int, int32, int64:
		n, _ := numberOr(v, true)
		if t, ok := model.ExcelSerialToTime(n); ok {
			return t.Format(model.DateLayout), false
		}
		return fallback, true
	}

	s, defaulted := stringOr(raw, present, "")
	if defaulted {
		return fallback, true
	}
	if t, ok := model.ParseDate(s); ok {
		return t.Format(model.DateLayout), false
	}
	return s, false
}
