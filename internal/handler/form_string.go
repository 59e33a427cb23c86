package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FormString is a text field that also accepts JSON numbers, booleans,
// arrays and objects, rendering them as text the way browsers do.
// null, false, 0 and "" all become the empty string.
type FormString string

func (s *FormString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*s = FormString(formText(v, true))
	return nil
}

// String returns the field as a plain string.
func (s FormString) String() string { return string(s) }

func formText(v any, top bool) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if !x && top {
			return ""
		}
		return strconv.FormatBool(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		if f == 0 && top {
			return ""
		}
		return formatNumber(f)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = formText(el, false)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
