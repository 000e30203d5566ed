package report

import "encoding/json"

// ValidKinds returns the chart kinds that can sensibly plot y against x.
// Line charts need unique values on the independent axis, otherwise the line
// would run back and forth.
func ValidKinds(x, y []any) []Kind {
	xNumeric, xString := classify(x)
	yNumeric, yString := classify(y)

	var kinds []Kind
	if xNumeric && yNumeric {
		kinds = append(kinds, KindScatter, KindBar)
		if unique(x) {
			kinds = append(kinds, KindLine)
		}
	}
	if xString && yNumeric {
		kinds = append(kinds, KindBar, KindPie, KindScatter)
		if unique(x) {
			kinds = append(kinds, KindLine)
		}
	}
	// Numeric x with string y only suits point and line charts.
	if xNumeric && yString {
		kinds = append(kinds, KindScatter)
		if unique(y) {
			kinds = append(kinds, KindLine)
		}
	}
	return dedupe(kinds)
}

// classify reports whether every value is numeric and whether every value is a
// string. Both are true for an empty column.
func classify(values []any) (numeric, str bool) {
	numeric, str = true, true
	for _, v := range values {
		switch v.(type) {
		case float64, float32, int, int64, json.Number:
			str = false
		case string:
			numeric = false
		default:
			return false, false
		}
	}
	return numeric, str
}

// unique is only called on columns classify accepted, so every value is hashable.
func unique(values []any) bool {
	seen := make(map[any]struct{}, len(values))
	for _, v := range values {
		if n, ok := v.(json.Number); ok {
			v = n.String()
		}
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

func dedupe(kinds []Kind) []Kind {
	seen := make(map[Kind]bool, len(kinds))
	out := kinds[:0]
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
