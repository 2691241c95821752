package grid

import "fmt"

// ParseRows builds a resistance array from ASCII rows.
//
//	'#' wall (1.0)
//	'.' or ' ' floor (0.0)
//	'1'..'9' partial resistance (digit / 10)
//
// Any other rune is treated as floor so markers like '@' can annotate a map.
func ParseRows(rows []string) (*Array[float64], error) {
	if len(rows) == 0 {
		return NewArray[float64](0, 0), nil
	}
	width := len([]rune(rows[0]))
	a := NewArray[float64](width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			switch {
			case r == '#':
				a.Set(x, y, 1)
			case r >= '1' && r <= '9':
				a.Set(x, y, float64(r-'0')/10)
			}
		}
	}
	return a, nil
}

// MustParseRows is ParseRows for literal maps; it panics on ragged input.
func MustParseRows(rows ...string) *Array[float64] {
	a, err := ParseRows(rows)
	if err != nil {
		panic(fmt.Sprintf("grid: %v", err))
	}
	return a
}

// Find returns the first position of marker in rows, scanning row by row.
func Find(rows []string, marker rune) (x, y int, ok bool) {
	for yy, row := range rows {
		for xx, r := range []rune(row) {
			if r == marker {
				return xx, yy, true
			}
		}
	}
	return -1, -1, false
}
