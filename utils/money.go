package utils

import (
	"math"
	"strconv"
)

// RoundGNF rounds x to a whole Guinean Franc. GNF has no subunit, so every
// aggregation step rounds here rather than deferring to display time.
func RoundGNF(x float64) int64 {
	return int64(math.Round(x))
}

// FormatGNF renders a whole-GNF amount with thin-space thousand grouping,
// e.g. 15750000 -> "15 750 000 GNF".
func FormatGNF(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out) + " GNF"
}
