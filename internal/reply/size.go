package reply

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary (1024) steps, e.g. 500 -> "500 B",
// 1536 -> "1.50 KB", 15360 -> "15 KB". Unknown sizes (n <= 0) render as "".
func FormatBytes(n int64) string {
	if n <= 0 {
		return ""
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	// 1023.9 KB prints as 1024 KB unless it moves up a unit.
	if unit > 0 && unit < len(sizeUnits)-1 && math.Round(value) >= 1024 {
		value /= 1024
		unit++
	}
	switch {
	case unit == 0:
		return fmt.Sprintf("%d %s", n, sizeUnits[unit])
	case math.Round(value*100)/100 < 10:
		return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
	default:
		return fmt.Sprintf("%.0f %s", value, sizeUnits[unit])
	}
}
