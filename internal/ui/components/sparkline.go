package components

import "strings"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a row of block glyphs scaled to [min,max].
// Values outside the range are clamped; an empty slice renders empty.
func Sparkline(values []float64, min, max float64) string {
	if len(values) == 0 || max <= min {
		return ""
	}
	var sb strings.Builder
	span := max - min
	for _, v := range values {
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		idx := int((v - min) / span * float64(len(sparkRunes)-1))
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}
