package requirement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxVolts is the largest voltage a block may name.
const MaxVolts = 1000.0

// CheckVolts rejects voltages that cannot name a rail: NaN, infinities,
// values at or below zero and values above MaxVolts.
func CheckVolts(name string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%s must be a finite number, got %g", name, v)
	case v <= 0:
		return fmt.Errorf("%s must be positive, got %g", name, v)
	case v > MaxVolts:
		return fmt.Errorf("%s must not exceed %gV, got %g", name, MaxVolts, v)
	}
	return nil
}

// Millivolts rounds a voltage to whole millivolts. Voltages are compared and
// named in this unit so that 5, 5.0 and 5.000 are the same rail. v should
// pass CheckVolts; other values give meaningless results.
func Millivolts(v float64) int64 {
	return int64(math.Round(v * 1000))
}

// FormatVolts renders a voltage at millivolt precision with at least one
// fractional digit: 5 -> "5.0", 3.3 -> "3.3", 1.2346 -> "1.235".
func FormatVolts(v float64) string {
	mv := Millivolts(v)
	s := strconv.FormatFloat(float64(mv)/1000, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
