package pool

import "math"

// satInc increments c, saturating instead of wrapping at the maximum
// representable value.
func satInc(c int) int {
	if c == math.MaxInt {
		return c
	}
	return c + 1
}
