// internal/pad/norm.go
package pad

// NormAxis maps a raw signed axis value onto [-1, 1].
//
// The two halves of the range use separate divisors so that both hardware
// extremes land exactly on -1.0 and +1.0 even when the range is asymmetric
// (the common -32768..32767 case). A single shared divisor would leave one
// extreme short of full deflection.
// No IO. No side effects.
func NormAxis(v, min, max int32) float64 {
	if v >= 0 {
		if max <= 0 {
			return 0
		}
		return clamp(float64(v)/float64(max), -1, 1)
	}
	if min >= 0 {
		return 0
	}
	return clamp(float64(v)/-float64(min), -1, 1)
}

// NormTrigger maps a raw trigger value onto [0, 1] linearly over its range.
func NormTrigger(v, min, max int32) float64 {
	if max <= min {
		return 0
	}
	return clamp(float64(v-min)/float64(max-min), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
