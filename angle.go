package trellis

import "math"

// Default range of an Angle, in degrees.
const (
	DefaultAngleMin = 0.0
	DefaultAngleMax = 360.0
)

// DistanceMode selects which of the two directional differences
// Angle.Distance returns.
type DistanceMode uint8

const (
	Shortest DistanceMode = iota // smaller of the two directional differences
	Longest                      // larger of the two directional differences
)

// Angle is a circular scalar kept inside the half-open range [Min, Max).
// The zero value is 0 in the default range [0, 360).
//
// Every operation returns (or stores) a normalized value, so wraparound is
// never observable from outside.
type Angle struct {
	value    float64
	min, max float64
}

// NewAngle returns v normalized into [0, 360).
func NewAngle(v float64) Angle {
	return Angle{value: normalizeCircular(v, DefaultAngleMin, DefaultAngleMax), min: DefaultAngleMin, max: DefaultAngleMax}
}

// NewAngleRange returns v normalized into [min, max).
// Panics if max <= min.
func NewAngleRange(v, min, max float64) Angle {
	if !(max > min) {
		panic("trellis: angle range max must be greater than min")
	}
	return Angle{value: normalizeCircular(v, min, max), min: min, max: max}
}

// AngleFromRadians converts r radians to a degree Angle in [0, 360).
func AngleFromRadians(r float64) Angle {
	return NewAngle(r * 180 / math.Pi)
}

// normalizeCircular wraps v into [min, max). Non-finite input maps to min.
func normalizeCircular(v, min, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return min
	}
	if v >= min && v < max {
		return v
	}
	span := max - min
	v = math.Mod(v-min, span)
	if v < 0 {
		v += span
	}
	v += min
	// Rounding in the addition above can land exactly on max.
	if v >= max {
		v = min
	}
	return v
}

func (a Angle) bounds() (min, max float64) {
	if a.max <= a.min {
		return DefaultAngleMin, DefaultAngleMax
	}
	return a.min, a.max
}

// with returns a new Angle in a's range holding v normalized.
func (a Angle) with(v float64) Angle {
	min, max := a.bounds()
	return Angle{value: normalizeCircular(v, min, max), min: min, max: max}
}

// Value returns the normalized value.
func (a Angle) Value() float64 { return a.value }

// Min returns the inclusive lower bound of the range.
func (a Angle) Min() float64 {
	min, _ := a.bounds()
	return min
}

// Max returns the exclusive upper bound of the range.
func (a Angle) Max() float64 {
	_, max := a.bounds()
	return max
}

// Span returns Max - Min.
func (a Angle) Span() float64 {
	min, max := a.bounds()
	return max - min
}

// Radians returns the value converted from degrees to radians.
func (a Angle) Radians() float64 {
	return a.value * math.Pi / 180
}

// Normalize re-applies the range to the stored value. Idempotent.
func (a *Angle) Normalize() {
	*a = a.with(a.value)
}

// Set stores v normalized into the angle's range.
func (a *Angle) Set(v float64) {
	*a = a.with(v)
}

// Add returns a + b in a's range.
func (a Angle) Add(b Angle) Angle { return a.with(a.value + b.value) }

// Sub returns a - b in a's range.
func (a Angle) Sub(b Angle) Angle { return a.with(a.value - b.value) }

// Mul returns a * b in a's range.
func (a Angle) Mul(b Angle) Angle { return a.with(a.value * b.value) }

// Div returns a / b in a's range. Division by a zero angle yields Min.
func (a Angle) Div(b Angle) Angle { return a.with(a.value / b.value) }

// Neg returns -a in a's range.
func (a Angle) Neg() Angle { return a.with(-a.value) }

// Inc returns a + 1.
func (a Angle) Inc() Angle { return a.with(a.value + 1) }

// Dec returns a - 1.
func (a Angle) Dec() Angle { return a.with(a.value - 1) }

// AddScalar adds d in place.
func (a *Angle) AddScalar(d float64) { *a = a.with(a.value + d) }

// SubScalar subtracts d in place.
func (a *Angle) SubScalar(d float64) { *a = a.with(a.value - d) }

// MulScalar multiplies by d in place.
func (a *Angle) MulScalar(d float64) { *a = a.with(a.value * d) }

// DivScalar divides by d in place.
func (a *Angle) DivScalar(d float64) { *a = a.with(a.value / d) }

// Distance computes both directional differences, other-a and a-other, each
// normalized into a's range, and returns the smaller (Shortest) or larger
// (Longest) by raw value.
//
// This is a directional difference, not an arc length: with a range whose
// minimum is negative it can return a negative value. Use ArcLength for the
// unsigned shortest arc.
func (a Angle) Distance(other Angle, mode DistanceMode) Angle {
	forward := a.with(other.value - a.value)
	backward := a.with(a.value - other.value)
	switch mode {
	case Longest:
		return a.with(math.Max(forward.value, backward.value))
	default:
		return a.with(math.Min(forward.value, backward.value))
	}
}

// ArcLength returns the unsigned length of the shortest arc between a and
// other, in [0, Span/2].
func (a Angle) ArcLength(other Angle) float64 {
	span := a.Span()
	d := math.Mod(math.Abs(other.value-a.value), span)
	return math.Min(d, span-d)
}
