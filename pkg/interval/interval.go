// Package interval provides a scaled time duration value for scheduling.
//
// An Interval carries a 64-bit signed magnitude in one of four units, or the
// sentinel Never, which stands for an unbounded (infinite) duration.
// Arithmetic never overflows or errors: results that exceed the representable
// range saturate to Never, so scheduling code has no numeric error path.
package interval

import (
	"fmt"
	"math"
	"time"
)

// unit identifies the magnitude's resolution.
type unit uint8

const (
	unitSeconds unit = iota
	unitMilliseconds
	unitMicroseconds
	unitNanoseconds
	unitNever
)

// secondsPerUnit converts one tick of the unit to seconds.
var secondsPerUnit = [...]float64{
	unitSeconds:      1,
	unitMilliseconds: 1e-3,
	unitMicroseconds: 1e-6,
	unitNanoseconds:  1e-9,
}

// Interval is a duration magnitude in a fixed unit.
// The zero value is zero seconds. Interval is comparable; two intervals are
// equal only when both unit and magnitude match.
type Interval struct {
	u   unit
	mag int64
}

// Seconds returns an interval of n seconds.
func Seconds(n int64) Interval { return Interval{u: unitSeconds, mag: n} }

// Milliseconds returns an interval of n milliseconds.
func Milliseconds(n int64) Interval { return Interval{u: unitMilliseconds, mag: n} }

// Microseconds returns an interval of n microseconds.
func Microseconds(n int64) Interval { return Interval{u: unitMicroseconds, mag: n} }

// Nanoseconds returns an interval of n nanoseconds.
func Nanoseconds(n int64) Interval { return Interval{u: unitNanoseconds, mag: n} }

// Never returns the unbounded interval. It behaves as +infinity.
func Never() Interval { return Interval{u: unitNever} }

// IsNever reports whether the interval is unbounded.
func (i Interval) IsNever() bool { return i.u == unitNever }

// AsSeconds returns the interval expressed in seconds.
// Never maps to +Inf.
func (i Interval) AsSeconds() float64 {
	if i.u == unitNever {
		return math.Inf(1)
	}
	return float64(i.mag) * secondsPerUnit[i.u]
}

// Negate flips the sign of the magnitude.
// Never stays Never: a negative unbounded duration has no scheduling meaning,
// so negation deliberately keeps the +infinity sentinel.
func (i Interval) Negate() Interval {
	if i.u == unitNever {
		return i
	}
	return Interval{u: i.u, mag: -i.mag}
}

// Scale multiplies the interval by factor.
//
// The result is expressed one unit finer than the receiver when that keeps
// the magnitude representable, so fractional factors stay exact
// (Seconds(1).Scale(0.1) == Milliseconds(100)). When the finer magnitude
// would exceed int64, coarser units are tried in turn; if even whole seconds
// cannot hold the result, Scale saturates to Never.
//
// Scale works on the magnitude directly rather than via a seconds
// conversion, so unit ratios of 1000 stay exact in float64.
func (i Interval) Scale(factor float64) Interval {
	if i.u == unitNever {
		return i
	}

	scaled := float64(i.mag) * factor
	for u := finer(i.u); ; u = coarser(u) {
		mag := scaled * unitRatio(i.u, u)
		if fitsInt64(mag) {
			return Interval{u: u, mag: int64(mag)}
		}
		if u == unitSeconds {
			return Never()
		}
	}
}

// nanosPerUnit converts one tick of the unit to nanoseconds.
var nanosPerUnit = [...]int64{
	unitSeconds:      1e9,
	unitMilliseconds: 1e6,
	unitMicroseconds: 1e3,
	unitNanoseconds:  1,
}

// Duration converts the interval to a time.Duration.
// The second result is false for Never and for magnitudes outside
// time.Duration's nanosecond range.
func (i Interval) Duration() (time.Duration, bool) {
	if i.u == unitNever {
		return 0, false
	}
	per := nanosPerUnit[i.u]
	if i.mag > math.MaxInt64/per || i.mag < math.MinInt64/per {
		return 0, false
	}
	return time.Duration(i.mag * per), true
}

// String returns the interval in a compact human-readable form.
func (i Interval) String() string {
	switch i.u {
	case unitSeconds:
		return fmt.Sprintf("%ds", i.mag)
	case unitMilliseconds:
		return fmt.Sprintf("%dms", i.mag)
	case unitMicroseconds:
		return fmt.Sprintf("%dµs", i.mag)
	case unitNanoseconds:
		return fmt.Sprintf("%dns", i.mag)
	default:
		return "never"
	}
}

// finer returns the next finer unit; nanoseconds stay nanoseconds.
func finer(u unit) unit {
	if u == unitNanoseconds {
		return u
	}
	return u + 1
}

// coarser returns the next coarser unit; seconds stay seconds.
func coarser(u unit) unit {
	if u == unitSeconds {
		return u
	}
	return u - 1
}

// unitRatio is the multiplier converting a magnitude in from-units into
// to-units. Powers of 1000 up to the four-unit spread are exact in float64.
func unitRatio(from, to unit) float64 {
	r := 1.0
	for u := from; u < to; u++ {
		r *= 1000
	}
	for u := to; u < from; u++ {
		r /= 1000
	}
	return r
}

// fitsInt64 reports whether the float magnitude converts to int64 without
// overflow. The upper comparison is strict because float64(math.MaxInt64)
// rounds up to 2^63.
func fitsInt64(f float64) bool {
	return f >= math.MinInt64 && f < float64(math.MaxInt64) && !math.IsNaN(f)
}
