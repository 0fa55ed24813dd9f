// Package rational implements exact arithmetic over the rationals for the
// simulator's time quantities. Every simulated time, period, and deadline is
// a Rational so that no scheduling decision ever loses precision to floating
// point rounding.
package rational

import (
	"fmt"
	"math"
	"math/bits"
)

// Rational is a reduced fraction Num/Den with Den > 0.
type Rational struct {
	Num int64
	Den int64
}

// sentinelBound keeps packed 64-bit priority keys (PD², see the scheduler
// package) safe: deadlines must fit in 31 bits, so sentinels are built from
// math.MaxInt32 rather than math.MaxInt64.
const sentinelBound = math.MaxInt32

// PosInf and NegInf are time sentinels well outside any representable task
// deadline, used by scheduler helpers as "no event yet" placeholders.
var (
	PosInf = New(sentinelBound, 1)
	NegInf = New(-sentinelBound, 1)
)

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// New builds a reduced Rational. Den == 0 is treated as Den == 1 (callers
// never construct a Rational with a zero denominator intentionally).
func New(num, den int64) Rational {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	d := gcd(num, den)
	return Rational{Num: num / d, Den: den / d}
}

// FromInt builds a Rational equal to the integer n.
func FromInt(n int64) Rational {
	return Rational{Num: n, Den: 1}
}

// IsInt reports whether the value is integral (denominator 1).
func (r Rational) IsInt() bool {
	return r.Den == 1
}

// Floor returns the greatest integer <= r.
func (r Rational) Floor() int64 {
	q := r.Num / r.Den
	if r.Num%r.Den != 0 && r.Num < 0 {
		q--
	}
	return q
}

// Ceil returns the least integer >= r.
func (r Rational) Ceil() int64 {
	q := r.Num / r.Den
	if r.Num%r.Den != 0 && r.Num > 0 {
		q++
	}
	return q
}

// Float64 is a lossy view of r, used only for plotting/export.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{Num: -r.Num, Den: r.Den}
}

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	return New(r.Num*other.Den+other.Num*r.Den, r.Den*other.Den)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	return r.Add(other.Neg())
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return New(r.Num*other.Num, r.Den*other.Den)
}

// Inv returns 1/r.
func (r Rational) Inv() Rational {
	return New(r.Den, r.Num)
}

// Quo returns r / other.
func (r Rational) Quo(other Rational) Rational {
	return r.Mul(other.Inv())
}

// mul128 returns the signed 128-bit product a*b as (hi, lo) where the sign
// lives in hi's top bit, matching the layout Cmp needs to compare two such
// products without ever overflowing an int64 multiply.
func mul128(a, b int64) (hi, lo uint64) {
	neg := (a < 0) != (b < 0)
	ua, ub := uint64a(a), uint64a(b)
	hi, lo = bits.Mul64(ua, ub)
	if neg {
		lo, borrow := bits.Sub64(0, lo, 0)
		hi, _ = bits.Sub64(0, hi, borrow)
		return hi, lo
	}
	return hi, lo
}

func uint64a(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

// cmp128 compares two signed 128-bit values given as (hi, lo) pairs where hi
// is interpreted as two's-complement (its top bit is the sign).
func cmp128(hi1, lo1, hi2, lo2 uint64) int {
	s1, s2 := int64(hi1) < 0, int64(hi2) < 0
	if s1 != s2 {
		if s1 {
			return -1
		}
		return 1
	}
	if hi1 != hi2 {
		if hi1 < hi2 {
			return -1
		}
		return 1
	}
	if lo1 != lo2 {
		if lo1 < lo2 {
			return -1
		}
		return 1
	}
	return 0
}

// Cmp compares r to other: a/b < c/d iff a*d < c*b, computed with
// overflow-safe 128-bit intermediates (spec requirement: denominators are
// always positive, so the cross-multiplication sign flip never applies).
func (r Rational) Cmp(other Rational) int {
	hi1, lo1 := mul128(r.Num, other.Den)
	hi2, lo2 := mul128(other.Num, r.Den)
	return cmp128(hi1, lo1, hi2, lo2)
}

func (r Rational) Less(other Rational) bool      { return r.Cmp(other) < 0 }
func (r Rational) LessEq(other Rational) bool     { return r.Cmp(other) <= 0 }
func (r Rational) Greater(other Rational) bool    { return r.Cmp(other) > 0 }
func (r Rational) GreaterEq(other Rational) bool  { return r.Cmp(other) >= 0 }
func (r Rational) Equal(other Rational) bool      { return r.Num == other.Num && r.Den == other.Den }

// Min returns the lesser of a and b.
func Min(a, b Rational) Rational {
	if a.Less(b) {
		return a
	}
	return b
}

// Max returns the greater of a and b.
func Max(a, b Rational) Rational {
	if a.Greater(b) {
		return a
	}
	return b
}

// String renders "n" for integers and "n/d" otherwise.
func (r Rational) String() string {
	if r.IsInt() {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
