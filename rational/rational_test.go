package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReduces(t *testing.T) {
	r := New(4, 8)
	assert.Equal(t, int64(1), r.Num)
	assert.Equal(t, int64(2), r.Den)
}

func TestNewNormalizesNegativeDenominator(t *testing.T) {
	r := New(3, -4)
	assert.Equal(t, int64(-3), r.Num)
	assert.Equal(t, int64(4), r.Den)
}

func TestAddSubInverse(t *testing.T) {
	a := New(7, 3)
	sum := a.Add(a.Neg())
	assert.True(t, sum.Equal(FromInt(0)), "a + (-a) should be 0, got %v", sum)
}

func TestMulReducesProduct(t *testing.T) {
	a := New(5, 9)
	b := New(9, 4)
	got := a.Mul(b)
	want := New(5, 4)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestQuoInverse(t *testing.T) {
	a := New(7, 2)
	b := New(3, 5)
	got := a.Quo(b).Mul(b)
	assert.True(t, got.Equal(a))
}

func TestCmpAgreesWithCrossProduct(t *testing.T) {
	cases := []struct {
		a, b Rational
		want int
	}{
		{New(1, 2), New(1, 3), 1},
		{New(1, 3), New(1, 2), -1},
		{New(2, 4), New(1, 2), 0},
		{New(-1, 2), New(1, 2), -1},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.a.Cmp(c.b), "%v vs %v", c.a, c.b)
	}
}

func TestSentinelsCompareCorrectly(t *testing.T) {
	assert.True(t, NegInf.Less(FromInt(0)))
	assert.True(t, PosInf.Greater(FromInt(1_000_000)))
	assert.True(t, NegInf.Less(PosInf))
}

func TestIsIntFloorCeil(t *testing.T) {
	assert.True(t, FromInt(5).IsInt())
	assert.False(t, New(5, 2).IsInt())
	assert.Equal(t, int64(2), New(5, 2).Floor())
	assert.Equal(t, int64(3), New(5, 2).Ceil())
	assert.Equal(t, int64(-3), New(-5, 2).Floor())
	assert.Equal(t, int64(-2), New(-5, 2).Ceil())
}

func TestFloat64View(t *testing.T) {
	assert.InDelta(t, 1.5, New(3, 2).Float64(), 1e-9)
}

func TestMinMax(t *testing.T) {
	a, b := New(1, 2), New(2, 3)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
}
