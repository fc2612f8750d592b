package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp16(t *testing.T) {
	assert.Equal(t, int16(0), Clamp16(0))
	assert.Equal(t, int16(1234), Clamp16(1234))
	assert.Equal(t, int16(MaxSample), Clamp16(40000))
	assert.Equal(t, int16(MinSample), Clamp16(-40000))
	assert.Equal(t, int16(MaxSample), Clamp16(math.MaxInt32))
	assert.Equal(t, int16(MinSample), Clamp16(math.MinInt32))
}

func TestClamp16Wide(t *testing.T) {
	assert.Equal(t, int16(-5), Clamp16Wide(-5))
	assert.Equal(t, int16(MaxSample), Clamp16Wide(1<<40))
	assert.Equal(t, int16(MinSample), Clamp16Wide(-(1 << 40)))
}

func TestMul(t *testing.T) {
	assert.Equal(t, int32(1000), Mul(1000, One))
	assert.Equal(t, int32(500), Mul(1000, One/2))
	assert.Equal(t, int32(2000), Mul(1000, 2*One))
	assert.Equal(t, int32(-500), Mul(-1000, One/2))
	assert.Equal(t, int32(0), Mul(1000, 0))
}

func TestMulNoOverflowAtFullScale(t *testing.T) {
	// 32767 * 131072 wraps a 32-bit intermediate; the widened multiply
	// must not.
	got := Mul(MaxSample, 2*One)
	assert.Equal(t, int32(2*MaxSample), got)
}

func TestAlphaFromCutoff(t *testing.T) {
	// alpha = exp(-2*pi*1000/22000) ~ 0.7515
	got := AlphaFromCutoff(1000, 22000)
	want := math.Exp(-2 * math.Pi * 1000 / 22000)
	assert.InDelta(t, want, float64(got)/One, 1e-4)
}

func TestAlphaFromCutoffBounds(t *testing.T) {
	assert.Equal(t, uint16(0), AlphaFromCutoff(0, 22000))
	assert.Equal(t, uint16(0), AlphaFromCutoff(-100, 22000))
	assert.Equal(t, uint16(0), AlphaFromCutoff(1000, 0))

	// Tiny cutoffs clamp just below 1.0 so the coefficient stays stable.
	got := AlphaFromCutoff(0.001, 22000)
	assert.LessOrEqual(t, float64(got)/One, maxAlpha+1e-6)
	assert.Greater(t, got, uint16(65000))
}

func TestAlphaFromCutoffMonotonic(t *testing.T) {
	// Higher cutoff means lighter smoothing, so alpha must decrease.
	prev := AlphaFromCutoff(100, 22000)
	for _, fc := range []float64{500, 1000, 2000, 5000, 10000} {
		got := AlphaFromCutoff(fc, 22000)
		assert.Less(t, got, prev, "fc=%v", fc)
		prev = got
	}
}

func TestShelfGainRoundTrip(t *testing.T) {
	const alpha = 49152
	for _, db := range []float64{0.5, 1, 2, 3} {
		q := ShelfGainQ16(db, alpha)
		assert.InDelta(t, db, ShelfGainDb(q, alpha), 0.01, "db=%v", db)
	}
}

func TestShelfGainZeroDbIsPassthrough(t *testing.T) {
	// 0 dB boost corresponds to unity internal gain.
	q := ShelfGainQ16(0, 49152)
	assert.InDelta(t, One, float64(q), 2)
}

func TestShelfGainNegativeFloorsAtZero(t *testing.T) {
	assert.Equal(t, uint32(0), ShelfGainQ16(-40, 49152))
}
