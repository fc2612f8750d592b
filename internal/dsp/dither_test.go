package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand8CenterMapsNearZero(t *testing.T) {
	d := NewDitherer()
	for i := 0; i < 1000; i++ {
		got := d.Expand8(128)
		assert.GreaterOrEqual(t, got, int16(-4), "iteration %d", i)
		assert.LessOrEqual(t, got, int16(3), "iteration %d", i)
	}
}

func TestExpand8Scaling(t *testing.T) {
	d := NewDitherer()
	got := d.Expand8(255)
	assert.InDelta(t, 32512, got, 4)

	got = d.Expand8(1)
	assert.InDelta(t, -32512, got, 4)
}

func TestExpand8Deterministic(t *testing.T) {
	a := NewDitherer()
	b := NewDitherer()
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Expand8(200), b.Expand8(200), "iteration %d", i)
	}
}

func TestDithererReset(t *testing.T) {
	d := NewDitherer()
	first := make([]int16, 32)
	for i := range first {
		first[i] = d.Expand8(64)
	}

	d.Reset()
	for i := range first {
		assert.Equal(t, first[i], d.Expand8(64), "sample %d after reset", i)
	}
}

func TestDitherMeanNearZero(t *testing.T) {
	d := NewDitherer()
	var sum int64
	const n = 10000
	for i := 0; i < n; i++ {
		sum += int64(d.Expand8(128))
	}
	mean := float64(sum) / n
	assert.InDelta(t, 0, mean, 1.0, "TPDF dither is zero-mean up to shift truncation")
}
