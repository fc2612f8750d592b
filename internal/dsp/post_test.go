package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jennydigital/audioengine/internal/testutil"
)

func TestFadeInRamp(t *testing.T) {
	// Quadratic: halfway through the window the level is a quarter.
	assert.Equal(t, int16(0), FadeIn(20000, 1000, 1000), "start of fade is silence")
	assert.Equal(t, int16(5000), FadeIn(20000, 500, 1000), "halfway is x/4")
	assert.Equal(t, int16(20000), FadeIn(20000, 0, 1000), "finished fade passes through")
	assert.Equal(t, int16(20000), FadeIn(20000, 0, 0), "zero window passes through")
}

func TestFadeInNegativeSamples(t *testing.T) {
	assert.Equal(t, int16(-5000), FadeIn(-20000, 500, 1000))
}

func TestFadeInMonotonic(t *testing.T) {
	ramp := make([]int16, 0, 100)
	for rem := uint32(1000); rem > 0; rem -= 10 {
		ramp = append(ramp, FadeIn(30000, rem, 1000))
	}
	testutil.AssertMonotonicAbs(t, ramp)
	assert.Equal(t, int16(29400), testutil.PeakAbs(ramp))
}

func TestFadeOutRamp(t *testing.T) {
	assert.Equal(t, int16(20000), FadeOut(20000, 1000, 1000), "full window passes through")
	assert.Equal(t, int16(5000), FadeOut(20000, 500, 1000), "halfway is x/4")
	assert.Equal(t, int16(20000), FadeOut(20000, 0, 1000), "inactive fade passes through")
	assert.Equal(t, int16(20000), FadeOut(20000, 5000, 1000), "outside window passes through")
}

func TestFadeLargeWindowNoOverflow(t *testing.T) {
	// A 5 second window at 22 kHz: remaining^2 overflows 32 bits.
	const total = 110000
	assert.InDelta(t, 32767, FadeOut(32767, total-1, total), 2)
	assert.InDelta(t, 32767, FadeIn(32767, 1, total), 2)
}

func TestFadeSymmetry(t *testing.T) {
	// At matching points the in and out ramps sit at the same level.
	const total = 2000
	for _, step := range []uint32{100, 500, 1000, 1500} {
		in := FadeIn(24000, total-step, total)
		out := FadeOut(24000, step, total)
		assert.Equal(t, in, out, "step=%d", step)
	}
}

func TestNoiseGateAttenuatesBelowThreshold(t *testing.T) {
	assert.Equal(t, int16(50), NoiseGate(500))
	assert.Equal(t, int16(-51), NoiseGate(-500))
	assert.Equal(t, int16(0), NoiseGate(0))
}

func TestNoiseGatePassesAboveThreshold(t *testing.T) {
	assert.Equal(t, int16(512), NoiseGate(512))
	assert.Equal(t, int16(-512), NoiseGate(-512))
	assert.Equal(t, int16(20000), NoiseGate(20000))
}

func TestSoftClipPassthroughBelowThreshold(t *testing.T) {
	for _, s := range []int16{0, 100, -100, 27999, -27999, 28000, -28000} {
		assert.Equal(t, s, SoftClip(s), "s=%d", s)
	}
}

func TestSoftClipFullScale(t *testing.T) {
	// Full-scale input lands at the top of the smoothstep curve: the
	// clip range is halved, never folded back.
	assert.Equal(t, int16(30383), SoftClip(32767))
	assert.Equal(t, int16(-30383), SoftClip(-32767))
	assert.Equal(t, int16(-30383), SoftClip(-32768))
}

func TestSoftClipMonotonic(t *testing.T) {
	prev := int16(-32768)
	for s := int32(27000); s <= 32767; s += 97 {
		out := SoftClip(int16(s))
		assert.GreaterOrEqual(t, out, prev, "s=%d", s)
		prev = out
	}
}
