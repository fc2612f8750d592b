// Package testutil provides reusable test helper functions for playback
// engine tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// SampleTolerance is the default allowed deviation in raw sample units
// for fixed-point rounding differences.
const SampleTolerance = 1

// AssertAllSilent verifies that every sample in the slice is zero.
func AssertAllSilent(t *testing.T, s []int16, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "buffer not silent",
				"s[%d]=%d, want 0", i, v)
		}
	}
	return true
}

// AssertNotAllSilent verifies that at least one sample is non-zero.
func AssertNotAllSilent(t *testing.T, s []int16, msgAndArgs ...any) bool {
	t.Helper()
	for _, v := range s {
		if v != 0 {
			return true
		}
	}
	return assert.Fail(t, "buffer silent", "all %d samples are zero", len(s))
}

// AssertAllInRange verifies that all samples are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []int16, minVal, maxVal int16, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "sample out of range",
				"s[%d]=%d is outside range [%d, %d]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonicAbs verifies that sample magnitudes never decrease,
// as along a fade-in ramp over a constant source.
func AssertMonotonicAbs(t *testing.T, s []int16, msgAndArgs ...any) bool {
	t.Helper()
	prev := int16(0)
	for i, v := range s {
		a := v
		if a < 0 {
			a = -a
		}
		if a < prev {
			return assert.Fail(t, "magnitude not monotonic",
				"|s[%d]|=%d < |s[%d]|=%d", i, a, i-1, prev)
		}
		prev = a
	}
	return true
}

// PeakAbs returns the largest sample magnitude in the slice.
func PeakAbs(s []int16) int16 {
	var peak int16
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// ConstantClip returns n copies of value, for feeding a known DC level
// through the engine.
func ConstantClip(value int16, n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = value
	}
	return s
}
