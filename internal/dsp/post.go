package dsp

import "github.com/jennydigital/audioengine/internal/fixed"

// Post-filter stage constants.
const (
	// noiseGateThreshold is ~1.5% of full scale. Samples below it are
	// attenuated, not muted, to avoid audible gating artifacts.
	noiseGateThreshold = 512

	// noiseGateAttenuationQ15 is ~0.1 in Q15.
	noiseGateAttenuationQ15 = 3277

	// softClipThreshold is ~85% of full scale; beyond it the cubic
	// smoothstep curve takes over.
	softClipThreshold = 28000
)

// FadeIn scales a sample by the quadratic fade-in ramp. The ramp is
// quadratic rather than linear so perceived loudness rises smoothly
// (amplitude-squared is approximately power-linear).
//
//	progress = total - remaining
//	y        = x * progress^2 / total^2
//
// remaining == 0 means the fade has completed and the sample passes
// through untouched. Squaring uses a 64-bit intermediate: progress^2
// exceeds 32 bits for large fade windows.
func FadeIn(sample int16, remaining, total uint32) int16 {
	if remaining == 0 || total == 0 {
		return sample
	}

	progress := int64(total) - int64(remaining)
	mult := progress * progress / int64(total)
	result := int64(sample) * mult / int64(total)

	return fixed.Clamp16Wide(result)
}

// FadeOut scales a sample by the quadratic fade-out ramp, active only
// while 0 < remaining <= total:
//
//	y = x * remaining^2 / total^2
//
// The engine keys remaining/total to whichever window is live: the
// explicit pause/stop window, or the end-of-stream window derived from
// the samples left in the source.
func FadeOut(sample int16, remaining, total uint32) int16 {
	if remaining == 0 || total == 0 || remaining > total {
		return sample
	}

	r := int64(remaining)
	mult := r * r / int64(total)
	result := int64(sample) * mult / int64(total)

	return fixed.Clamp16Wide(result)
}

// NoiseGate attenuates samples below the gate threshold by ~0.1 instead
// of silencing them outright.
func NoiseGate(sample int16) int16 {
	abs := sample
	if abs < 0 {
		abs = -abs
	}
	if abs < noiseGateThreshold {
		return int16((int32(sample) * noiseGateAttenuationQ15) >> 15)
	}
	return sample
}

// softClipCurve evaluates the cubic smoothstep 3x^2-2x^3 (halved, in Q16)
// over the overshoot range, so output approaches full scale
// asymptotically instead of hard-clipping.
func softClipCurve(excess, clipRange int32) int32 {
	x := excess * fixed.One / clipRange
	if x > fixed.One {
		x = fixed.One
	}
	x2 := (x * x) >> fixed.Shift
	x3 := (x2 * x) >> fixed.Shift

	return ((3 * x2) >> 1) - ((2 * x3) >> 1)
}

// SoftClip limits samples beyond the symmetric +-28000 threshold with a
// cubic smoothstep curve.
func SoftClip(sample int16) int16 {
	const maxVal = fixed.MaxSample

	s := int32(sample)
	clipRange := int32(maxVal - softClipThreshold)

	switch {
	case s > softClipThreshold:
		curve := softClipCurve(s-softClipThreshold, clipRange)
		s = softClipThreshold + ((clipRange * curve) >> fixed.Shift)
	case s < -softClipThreshold:
		curve := softClipCurve(-softClipThreshold-s, clipRange)
		s = -softClipThreshold - ((clipRange * curve) >> fixed.Shift)
	}

	if s > maxVal {
		s = maxVal
	}
	if s < -maxVal {
		s = -maxVal
	}
	return int16(s)
}
