// Package fixed provides Q16 fixed-point arithmetic helpers shared by the
// playback engine's filter chain.
//
// Q16 stores a real value as round(value * 65536) in an integer. Products
// of two Q16 quantities are computed in 64 bits before the >>16 rescale so
// that full-scale samples never overflow a 32-bit intermediate.
package fixed

import "math"

// Q16 scaling constants.
const (
	// One is 1.0 in Q16.
	One = 65536

	// Shift is the right shift that rescales a Q16 product.
	Shift = 16
)

// Signed 16-bit sample range.
const (
	MaxSample = 32767
	MinSample = -32768
)

// maxAlpha bounds one-pole and biquad feedback coefficients so the
// feedback term can never saturate the accumulator.
const maxAlpha = 0.99998

// Clamp16 saturates a 32-bit intermediate to the signed 16-bit range.
func Clamp16(v int32) int16 {
	if v > MaxSample {
		return MaxSample
	}
	if v < MinSample {
		return MinSample
	}
	return int16(v)
}

// Clamp16Wide saturates a 64-bit intermediate to the signed 16-bit range.
func Clamp16Wide(v int64) int16 {
	if v > MaxSample {
		return MaxSample
	}
	if v < MinSample {
		return MinSample
	}
	return int16(v)
}

// Mul multiplies a sample-domain value by a Q16 gain, widening to 64 bits
// so full-scale samples with gains near 2.0 cannot wrap.
func Mul(v, gainQ16 int32) int32 {
	return int32((int64(v) * int64(gainQ16)) >> Shift)
}

// AlphaFromCutoff converts a -3 dB cutoff frequency into a Q16 one-pole
// smoothing coefficient: alpha = exp(-2*pi*fc/fs). The result is clamped
// to [0, 0.99998] before quantization. Returns 0 for invalid inputs.
func AlphaFromCutoff(cutoffHz, sampleRateHz float64) uint16 {
	if cutoffHz <= 0 || sampleRateHz <= 0 {
		return 0
	}

	alpha := math.Exp(-2 * math.Pi * cutoffHz / sampleRateHz)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > maxAlpha {
		alpha = maxAlpha
	}
	return uint16(alpha*One + 0.5)
}

// ShelfGainQ16 converts a desired high-frequency boost in dB (measured at
// the Nyquist frequency) into the internal shelf gain G in Q16 for a
// one-pole high shelf with the given Q16 alpha:
//
//	Hpi = 10^(db/20)
//	G   = (Hpi*(2-alpha) - alpha) / (2*(1-alpha))
//
// Negative gains are floored at zero. Callers cap the result to their own
// maximum before use.
func ShelfGainQ16(db float64, alphaQ16 int32) uint32 {
	alpha := float64(alphaQ16) / One
	hpi := math.Pow(10, db/20)
	g := (hpi*(2-alpha) - alpha) / (2 * (1 - alpha))
	if g < 0 {
		g = 0
	}
	return uint32(g*One + 0.5)
}

// ShelfGainDb is the inverse of ShelfGainQ16: it reports the boost in dB
// at the Nyquist frequency for a Q16 shelf gain and alpha.
//
//	Hpi = (alpha + 2*(1-alpha)*G) / (2-alpha)
//	db  = 20*log10(Hpi)
func ShelfGainDb(gainQ16 uint32, alphaQ16 int32) float64 {
	alpha := float64(alphaQ16) / One
	g := float64(gainQ16) / One
	hpi := (alpha + 2*(1-alpha)*g) / (2 - alpha)
	return 20 * math.Log10(hpi)
}
