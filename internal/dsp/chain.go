// Package dsp implements the fixed-point filter primitives used by the
// playback engine: DC blocking, one-pole and biquad low-pass filters, a
// high-shelf "air" filter, fade ramps, a soft noise gate, a cubic soft
// clipper, and TPDF dither for 8-bit sources.
//
// All filters operate on signed 16-bit samples with Q16 coefficients.
// History cells are 32-bit and store the pre-clamp filter output, so the
// recurrences keep evolving on the unsaturated values even when
// individual outputs clip.
package dsp

import "github.com/jennydigital/audioengine/internal/fixed"

// ChannelState holds the complete IIR history for one output channel.
// Left and right channels keep independent state but always share filter
// parameters. All fields are zero at the start of a playback session.
type ChannelState struct {
	// DC blocker history (shared by the standard and soft variants).
	DCPrevIn  int32
	DCPrevOut int32

	// One-pole low-pass history (8-bit path).
	LPFPrevOut int32

	// Biquad low-pass history (16-bit path).
	BiquadX1 int32
	BiquadX2 int32
	BiquadY1 int32
	BiquadY2 int32

	// Air-effect high-shelf history.
	AirPrevIn  int32
	AirPrevOut int32
}

// Reset zeroes all filter history for a new playback session.
func (c *ChannelState) Reset() {
	*c = ChannelState{}
}

// DCBlock applies the first-order DC blocking filter
//
//	y = x - x[-1] + (y[-1]*alpha)>>16
//
// with the given Q16 alpha (0.98 standard, 0.995 for the soft variant).
func (c *ChannelState) DCBlock(x int16, alphaQ16 int32) int16 {
	out := int32(int64(x) - int64(c.DCPrevIn) + ((int64(c.DCPrevOut) * int64(alphaQ16)) >> fixed.Shift))

	c.DCPrevIn = int32(x)
	c.DCPrevOut = out

	return fixed.Clamp16(out)
}

// OnePoleLPF applies the first-order low-pass filter used on the 8-bit
// path, followed by the Q16 makeup gain:
//
//	y = (alpha*x + (1-alpha)*y[-1]) >> 16
//
// Lower alpha means heavier filtering. The post-gain value is what gets
// stored as history, so gains above unity raise the settling level too.
func (c *ChannelState) OnePoleLPF(x int16, alphaQ16, makeupGainQ16 int32) int16 {
	out := ((alphaQ16 * int32(x)) >> fixed.Shift) +
		(((fixed.One - alphaQ16) * c.LPFPrevOut) >> fixed.Shift)
	out = fixed.Mul(out, makeupGainQ16)

	c.LPFPrevOut = out

	return fixed.Clamp16(out)
}

// BiquadLPF applies the second-order low-pass filter used on the 16-bit
// path. Coefficients derive from a single Q16 alpha:
//
//	b0 = ((65536-alpha)^2) >> 17,  b1 = 2*b0,  b2 = b0
//	a1 = -2*alpha,                 a2 = (alpha^2) >> 16
//
// Accumulation uses a 64-bit intermediate; aggressive coefficients
// overflow a 32-bit accumulator on full-scale input. Makeup gain is
// applied after the history update so it never feeds back.
func (c *ChannelState) BiquadLPF(x int16, alphaQ16, makeupGainQ16 int32) int16 {
	oneMinus := int64(fixed.One - alphaQ16)
	b0 := int32((oneMinus * oneMinus) >> 17)
	b1 := b0 << 1
	b2 := b0
	a1 := -(alphaQ16 << 1)
	a2 := int32((int64(alphaQ16) * int64(alphaQ16)) >> fixed.Shift)

	acc := int64(b0)*int64(x) +
		int64(b1)*int64(c.BiquadX1) +
		int64(b2)*int64(c.BiquadX2) -
		int64(a1)*int64(c.BiquadY1) -
		int64(a2)*int64(c.BiquadY2)
	out := int32(acc >> fixed.Shift)

	c.BiquadX2 = c.BiquadX1
	c.BiquadX1 = int32(x)
	c.BiquadY2 = c.BiquadY1
	c.BiquadY1 = out

	if makeupGainQ16 != fixed.One {
		out = fixed.Mul(out, makeupGainQ16)
	}

	return fixed.Clamp16(out)
}

// WarmupBiquad runs the first sample of a new stream through the biquad
// the given number of cycles so the history converges before any output
// is produced, eliminating the audible pop at stream start. It calls the
// real filter function: after warm-up the state is bit-identical to N
// cycles of the true first sample.
func (c *ChannelState) WarmupBiquad(first int16, alphaQ16 int32, cycles int) {
	for i := 0; i < cycles; i++ {
		c.BiquadLPF(first, alphaQ16, fixed.One)
	}
}

// AirShelf applies the one-pole high-shelf brightening filter:
//
//	high  = x - x[-1]
//	boost = ((high*(1-alpha))>>16 * gain)>>16
//	y     = (alpha*x)>>16 + ((1-alpha)*y[-1])>>16 + boost
//
// Alpha sits near 0.75, placing the shelf around 5-6 kHz at a 22 kHz
// sample rate. Products use 64-bit intermediates.
func (c *ChannelState) AirShelf(x int16, alphaQ16, shelfGainQ16 int32) int16 {
	oneMinus := int64(fixed.One - alphaQ16)

	high := int64(x) - int64(c.AirPrevIn)
	boost := ((high * oneMinus) >> fixed.Shift) * int64(shelfGainQ16) >> fixed.Shift

	out64 := (int64(alphaQ16)*int64(x))>>fixed.Shift +
		(oneMinus*int64(c.AirPrevOut))>>fixed.Shift +
		boost
	out := int32(out64)

	c.AirPrevIn = int32(x)
	c.AirPrevOut = out

	return fixed.Clamp16(out)
}
