package dsp

// ditherSeed is the initial LCG state. Any non-zero value works; a fixed
// seed keeps dither sequences reproducible across runs.
const ditherSeed = 12345

// Ditherer converts unsigned 8-bit samples to signed 16-bit with TPDF
// (triangular probability density) dither, masking the quantization
// graininess audible on upsampled 8-bit content. One Ditherer is shared
// across channels.
type Ditherer struct {
	state uint32
}

// NewDitherer returns a Ditherer with the default seed.
func NewDitherer() Ditherer {
	return Ditherer{state: ditherSeed}
}

// Reset restores the default seed for a new playback session.
func (d *Ditherer) Reset() {
	d.state = ditherSeed
}

// next draws one byte from the linear-congruential generator.
func (d *Ditherer) next() int32 {
	d.state = d.state*1103515245 + 12345
	return int32(d.state>>16) & 0xFF
}

// Expand8 converts an unsigned 8-bit sample (center 128) to signed
// 16-bit and adds triangular dither from two successive LCG draws.
func (d *Ditherer) Expand8(sample8 uint8) int16 {
	sample16 := (int16(sample8) - 128) << 8

	r1 := d.next()
	r2 := d.next()

	return sample16 + int16((r1-r2)>>6)
}
