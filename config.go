package audioengine

import "github.com/jennydigital/audioengine/internal/fixed"

// FilterConfig is the runtime-tunable filter chain configuration. It is
// a value object: the engine stores the current config behind an atomic
// pointer and SetFilterConfig replaces the whole struct, so the chunk
// processor always sees a consistent snapshot.
type FilterConfig struct {
	// EnableBiquadLPF16 enables the biquad low-pass filter on the
	// 16-bit path.
	EnableBiquadLPF16 bool

	// EnableLPF8 enables the one-pole low-pass filter on the 8-bit path.
	EnableLPF8 bool

	// EnableSoftDCFilter selects the soft DC blocker variant
	// (alpha 0.995) instead of the standard one (alpha 0.98). One of
	// the two always runs; they are never combined.
	EnableSoftDCFilter bool

	// EnableNoiseGate enables the soft noise gate.
	EnableNoiseGate bool

	// EnableSoftClipping enables the cubic soft clipper.
	EnableSoftClipping bool

	// EnableAirEffect enables the high-shelf brightening filter.
	EnableAirEffect bool

	// MakeupGain8 is the Q16 gain applied after the 8-bit one-pole LPF.
	// Zero or out-of-range values normalize to the default (~1.08x).
	MakeupGain8 uint32

	// MakeupGain16 is the Q16 gain applied after the 16-bit biquad.
	// Zero or out-of-range values normalize to the default (unity).
	MakeupGain16 uint32

	// LPF16Level selects the 16-bit biquad aggressiveness.
	LPF16Level LPFLevel

	// LPF16CustomAlpha is the Q16 alpha used when LPF16Level is
	// LPFCustom.
	LPF16CustomAlpha uint16

	// LPF8Level selects the 8-bit one-pole aggressiveness.
	LPF8Level LPFLevel

	// LPF8CustomAlpha is the Q16 alpha used when LPF8Level is LPFCustom.
	LPF8CustomAlpha uint16

	// AirGain is the Q16 shelf gain of the air effect, capped at ~2.0x.
	AirGain uint32

	// VolumeNonlinear applies a perceptual gamma curve to the volume
	// source reading instead of a linear mapping.
	VolumeNonlinear bool

	// VolumeGamma is the gamma exponent for the perceptual curve.
	// 1.0 is linear response; 2.0 is the recommended default.
	VolumeGamma float64
}

// DefaultFilterConfig returns the configuration the engine starts with.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		EnableBiquadLPF16:  true,
		EnableLPF8:         true,
		EnableSoftDCFilter: true,
		EnableNoiseGate:    false,
		EnableSoftClipping: true,
		EnableAirEffect:    false,
		MakeupGain8:        defaultMakeupGain8,
		MakeupGain16:       defaultMakeupGain16,
		LPF16Level:         LPFSoft,
		LPF16CustomAlpha:   lpf16Soft,
		LPF8Level:          LPFMedium,
		LPF8CustomAlpha:    lpf8Medium,
		AirGain:            airDefaultGain,
		VolumeNonlinear:    false,
		VolumeGamma:        defaultVolumeGamma,
	}
}

// normalize clamps auto-corrected fields to sane values. Called on every
// full-struct set so the processor never sees a zero gain or an
// out-of-range gamma.
func (c *FilterConfig) normalize() {
	if c.MakeupGain8 == 0 || c.MakeupGain8 < minMakeupGain || c.MakeupGain8 > maxMakeupGain {
		c.MakeupGain8 = defaultMakeupGain8
	}
	if c.MakeupGain16 == 0 || c.MakeupGain16 < minMakeupGain || c.MakeupGain16 > maxMakeupGain {
		c.MakeupGain16 = defaultMakeupGain16
	}
	if c.AirGain > airMaxGain {
		c.AirGain = airMaxGain
	}
	if c.VolumeGamma < minVolumeGamma || c.VolumeGamma > maxVolumeGamma {
		c.VolumeGamma = defaultVolumeGamma
	}
	if c.LPF16Level < LPFOff || c.LPF16Level > LPFCustom {
		c.LPF16Level = LPFSoft
	}
	if c.LPF8Level < LPFOff || c.LPF8Level > LPFCustom {
		c.LPF8Level = LPFMedium
	}
}

// lpf16Alpha resolves the Q16 alpha for the 16-bit biquad from the
// configured level.
func lpf16Alpha(c *FilterConfig) int32 {
	switch c.LPF16Level {
	case LPFVerySoft:
		return lpf16VerySoft
	case LPFMedium:
		return lpf16Medium
	case LPFFirm:
		return lpf16Firm
	case LPFAggressive:
		return lpf16Aggressive
	case LPFCustom:
		return int32(c.LPF16CustomAlpha)
	default:
		return lpf16Soft
	}
}

// lpf8Alpha resolves the Q16 alpha for the 8-bit one-pole filter from
// the configured level.
func lpf8Alpha(c *FilterConfig) int32 {
	switch c.LPF8Level {
	case LPFVerySoft:
		return lpf8VerySoft
	case LPFSoft:
		return lpf8Soft
	case LPFFirm:
		return lpf8Firm
	case LPFAggressive:
		return lpf8Aggressive
	case LPFCustom:
		return int32(c.LPF8CustomAlpha)
	default:
		return lpf8Medium
	}
}

// CalcAlphaFromCutoff converts a -3 dB cutoff frequency and sample rate
// into a Q16 alpha suitable for the custom LPF levels:
// alpha = exp(-2*pi*fc/fs), clamped to [0, 0.99998]. Returns 0 for
// invalid inputs.
func CalcAlphaFromCutoff(cutoffHz, sampleRateHz float64) uint16 {
	return fixed.AlphaFromCutoff(cutoffHz, sampleRateHz)
}
