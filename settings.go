package audioengine

import "github.com/jennydigital/audioengine/internal/fixed"

// airEffectPresetsDb is the cycling preset table for the air effect.
// Index 0 means disabled; the remaining entries are shelf boosts in dB.
var airEffectPresetsDb = []float64{0, 1.0, 2.0, 3.0}

// GetFilterConfig returns a snapshot of the current filter
// configuration.
func (e *Engine) GetFilterConfig() FilterConfig {
	return *e.cfg.Load()
}

// SetFilterConfig replaces the whole filter configuration atomically
// after normalizing out-of-range fields. The chunk processor picks up
// the new config at its next half-buffer.
func (e *Engine) SetFilterConfig(cfg FilterConfig) {
	cfg.normalize()
	e.cfg.Store(&cfg)
}

// updateConfig applies f to a copy of the current config and publishes
// the copy. Callers mutate only the fields they own; concurrent setters
// may lose against each other but the processor always sees a
// consistent struct.
func (e *Engine) updateConfig(f func(*FilterConfig)) {
	cfg := *e.cfg.Load()
	f(&cfg)
	cfg.normalize()
	e.cfg.Store(&cfg)
}

// SetLPF16Level selects the 16-bit biquad aggressiveness. LPFOff
// disables the filter; any valid level enables it. Invalid levels fall
// back to LPFSoft.
func (e *Engine) SetLPF16Level(level LPFLevel) {
	if level < LPFOff || level > LPFCustom {
		level = LPFSoft
	}
	e.updateConfig(func(c *FilterConfig) {
		c.LPF16Level = level
		c.EnableBiquadLPF16 = level != LPFOff
	})
}

// GetLPF16Level returns the configured 16-bit biquad level.
func (e *Engine) GetLPF16Level() LPFLevel {
	return e.cfg.Load().LPF16Level
}

// SetLPF8Level selects the 8-bit one-pole aggressiveness. LPFOff
// disables the filter; invalid levels fall back to LPFVerySoft, the
// safest setting for already-quantized material.
func (e *Engine) SetLPF8Level(level LPFLevel) {
	if level < LPFOff || level > LPFCustom {
		level = LPFVerySoft
	}
	e.updateConfig(func(c *FilterConfig) {
		c.LPF8Level = level
		c.EnableLPF8 = level != LPFOff
	})
}

// GetLPF8Level returns the configured 8-bit one-pole level.
func (e *Engine) GetLPF8Level() LPFLevel {
	return e.cfg.Load().LPF8Level
}

// SetLPF16CustomAlpha sets the Q16 alpha used when the 16-bit level is
// LPFCustom. Derive alpha from a cutoff frequency with
// CalcAlphaFromCutoff.
func (e *Engine) SetLPF16CustomAlpha(alpha uint16) {
	e.updateConfig(func(c *FilterConfig) {
		c.LPF16CustomAlpha = alpha
	})
}

// SetLPF8CustomAlpha sets the Q16 alpha used when the 8-bit level is
// LPFCustom.
func (e *Engine) SetLPF8CustomAlpha(alpha uint16) {
	e.updateConfig(func(c *FilterConfig) {
		c.LPF8CustomAlpha = alpha
	})
}

// SetMakeupGain8 sets the linear makeup gain applied after the 8-bit
// one-pole LPF, clamped to [0.1, 2.0].
func (e *Engine) SetMakeupGain8(gain float64) {
	e.updateConfig(func(c *FilterConfig) {
		c.MakeupGain8 = clampGainQ16(gain)
	})
}

// GetMakeupGain8 returns the 8-bit makeup gain as a linear factor.
func (e *Engine) GetMakeupGain8() float64 {
	return float64(e.cfg.Load().MakeupGain8) / fixed.One
}

// SetMakeupGain16 sets the linear makeup gain applied after the 16-bit
// biquad, clamped to [0.1, 2.0].
func (e *Engine) SetMakeupGain16(gain float64) {
	e.updateConfig(func(c *FilterConfig) {
		c.MakeupGain16 = clampGainQ16(gain)
	})
}

// GetMakeupGain16 returns the 16-bit makeup gain as a linear factor.
func (e *Engine) GetMakeupGain16() float64 {
	return float64(e.cfg.Load().MakeupGain16) / fixed.One
}

func clampGainQ16(gain float64) uint32 {
	q := uint32(gain*fixed.One + 0.5)
	if q < minMakeupGain {
		q = minMakeupGain
	}
	if q > maxMakeupGain {
		q = maxMakeupGain
	}
	return q
}

// SetSoftDCFilterEnabled switches between the soft (0.995) and standard
// (0.98) DC blocker. One of the two always runs.
func (e *Engine) SetSoftDCFilterEnabled(enabled bool) {
	e.updateConfig(func(c *FilterConfig) {
		c.EnableSoftDCFilter = enabled
	})
}

// GetSoftDCFilterEnabled reports whether the soft DC blocker variant is
// selected.
func (e *Engine) GetSoftDCFilterEnabled() bool {
	return e.cfg.Load().EnableSoftDCFilter
}

// SetNoiseGateEnabled enables or disables the soft noise gate.
func (e *Engine) SetNoiseGateEnabled(enabled bool) {
	e.updateConfig(func(c *FilterConfig) {
		c.EnableNoiseGate = enabled
	})
}

// GetNoiseGateEnabled reports whether the noise gate is enabled.
func (e *Engine) GetNoiseGateEnabled() bool {
	return e.cfg.Load().EnableNoiseGate
}

// SetSoftClippingEnabled enables or disables the cubic soft clipper.
func (e *Engine) SetSoftClippingEnabled(enabled bool) {
	e.updateConfig(func(c *FilterConfig) {
		c.EnableSoftClipping = enabled
	})
}

// GetSoftClippingEnabled reports whether the soft clipper is enabled.
func (e *Engine) GetSoftClippingEnabled() bool {
	return e.cfg.Load().EnableSoftClipping
}

// SetAirEffectEnabled enables or disables the high-shelf air effect
// without changing its gain.
func (e *Engine) SetAirEffectEnabled(enabled bool) {
	e.updateConfig(func(c *FilterConfig) {
		c.EnableAirEffect = enabled
	})
}

// GetAirEffectEnabled reports whether the air effect is enabled.
func (e *Engine) GetAirEffectEnabled() bool {
	return e.cfg.Load().EnableAirEffect
}

// SetAirEffectGainQ16 sets the raw Q16 shelf gain of the air effect,
// capped at the ~2.0x runtime maximum.
func (e *Engine) SetAirEffectGainQ16(gain uint32) {
	if gain > airMaxGain {
		gain = airMaxGain
	}
	e.updateConfig(func(c *FilterConfig) {
		c.AirGain = gain
	})
}

// GetAirEffectGainQ16 returns the raw Q16 shelf gain of the air effect.
func (e *Engine) GetAirEffectGainQ16() uint32 {
	return e.cfg.Load().AirGain
}

// SetAirEffectGainDb sets the air effect boost as a shelf gain in dB at
// the fixed air cutoff.
func (e *Engine) SetAirEffectGainDb(db float64) {
	e.SetAirEffectGainQ16(fixed.ShelfGainQ16(db, airCutoffAlpha))
}

// GetAirEffectGainDb returns the air effect boost as a shelf gain in dB.
func (e *Engine) GetAirEffectGainDb() float64 {
	return fixed.ShelfGainDb(e.cfg.Load().AirGain, airCutoffAlpha)
}

// SetAirEffectPreset selects an entry from the preset table. Index 0
// disables the effect; a positive index sets its dB boost and enables
// it. Out-of-range indexes select 0.
func (e *Engine) SetAirEffectPreset(index int) {
	if index < 0 || index >= len(airEffectPresetsDb) {
		index = 0
	}
	e.airPresetIdx = index
	if index == 0 {
		e.SetAirEffectEnabled(false)
		return
	}
	gain := fixed.ShelfGainQ16(airEffectPresetsDb[index], airCutoffAlpha)
	if gain > airMaxGain {
		gain = airMaxGain
	}
	e.updateConfig(func(c *FilterConfig) {
		c.AirGain = gain
		c.EnableAirEffect = true
	})
}

// CycleAirEffectPreset advances to the next preset, wrapping back to
// disabled after the strongest one, and returns the new index.
func (e *Engine) CycleAirEffectPreset() int {
	next := (e.airPresetIdx + 1) % len(airEffectPresetsDb)
	e.SetAirEffectPreset(next)
	return next
}

// GetAirEffectPresetIndex returns the most recently selected preset
// index.
func (e *Engine) GetAirEffectPresetIndex() int {
	return e.airPresetIdx
}

// AirEffectPresetCount returns the number of entries in the preset
// table, including the disabled entry.
func AirEffectPresetCount() int {
	return len(airEffectPresetsDb)
}

// AirEffectPresetDb returns the dB boost of the given preset index, or
// 0 for out-of-range indexes.
func AirEffectPresetDb(index int) float64 {
	if index < 0 || index >= len(airEffectPresetsDb) {
		return 0
	}
	return airEffectPresetsDb[index]
}

// SetVolumeResponseNonlinear switches the volume mapping between linear
// and the perceptual gamma curve.
func (e *Engine) SetVolumeResponseNonlinear(enabled bool) {
	e.updateConfig(func(c *FilterConfig) {
		c.VolumeNonlinear = enabled
	})
}

// GetVolumeResponseNonlinear reports whether the perceptual volume
// curve is active.
func (e *Engine) GetVolumeResponseNonlinear() bool {
	return e.cfg.Load().VolumeNonlinear
}

// SetVolumeResponseGamma sets the gamma exponent of the perceptual
// volume curve, clamped to [1.0, 4.0].
func (e *Engine) SetVolumeResponseGamma(gamma float64) {
	if gamma < minVolumeGamma {
		gamma = minVolumeGamma
	}
	if gamma > maxVolumeGamma {
		gamma = maxVolumeGamma
	}
	e.updateConfig(func(c *FilterConfig) {
		c.VolumeGamma = gamma
	})
}

// GetVolumeResponseGamma returns the configured gamma exponent.
func (e *Engine) GetVolumeResponseGamma() float64 {
	return e.cfg.Load().VolumeGamma
}

// SetFadeInTime sets the play-start fade-in duration in seconds. The
// sample count is recomputed for the current rate; durations clamp to
// [0.001, 5.0] when converted. Takes effect at the next PlaySample.
func (e *Engine) SetFadeInTime(seconds float64) {
	e.fades.fadeInSecs = seconds
	e.recomputeFadeSamples()
}

// GetFadeInTime returns the configured fade-in duration in seconds.
func (e *Engine) GetFadeInTime() float64 {
	return e.fades.fadeInSecs
}

// SetFadeOutTime sets the end-of-stream fade-out duration in seconds.
func (e *Engine) SetFadeOutTime(seconds float64) {
	e.fades.fadeOutSecs = seconds
	e.recomputeFadeSamples()
}

// GetFadeOutTime returns the configured fade-out duration in seconds.
func (e *Engine) GetFadeOutTime() float64 {
	return e.fades.fadeOutSecs
}

// SetPauseFadeTime sets the pause ramp duration in seconds.
func (e *Engine) SetPauseFadeTime(seconds float64) {
	e.fades.pauseFadeSecs = seconds
	e.recomputeFadeSamples()
}

// GetPauseFadeTime returns the configured pause ramp duration in
// seconds.
func (e *Engine) GetPauseFadeTime() float64 {
	return e.fades.pauseFadeSecs
}

// SetResumeFadeTime sets the resume fade-in duration in seconds.
func (e *Engine) SetResumeFadeTime(seconds float64) {
	e.fades.resumeFadeSecs = seconds
	e.recomputeFadeSamples()
}

// GetResumeFadeTime returns the configured resume fade-in duration in
// seconds.
func (e *Engine) GetResumeFadeTime() float64 {
	return e.fades.resumeFadeSecs
}
