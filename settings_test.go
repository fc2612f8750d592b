package audioengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennydigital/audioengine/internal/fixed"
)

func newSettingsEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(&Config{
		Transport:  &stubTransport{},
		ReadVolume: func() uint16 { return MaxVolume },
	})
	require.NoError(t, err)
	return e
}

func TestDefaultFilterConfig(t *testing.T) {
	cfg := DefaultFilterConfig()
	assert.True(t, cfg.EnableBiquadLPF16)
	assert.True(t, cfg.EnableLPF8)
	assert.True(t, cfg.EnableSoftDCFilter)
	assert.False(t, cfg.EnableNoiseGate)
	assert.True(t, cfg.EnableSoftClipping)
	assert.False(t, cfg.EnableAirEffect)
	assert.Equal(t, LPFSoft, cfg.LPF16Level)
	assert.Equal(t, LPFMedium, cfg.LPF8Level)
	assert.Equal(t, uint32(defaultMakeupGain16), cfg.MakeupGain16)
}

func TestSetFilterConfigNormalizes(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetFilterConfig(FilterConfig{
		MakeupGain8:  0,
		MakeupGain16: 9_999_999,
		AirGain:      9_999_999,
		VolumeGamma:  0.2,
		LPF16Level:   LPFLevel(99),
		LPF8Level:    LPFLevel(-1),
	})

	cfg := e.GetFilterConfig()
	assert.Equal(t, uint32(defaultMakeupGain8), cfg.MakeupGain8)
	assert.Equal(t, uint32(defaultMakeupGain16), cfg.MakeupGain16)
	assert.Equal(t, uint32(airMaxGain), cfg.AirGain)
	assert.Equal(t, float64(defaultVolumeGamma), cfg.VolumeGamma)
	assert.Equal(t, LPFSoft, cfg.LPF16Level)
	assert.Equal(t, LPFMedium, cfg.LPF8Level)
}

func TestSetFilterConfigRoundTrip(t *testing.T) {
	e := newSettingsEngine(t)

	want := DefaultFilterConfig()
	want.EnableNoiseGate = true
	want.LPF16Level = LPFAggressive
	want.VolumeGamma = 3.0

	e.SetFilterConfig(want)
	assert.Equal(t, want, e.GetFilterConfig())
}

func TestLPFLevelSettersSyncEnableFlags(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetLPF16Level(LPFOff)
	assert.False(t, e.GetFilterConfig().EnableBiquadLPF16)
	assert.Equal(t, LPFOff, e.GetLPF16Level())

	e.SetLPF16Level(LPFFirm)
	assert.True(t, e.GetFilterConfig().EnableBiquadLPF16)
	assert.Equal(t, LPFFirm, e.GetLPF16Level())

	e.SetLPF8Level(LPFOff)
	assert.False(t, e.GetFilterConfig().EnableLPF8)

	e.SetLPF8Level(LPFAggressive)
	assert.True(t, e.GetFilterConfig().EnableLPF8)
	assert.Equal(t, LPFAggressive, e.GetLPF8Level())
}

func TestLPFLevelSetterRejectsGarbage(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetLPF16Level(LPFLevel(42))
	assert.Equal(t, LPFSoft, e.GetLPF16Level())

	e.SetLPF8Level(LPFLevel(-3))
	assert.Equal(t, LPFVerySoft, e.GetLPF8Level())
}

func TestCustomAlphaFromCutoff(t *testing.T) {
	e := newSettingsEngine(t)

	alpha := CalcAlphaFromCutoff(2000, 22000)
	require.NotZero(t, alpha)

	e.SetLPF16CustomAlpha(alpha)
	e.SetLPF16Level(LPFCustom)

	cfg := e.GetFilterConfig()
	assert.Equal(t, alpha, cfg.LPF16CustomAlpha)
	assert.Equal(t, int32(alpha), lpf16Alpha(&cfg))
}

func TestMakeupGainClamped(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetMakeupGain16(1.5)
	assert.InDelta(t, 1.5, e.GetMakeupGain16(), 1e-4)

	e.SetMakeupGain16(50)
	assert.InDelta(t, 2.0, e.GetMakeupGain16(), 1e-4)

	e.SetMakeupGain8(0.0)
	assert.InDelta(t, 0.1, e.GetMakeupGain8(), 1e-4)
}

func TestAirEffectGainDbRoundTrip(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetAirEffectGainDb(2.0)
	assert.InDelta(t, 2.0, e.GetAirEffectGainDb(), 0.01)
	assert.False(t, e.GetAirEffectEnabled(), "setting the gain does not enable the effect")

	e.SetAirEffectEnabled(true)
	assert.True(t, e.GetAirEffectEnabled())
}

func TestAirEffectGainCapped(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetAirEffectGainQ16(10 * fixed.One)
	assert.Equal(t, uint32(airMaxGain), e.GetAirEffectGainQ16())

	// +3 dB computes past the cap and must land on it.
	e.SetAirEffectGainDb(3.0)
	assert.Equal(t, uint32(airMaxGain), e.GetAirEffectGainQ16())
}

func TestAirEffectPresets(t *testing.T) {
	e := newSettingsEngine(t)
	require.Equal(t, 4, AirEffectPresetCount())

	e.SetAirEffectPreset(2)
	assert.Equal(t, 2, e.GetAirEffectPresetIndex())
	assert.True(t, e.GetAirEffectEnabled())
	assert.InDelta(t, AirEffectPresetDb(2), e.GetAirEffectGainDb(), 0.01)

	e.SetAirEffectPreset(0)
	assert.Equal(t, 0, e.GetAirEffectPresetIndex())
	assert.False(t, e.GetAirEffectEnabled())

	e.SetAirEffectPreset(99)
	assert.Equal(t, 0, e.GetAirEffectPresetIndex())
	assert.False(t, e.GetAirEffectEnabled())
}

func TestCycleAirEffectPresetWraps(t *testing.T) {
	e := newSettingsEngine(t)

	seen := []int{}
	for i := 0; i < AirEffectPresetCount()+1; i++ {
		seen = append(seen, e.CycleAirEffectPreset())
	}
	assert.Equal(t, []int{1, 2, 3, 0, 1}, seen)
	assert.True(t, e.GetAirEffectEnabled(), "cycle landed back on an active preset")
}

func TestVolumeResponseSettings(t *testing.T) {
	e := newSettingsEngine(t)

	e.SetVolumeResponseNonlinear(true)
	assert.True(t, e.GetVolumeResponseNonlinear())

	e.SetVolumeResponseGamma(2.5)
	assert.Equal(t, 2.5, e.GetVolumeResponseGamma())

	e.SetVolumeResponseGamma(0.1)
	assert.Equal(t, float64(minVolumeGamma), e.GetVolumeResponseGamma())

	e.SetVolumeResponseGamma(10)
	assert.Equal(t, float64(maxVolumeGamma), e.GetVolumeResponseGamma())
}

func TestFadeTimeSetters(t *testing.T) {
	e := newSettingsEngine(t)

	// Non-constant rate so the uint32 conversions below truncate at
	// runtime, mirroring fadeSecondsToSamples.
	rate := float64(defaultSampleRate)

	e.SetFadeInTime(0.2)
	assert.Equal(t, 0.2, e.GetFadeInTime())
	assert.Equal(t, uint32(0.2*rate+0.5), e.fades.fadeInSamples)

	// Durations clamp at conversion time, not in the stored seconds.
	e.SetFadeOutTime(100)
	assert.Equal(t, 100.0, e.GetFadeOutTime())
	assert.Equal(t, uint32(maxFadeSecs*rate+0.5), e.fades.fadeOutSamples)

	e.SetPauseFadeTime(0)
	assert.Equal(t, uint32(minFadeSecs*rate+0.5), e.fades.pauseFadeSamples)

	e.SetResumeFadeTime(0.05)
	assert.Equal(t, uint32(0.05*rate+0.5), e.fades.resumeFadeSamples)
}

func TestVolumeScale(t *testing.T) {
	cfg := DefaultFilterConfig()

	assert.Equal(t, int32(fixed.One), volumeScale(MaxVolume, &cfg))
	assert.InDelta(t, fixed.One/2, volumeScale(MaxVolume/2, &cfg), 2)
	assert.Equal(t, int32(0), volumeScale(0, &cfg))

	// Gamma 2.0 lifts the midpoint: sqrt(0.5) ~ 0.707.
	cfg.VolumeNonlinear = true
	assert.InDelta(t, 0.707*fixed.One, volumeScale(MaxVolume/2, &cfg), 100)
	assert.Equal(t, int32(fixed.One), volumeScale(MaxVolume, &cfg))
}
