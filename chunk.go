package audioengine

import (
	"math"

	"github.com/jennydigital/audioengine/internal/dsp"
	"github.com/jennydigital/audioengine/internal/fixed"
)

// fillParams is the per-chunk snapshot of everything the sample loop
// needs. Resolving the config pointer, alpha presets, and volume scale
// once per half keeps the inner loop free of atomics and float math.
type fillParams struct {
	cfg      *FilterConfig
	alpha16  int32
	alpha8   int32
	gain16   int32
	gain8    int32
	volScale int32
}

// onHalfConsumed is the transport callback: the given half has been
// consumed and must be refilled. All session-ending transitions happen
// here. The foreground talks to this function only through the state
// word and the stop flag.
func (e *Engine) onHalfConsumed(half BufferHalf) {
	switch e.GetState() {
	case StatePlaying:
		if e.stopRequested.CompareAndSwap(true, false) {
			e.beginStopFade()
		}
	case StatePausing:
		if e.fades.outComplete {
			e.silenceBuffer()
			e.state.Store(int32(StatePaused))
			return
		}
	case StatePaused:
		if e.stopRequested.CompareAndSwap(true, false) {
			e.finishStop()
		}
		return
	default:
		return
	}

	if e.pos >= e.end {
		e.finishPlayback(half)
		return
	}

	e.fillChunk(half)
	e.pos += e.advance
}

// beginStopFade shortens the stream so the standard end-of-stream
// fade-out window starts at the current cursor position. The next
// fillChunk derives the fade counters from the new end.
func (e *Engine) beginStopFade() {
	if newEnd := e.pos + int(e.fades.fadeOutSamples); newEnd < e.end {
		e.end = newEnd
	}
}

// fillChunk renders one half of the output buffer from the source
// cursor through the filter chain. It does not advance e.pos; the
// caller does, in source-sample units.
func (e *Engine) fillChunk(half BufferHalf) {
	cfg := e.cfg.Load()

	vol := e.readVolume()
	if vol == 0 {
		vol = 1
	}

	p := fillParams{
		cfg:      cfg,
		alpha16:  lpf16Alpha(cfg),
		alpha8:   lpf8Alpha(cfg),
		gain16:   int32(cfg.MakeupGain16),
		gain8:    int32(cfg.MakeupGain8),
		volScale: volumeScale(vol, cfg),
	}

	// Re-derive the end-of-stream fade-out window from the live cursor
	// so it survives pause/resume and picks up a shortened end. During
	// Pausing/Paused the explicit pause window owns the counters.
	if st := e.GetState(); st != StatePausing && st != StatePaused {
		f := &e.fades
		f.outTotal = f.fadeOutSamples
		rem := e.end - e.pos
		if rem < 0 {
			rem = 0
		}
		f.outRemaining = uint32(rem)
	}

	out := e.buf[:chunkSize]
	if half == SecondHalf {
		out = e.buf[chunkSize:]
	}

	perFrame := uint32(1)
	if e.mode == ModeStereo {
		perFrame = 2
	}

	pos := e.pos
	for i := 0; i < halfChunkFrames; i++ {
		left := e.sourceSample(pos, &p, 0)
		pos++
		var right int16
		if e.mode == ModeMono {
			right = left
		} else {
			right = e.sourceSample(pos, &p, 1)
			pos++
		}
		out[2*i] = left
		out[2*i+1] = right
		e.updateFadeCounters(perFrame)
	}
}

// sourceSample reads, scales, and filters one source sample for the
// given channel, padding with silence past the end of the stream.
func (e *Engine) sourceSample(pos int, p *fillParams, ch int) int16 {
	if pos >= e.end {
		return silenceSample
	}
	var s int16
	if e.depth == Depth8 {
		s = e.dither.Expand8(e.src8[pos])
	} else {
		s = e.src16[pos]
	}
	s = fixed.Clamp16(fixed.Mul(int32(s), p.volScale))
	return e.processSample(s, p, ch)
}

// processSample runs one sample through the filter chain in fixed
// order: depth-specific LPF, DC blocker, air shelf, fades, noise gate,
// soft clipper.
func (e *Engine) processSample(s int16, p *fillParams, ch int) int16 {
	c := &e.chans[ch]
	cfg := p.cfg

	if e.depth == Depth16 {
		if cfg.EnableBiquadLPF16 {
			s = c.BiquadLPF(s, p.alpha16, p.gain16)
		}
	} else if cfg.EnableLPF8 {
		s = c.OnePoleLPF(s, p.alpha8, p.gain8)
	}

	if cfg.EnableSoftDCFilter {
		s = c.DCBlock(s, softDCFilterAlpha)
	} else {
		s = c.DCBlock(s, dcFilterAlpha)
	}

	if cfg.EnableAirEffect {
		s = c.AirShelf(s, airCutoffAlpha, int32(cfg.AirGain))
	}

	s = dsp.FadeIn(s, e.fades.inRemaining, e.fades.inTotal)
	s = dsp.FadeOut(s, e.fades.outRemaining, e.fades.outTotal)

	if cfg.EnableNoiseGate {
		s = dsp.NoiseGate(s)
	}
	if cfg.EnableSoftClipping {
		s = dsp.SoftClip(s)
	}
	return s
}

// updateFadeCounters advances the fade counters by n source samples.
// Counters saturate at zero; reaching zero on the out counter marks the
// fade-out (or pause ramp) as finished.
func (e *Engine) updateFadeCounters(n uint32) {
	f := &e.fades
	if f.inRemaining > 0 {
		if f.inRemaining > n {
			f.inRemaining -= n
		} else {
			f.inRemaining = 0
		}
	}
	if f.outRemaining > 0 {
		if f.outRemaining > n {
			f.outRemaining -= n
		} else {
			f.outRemaining = 0
			f.outComplete = true
		}
	}
}

// volumeScale converts a volume source reading into a Q16 scale factor,
// optionally through the perceptual gamma curve. Computed once per
// half-buffer, never per sample.
func volumeScale(vol uint16, cfg *FilterConfig) int32 {
	if cfg.VolumeNonlinear {
		curved := math.Pow(float64(vol)/MaxVolume, 1/cfg.VolumeGamma)
		return int32(curved*fixed.One + 0.5)
	}
	return int32(int64(vol) * fixed.One / MaxVolume)
}

// finishPlayback handles the natural end of the stream: pad the
// consumed half with silence, stop the transport, power down, and fire
// the completion notification exactly once.
func (e *Engine) finishPlayback(half BufferHalf) {
	out := e.buf[:chunkSize]
	if half == SecondHalf {
		out = e.buf[chunkSize:]
	}
	for i := range out {
		out[i] = silenceSample
	}

	e.state.Store(int32(StateIdle))
	_ = e.transport.Stop()
	if e.ampSwitch != nil {
		e.ampSwitch(false)
	}
	e.resetPlaybackFields()
	e.notifyEnd()
}

// finishStop ends a paused session immediately: the buffer is already
// at the pause-ramp floor, so no fade is needed.
func (e *Engine) finishStop() {
	e.silenceBuffer()
	e.state.Store(int32(StateIdle))
	_ = e.transport.Stop()
	if e.ampSwitch != nil {
		e.ampSwitch(false)
	}
	e.resetPlaybackFields()
	e.notifyEnd()
}

func (e *Engine) silenceBuffer() {
	for i := range e.buf {
		e.buf[i] = silenceSample
	}
}

// resetPlaybackFields drops the source references and live counters so
// a finished session holds nothing alive.
func (e *Engine) resetPlaybackFields() {
	e.pos = 0
	e.end = 0
	e.src16 = nil
	e.src8 = nil
	e.pausedPos = 0

	f := &e.fades
	f.inRemaining = 0
	f.outRemaining = 0
	f.outComplete = false
}

func (e *Engine) notifyEnd() {
	if e.endNotified.CompareAndSwap(false, true) && e.onPlaybackEnd != nil {
		e.onPlaybackEnd()
	}
}
