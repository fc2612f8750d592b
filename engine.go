package audioengine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jennydigital/audioengine/internal/dsp"
)

// waitPollInterval is the poll period used by WaitForEnd.
const waitPollInterval = time.Millisecond

// Transport streams the engine's double buffer to an audio device.
// Implementations invoke onHalfConsumed from their streaming context each
// time one half of the buffer has been fully consumed; the engine answers
// by refilling that half and returning control immediately.
type Transport interface {
	// Init prepares the device for the given sample rate. PlaySample
	// calls it before starting a session at a new rate.
	Init(sampleRate int) error

	// Start begins streaming buf in a loop. buf holds interleaved
	// stereo int16 samples and is split into two halves; the callback
	// receives the half that was just consumed.
	Start(buf []int16, onHalfConsumed func(BufferHalf)) error

	// Stop halts streaming. It must be safe to call from inside the
	// onHalfConsumed callback and must not block waiting for it.
	Stop() error
}

// Config holds the collaborators the engine is constructed with.
// Injecting them here, rather than through mutable function pointers,
// guarantees they are present before playback can start.
type Config struct {
	// Transport streams the double buffer to the audio device. Required.
	Transport Transport

	// ReadVolume returns the current volume reading in [1, MaxVolume].
	// Required. Called once per half-buffer from the fill callback; it
	// must not block and is not assumed monotonic or noise-free.
	ReadVolume func() uint16

	// AmpSwitch, if set, switches the amplifier power rail at play
	// start and full stop.
	AmpSwitch func(on bool)

	// OnPlaybackEnd, if set, is invoked exactly once per playback
	// session when the engine returns to Idle. Called from the fill
	// callback context; it must not block.
	OnPlaybackEnd func()
}

// Validate checks that the required collaborators are present.
func (c *Config) Validate() error {
	if c.Transport == nil {
		return fmt.Errorf("%w: transport is required", ErrInvalidConfig)
	}
	if c.ReadVolume == nil {
		return fmt.Errorf("%w: volume source is required", ErrInvalidConfig)
	}
	return nil
}

// Engine is a fixed-point playback engine for 8/16-bit PCM clips. It
// feeds a double-buffered transport through a configurable DSP filter
// chain and supports pause/resume with click-free fades.
//
// Two contexts touch an Engine: the foreground control API and the
// transport's buffer-fill callback. The callback owns the cursor, the
// fade counters, and the Playing->Idle/Paused transitions; the
// foreground communicates into it through single-word flags and through
// fields it writes only while no session is active. The callback never
// blocks, allocates, or takes a lock.
type Engine struct {
	transport     Transport
	readVolume    func() uint16
	ampSwitch     func(on bool)
	onPlaybackEnd func()

	cfg           atomic.Pointer[FilterConfig]
	state         atomic.Int32
	stopRequested atomic.Bool
	endNotified   atomic.Bool

	// buf is the double buffer handed to the transport: interleaved
	// stereo int16, consumed one half at a time.
	buf [BufferSize]int16

	// Cursor fields. Written by PlaySample before the transport starts,
	// then owned exclusively by the fill callback until Idle.
	src16   []int16
	src8    []uint8
	depth   BitDepth
	mode    ChannelMode
	pos     int
	end     int
	advance int

	sampleRate int
	trReady    bool

	chans  [2]dsp.ChannelState
	dither dsp.Ditherer

	fades     fadeState
	pausedPos int

	airPresetIdx int
}

// fadeState tracks the four configured fade windows and the live fade
// counters. Durations are kept in seconds and as sample counts; counts
// are recomputed whenever the sample rate changes or a fade-time setter
// runs. The counters are in source-sample units and belong to the fill
// callback while a session is active.
type fadeState struct {
	fadeInSecs     float64
	fadeOutSecs    float64
	pauseFadeSecs  float64
	resumeFadeSecs float64

	fadeInSamples     uint32
	fadeOutSamples    uint32
	pauseFadeSamples  uint32
	resumeFadeSamples uint32

	inRemaining  uint32
	inTotal      uint32
	outRemaining uint32
	outTotal     uint32
	outComplete  bool
}

// New creates an engine with the given collaborators and the default
// filter configuration.
func New(config *Config) (*Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		transport:     config.Transport,
		readVolume:    config.ReadVolume,
		ampSwitch:     config.AmpSwitch,
		onPlaybackEnd: config.OnPlaybackEnd,
		sampleRate:    defaultSampleRate,
		dither:        dsp.NewDitherer(),
		fades: fadeState{
			fadeInSecs:     defaultFadeInSecs,
			fadeOutSecs:    defaultFadeOutSecs,
			pauseFadeSecs:  defaultPauseFadeSecs,
			resumeFadeSecs: defaultResumeFadeSecs,
		},
	}

	cfg := DefaultFilterConfig()
	e.cfg.Store(&cfg)
	e.recomputeFadeSamples()
	e.state.Store(int32(StateIdle))

	return e, nil
}

// validate rejects clips the engine cannot play.
func (c *Clip) validate() error {
	if c.Depth != Depth8 && c.Depth != Depth16 {
		return fmt.Errorf("%w: bit depth must be 8 or 16, got %d", ErrInvalidClip, c.Depth)
	}
	if c.Mode != ModeMono && c.Mode != ModeStereo {
		return fmt.Errorf("%w: unknown channel mode %d", ErrInvalidClip, c.Mode)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidClip, c.Rate)
	}
	if c.totalSamples() == 0 {
		return fmt.Errorf("%w: empty sample data", ErrInvalidClip)
	}
	return nil
}

// PlaySample starts playback of a clip. It validates the clip, resets
// all per-channel filter state, recomputes the fade windows for the
// clip's sample rate, warms up the 16-bit biquad, pre-fills both halves
// of the output buffer so the fade-in is audible from sample zero, and
// hands the buffer to the transport.
//
// On validation failure it returns StateError without mutating any
// playback state. If the transport fails to start, the state becomes
// StatePlayingFailed and the engine does not retry.
func (e *Engine) PlaySample(clip Clip) (State, error) {
	if err := clip.validate(); err != nil {
		return StateError, err
	}

	if !e.trReady || clip.Rate != e.sampleRate {
		if err := e.transport.Init(clip.Rate); err != nil {
			e.state.Store(int32(StatePlayingFailed))
			return StatePlayingFailed, fmt.Errorf("%w: %v", ErrTransportStart, err)
		}
		e.trReady = true
	}
	e.sampleRate = clip.Rate
	e.recomputeFadeSamples()

	// Make sure no previous session is still streaming.
	_ = e.transport.Stop()

	for i := range e.chans {
		e.chans[i].Reset()
	}
	e.dither.Reset()

	e.depth = clip.Depth
	e.mode = clip.Mode
	if clip.Depth == Depth8 {
		e.src8 = clip.Data8
		e.src16 = nil
	} else {
		e.src16 = clip.Data16
		e.src8 = nil
	}
	e.pos = 0
	e.end = clip.totalSamples()
	e.advance = halfChunkFrames
	if clip.Mode == ModeStereo {
		e.advance = chunkSize
	}
	e.pausedPos = 0

	cfg := e.cfg.Load()
	if clip.Depth == Depth16 && cfg.EnableBiquadLPF16 {
		alpha := lpf16Alpha(cfg)
		first := e.src16[0]
		for i := range e.chans {
			e.chans[i].WarmupBiquad(first, alpha, biquadWarmupCycles)
		}
	}

	f := &e.fades
	f.inTotal = f.fadeInSamples
	f.inRemaining = f.fadeInSamples
	f.outTotal = f.fadeOutSamples
	f.outRemaining = uint32(e.end)
	f.outComplete = false

	e.stopRequested.Store(false)
	e.endNotified.Store(false)

	if e.ampSwitch != nil {
		e.ampSwitch(true)
	}

	// Pre-fill both halves before the transport starts so the first
	// audible sample already carries the fade-in.
	e.fillChunk(FirstHalf)
	e.pos += e.advance
	e.fillChunk(SecondHalf)
	e.pos += e.advance

	e.state.Store(int32(StatePlaying))
	if err := e.transport.Start(e.buf[:], e.onHalfConsumed); err != nil {
		e.state.Store(int32(StatePlayingFailed))
		if e.ampSwitch != nil {
			e.ampSwitch(false)
		}
		return StatePlayingFailed, fmt.Errorf("%w: %v", ErrTransportStart, err)
	}

	return StatePlaying, nil
}

// WaitForEnd blocks until playback leaves the Playing and Pausing
// states, then returns the final state. Suitable for simple blocking
// playback; poll GetState for non-blocking use.
func (e *Engine) WaitForEnd() State {
	for {
		st := e.GetState()
		if st != StatePlaying && st != StatePausing {
			return st
		}
		time.Sleep(waitPollInterval)
	}
}

// Pause initiates a click-free pause. The fade-out starts at a level
// continuous with whatever ramp is currently live: mid fade-in the pause
// window starts scaled to the fade-in's progress, mid end-of-stream
// fade-out it starts scaled to the remaining fraction, otherwise it
// starts at full level. The fill callback ramps down and flips to
// Paused once the window is spent.
//
// Returns StatePaused when the pause was accepted, or the current state
// unchanged when not playing.
func (e *Engine) Pause() State {
	if e.GetState() != StatePlaying {
		return e.GetState()
	}

	f := &e.fades
	pauseTotal := f.pauseFadeSamples
	start := pauseTotal
	switch {
	case f.inRemaining > 0 && f.inTotal > 0:
		// Mid fade-in: the quadratic levels match when the pause
		// counter starts at progress scaled into the pause window.
		progress := f.inTotal - f.inRemaining
		start = uint32(uint64(progress) * uint64(pauseTotal) / uint64(f.inTotal))
	case f.outRemaining <= f.outTotal && f.outTotal > 0:
		// Mid end-of-stream fade-out: scale from the remaining fraction.
		start = uint32(uint64(f.outRemaining) * uint64(pauseTotal) / uint64(f.outTotal))
	}

	// Flip to Pausing before touching the counters; the callback stops
	// re-deriving the end-of-stream window as soon as it sees the state.
	e.state.Store(int32(StatePausing))
	f.outRemaining = start
	f.outTotal = pauseTotal
	f.outComplete = start == 0
	f.inRemaining = 0
	e.pausedPos = e.pos

	return StatePaused
}

// Resume continues playback from the saved pause position with the
// configured resume fade-in. Returns StatePlaying on success, or the
// current state unchanged when not paused.
func (e *Engine) Resume() State {
	if e.GetState() != StatePaused {
		return e.GetState()
	}

	e.pos = e.pausedPos

	f := &e.fades
	f.outRemaining = 0
	f.outTotal = f.fadeOutSamples
	f.outComplete = false
	f.inTotal = f.resumeFadeSamples
	f.inRemaining = f.resumeFadeSamples

	e.state.Store(int32(StatePlaying))
	return StatePlaying
}

// Stop requests an asynchronous stop. The request is a single flag
// consumed by the next fill callback: while playing it shortens the
// stream so the standard fade-out window starts immediately; while
// paused it silences the buffer and goes straight to Idle. Poll
// GetState for completion.
func (e *Engine) Stop() {
	switch e.GetState() {
	case StatePlaying, StatePausing, StatePaused:
		e.stopRequested.Store(true)
	default:
	}
}

// ShutDown drains roughly one buffer of audio, stops the transport, and
// powers down the amplifier. Call when tearing down the application.
func (e *Engine) ShutDown() {
	if e.sampleRate > 0 {
		drain := time.Duration(BufferSize) * time.Second / time.Duration(e.sampleRate)
		time.Sleep(drain)
	}
	_ = e.transport.Stop()
	if e.ampSwitch != nil {
		e.ampSwitch(false)
	}
	e.state.Store(int32(StateIdle))
}

// GetState returns the current playback state.
func (e *Engine) GetState() State {
	return State(e.state.Load())
}

// GetSampleRate returns the sample rate of the current (or most recent)
// playback session in Hz.
func (e *Engine) GetSampleRate() int {
	return e.sampleRate
}

// fadeSecondsToSamples converts a fade duration to a sample count at the
// given rate, clamping the duration to the supported range. The result
// is never zero.
func fadeSecondsToSamples(seconds float64, rate int) uint32 {
	if seconds < minFadeSecs {
		seconds = minFadeSecs
	}
	if seconds > maxFadeSecs {
		seconds = maxFadeSecs
	}
	n := uint32(seconds*float64(rate) + 0.5)
	if n == 0 {
		n = 1
	}
	return n
}

// recomputeFadeSamples refreshes all four fade sample counts from the
// active sample rate.
func (e *Engine) recomputeFadeSamples() {
	f := &e.fades
	f.fadeInSamples = fadeSecondsToSamples(f.fadeInSecs, e.sampleRate)
	f.fadeOutSamples = fadeSecondsToSamples(f.fadeOutSecs, e.sampleRate)
	f.pauseFadeSamples = fadeSecondsToSamples(f.pauseFadeSecs, e.sampleRate)
	f.resumeFadeSamples = fadeSecondsToSamples(f.resumeFadeSecs, e.sampleRate)
}
