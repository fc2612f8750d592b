// Package audioengine implements a real-time fixed-point playback engine
// for 8-bit and 16-bit PCM audio with a configurable DSP filter chain.
//
// The engine renders in-memory clips through a double-buffered transport:
// while the device consumes one half of a 2048-sample interleaved stereo
// buffer, the engine fills the other half, one 512-frame chunk at a time.
// Every chunk passes through the filter chain in a fixed order: a
// depth-specific low-pass filter (a biquad for 16-bit sources, a one-pole
// for 8-bit), a DC blocker, an optional high-shelf "air" brightener,
// quadratic fade ramps, an optional noise gate, and a cubic soft clipper.
// All arithmetic is integer Q16 fixed point with 64-bit intermediates
// where products would overflow 32 bits.
//
// # Basic usage
//
//	engine, err := audioengine.New(&audioengine.Config{
//		Transport:  transport,
//		ReadVolume: func() uint16 { return audioengine.MaxVolume },
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state, err := engine.PlaySample(audioengine.Clip{
//		Data16: samples,
//		Rate:   22000,
//		Depth:  audioengine.Depth16,
//		Mode:   audioengine.ModeMono,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine.WaitForEnd()
//
// # Pause, resume, and stop
//
// Pause ramps the output down over a short quadratic fade and holds the
// position; Resume fades back in from the same position. When a pause is
// requested mid-fade, the pause ramp starts at a level continuous with
// the live ramp, so there is never an amplitude step. Stop is
// asynchronous: it sets a flag that the next buffer-fill callback
// consumes, either starting the standard fade-out (while playing) or
// cutting straight to silence (while paused).
//
// # Concurrency
//
// The transport's fill callback is the hot path: it never blocks, takes
// no locks, and allocates nothing. The foreground API communicates with
// it through an atomic state word, an atomic stop flag, and an atomic
// pointer to the filter configuration, which is replaced wholesale so
// the processor always sees a consistent snapshot. Control methods are
// intended to be called from a single goroutine.
//
// # Filter configuration
//
// Filters are tunable at runtime, mid-playback, through SetFilterConfig
// or the individual setters (low-pass level and custom cutoff, makeup
// gain, air-effect gain in dB or via cycling presets, noise gate, soft
// clipper, volume response curve). Changes take effect at the next
// half-buffer, roughly 25 ms at the default 22 kHz rate.
package audioengine
