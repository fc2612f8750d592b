// Package ototransport adapts the ebitengine/oto audio library to the
// engine's Transport interface. oto is pull-based: the device pulls PCM
// bytes through an io.Reader, and the reader invokes the engine's fill
// callback each time it crosses a half-buffer boundary.
package ototransport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/jennydigital/audioengine"
)

// Errors returned by the transport.
var (
	// ErrNotInitialized indicates Start was called before Init.
	ErrNotInitialized = errors.New("transport not initialized")

	// ErrRateLocked indicates a sample rate change after the audio
	// context was created. oto allows one context per process with a
	// fixed rate, so all clips in a process must share one rate.
	ErrRateLocked = errors.New("sample rate locked by audio context")
)

// The process-wide oto context. oto forbids creating a second context,
// so every Transport in the process shares this one.
var (
	ctxMu      sync.Mutex
	sharedCtx  *oto.Context
	sharedRate int
)

// Transport streams the engine's double buffer through an oto player.
// The zero value is not usable; call New.
type Transport struct {
	mu      sync.Mutex
	ctx     *oto.Context
	rate    int
	player  *oto.Player
	stopped *atomic.Bool
}

// New returns an unstarted transport. Call Init before Start; the
// engine's PlaySample does both.
func New() *Transport {
	return &Transport{}
}

// Init creates (or reuses) the process-wide audio context at the given
// sample rate. A rate that differs from an already-created context's
// rate returns ErrRateLocked.
func (t *Transport) Init(sampleRate int) error {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if sharedCtx != nil {
		if sampleRate != sharedRate {
			return fmt.Errorf("%w: context runs at %d Hz, clip wants %d Hz",
				ErrRateLocked, sharedRate, sampleRate)
		}
		t.ctx = sharedCtx
		t.rate = sampleRate
		return nil
	}

	// Device-side buffering of about one half-buffer keeps latency in
	// line with the engine's own double buffering.
	halfDuration := time.Duration(audioengine.BufferSize/2) * time.Second /
		(2 * time.Duration(sampleRate))

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   halfDuration,
	})
	if err != nil {
		return fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	sharedCtx = ctx
	sharedRate = sampleRate
	t.ctx = ctx
	t.rate = sampleRate
	return nil
}

// Start begins streaming buf in a loop, invoking onHalfConsumed after
// each half is fully pulled by the device. A session already streaming
// on this transport is stopped first.
func (t *Transport) Start(buf []int16, onHalfConsumed func(audioengine.BufferHalf)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctx == nil {
		return ErrNotInitialized
	}
	t.stopLocked()

	stopped := &atomic.Bool{}
	r := &bufferReader{
		buf:     buf,
		onHalf:  onHalfConsumed,
		stopped: stopped,
	}

	p := t.ctx.NewPlayer(r)
	p.Play()

	t.player = p
	t.stopped = stopped
	return nil
}

// Stop halts the current session. Safe to call from inside the fill
// callback: it only flips the session's stop flag and closes the player
// from a separate goroutine, so it never blocks on the reader it may be
// called from.
func (t *Transport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	return nil
}

func (t *Transport) stopLocked() {
	if t.player == nil {
		return
	}
	t.stopped.Store(true)

	p := t.player
	t.player = nil
	t.stopped = nil
	go p.Close()
}

// bufferReader serves the engine's double buffer as an endless PCM byte
// stream. Reads never cross a half-buffer boundary, so the fill
// callback fires exactly once per consumed half, after its last byte
// has been handed to the device.
type bufferReader struct {
	buf     []int16
	onHalf  func(audioengine.BufferHalf)
	stopped *atomic.Bool

	// pos is the read cursor in int16 samples, wrapping over buf.
	pos int
}

func (r *bufferReader) Read(p []byte) (int, error) {
	if r.stopped.Load() {
		return 0, io.EOF
	}

	half := len(r.buf) / 2
	boundary := half
	consumed := audioengine.FirstHalf
	if r.pos >= half {
		boundary = len(r.buf)
		consumed = audioengine.SecondHalf
	}

	n := len(p) / 2
	if avail := boundary - r.pos; n > avail {
		n = avail
	}
	if n == 0 {
		return 0, nil
	}

	for i := 0; i < n; i++ {
		v := uint16(r.buf[r.pos+i])
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	r.pos += n

	if r.pos == boundary {
		if r.pos == len(r.buf) {
			r.pos = 0
		}
		r.onHalf(consumed)
		if r.stopped.Load() {
			return 2 * n, io.EOF
		}
	}
	return 2 * n, nil
}
