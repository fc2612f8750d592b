package audioengine

// State is the playback state of the engine. There is a single
// authoritative state field; every transition happens either in the
// foreground control API or in the buffer-fill callback, never both for
// the same transition.
type State int32

const (
	// StateIdle means no playback is in progress.
	StateIdle State = iota

	// StateError is returned when a control call is rejected.
	StateError

	// StatePlaying means samples are streaming to the transport.
	StatePlaying

	// StatePausing means a pause fade-out is in progress.
	StatePausing

	// StatePaused means playback is halted and can be resumed.
	StatePaused

	// StatePlayingFailed means the transport failed to start.
	StatePlayingFailed
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateError:
		return "Error"
	case StatePlaying:
		return "Playing"
	case StatePausing:
		return "Pausing"
	case StatePaused:
		return "Paused"
	case StatePlayingFailed:
		return "PlayingFailed"
	default:
		return "Unknown"
	}
}

// ChannelMode selects mono or stereo source layout. Mono sources are
// duplicated to both output channels after filtering.
type ChannelMode int

const (
	// ModeStereo plays interleaved left/right source samples.
	ModeStereo ChannelMode = iota

	// ModeMono duplicates one source channel to both outputs.
	ModeMono
)

// String returns the mode name for diagnostics.
func (m ChannelMode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeMono:
		return "mono"
	default:
		return "unknown"
	}
}

// BitDepth is the source sample depth in bits.
type BitDepth int

const (
	// Depth8 plays unsigned 8-bit samples (center 128) with TPDF dither.
	Depth8 BitDepth = 8

	// Depth16 plays signed 16-bit samples.
	Depth16 BitDepth = 16
)

// LPFLevel selects the aggressiveness of a low-pass filter. Levels map
// to preset Q16 alpha coefficients; LPFCustom uses the per-path custom
// alpha from the filter configuration.
type LPFLevel int

const (
	// LPFOff disables the filter for its path.
	LPFOff LPFLevel = iota

	// LPFVerySoft is minimal filtering with the highest cutoff.
	LPFVerySoft

	// LPFSoft is gentle filtering.
	LPFSoft

	// LPFMedium is balanced filtering.
	LPFMedium

	// LPFFirm is firm filtering.
	LPFFirm

	// LPFAggressive is the strongest filtering with the lowest cutoff.
	LPFAggressive

	// LPFCustom uses the configured custom Q16 alpha.
	LPFCustom
)

// BufferHalf identifies one half of the double buffer.
type BufferHalf int

const (
	// FirstHalf is the front half of the output buffer.
	FirstHalf BufferHalf = iota

	// SecondHalf is the back half of the output buffer.
	SecondHalf
)

// Clip describes one in-memory PCM sample stream. Exactly one of Data16
// or Data8 must be populated, matching Depth. The engine reads the slice
// but never writes to it; the caller must keep it alive and unmodified
// until playback returns to Idle.
type Clip struct {
	// Data16 holds signed 16-bit samples when Depth is Depth16.
	Data16 []int16

	// Data8 holds unsigned 8-bit samples when Depth is Depth8.
	Data8 []uint8

	// Rate is the playback sample rate in Hz.
	Rate int

	// Depth is the sample depth, Depth8 or Depth16.
	Depth BitDepth

	// Mode is the channel layout of the data.
	Mode ChannelMode
}

// totalSamples reports the number of source samples in the clip.
func (c *Clip) totalSamples() int {
	if c.Depth == Depth8 {
		return len(c.Data8)
	}
	return len(c.Data16)
}
