package audioengine

import "errors"

// Common errors returned by the engine.
var (
	// ErrInvalidConfig indicates a missing or invalid collaborator in
	// the engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrInvalidClip indicates a clip with a bad bit depth, channel
	// mode, sample rate, or empty sample data. PlaySample rejects the
	// clip without mutating any playback state.
	ErrInvalidClip = errors.New("invalid sample clip")

	// ErrTransportStart indicates the transport failed to start
	// streaming. The engine does not retry; the caller decides.
	ErrTransportStart = errors.New("transport failed to start")
)
