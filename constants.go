package audioengine

// Double buffer geometry. The output buffer holds interleaved stereo
// int16 samples and is split into two halves; the transport consumes one
// half while the engine fills the other.
const (
	// BufferSize is the length of the interleaved stereo output buffer
	// in int16 samples.
	BufferSize = 2048

	// chunkSize is the number of interleaved output samples in one half.
	chunkSize = BufferSize / 2

	// halfChunkFrames is the number of stereo frames in one half.
	halfChunkFrames = chunkSize / 2
)

// DC blocking filter coefficients (Q16).
const (
	dcFilterAlpha     = 64225 // 0.98 standard blocker
	softDCFilterAlpha = 65216 // 0.995 soft variant
)

// 16-bit biquad low-pass alpha presets (Q16). Lower alpha is heavier
// filtering, so values are ordered light -> heavy by level name.
const (
	lpf16VerySoft   = 40960 // 0.625 - minimal filtering / highest cutoff
	lpf16Soft       = 52429 // ~0.80 - gentle filtering
	lpf16Medium     = 57344 // 0.875 - balanced filtering
	lpf16Firm       = 60416 // ~0.92 - firm filtering
	lpf16Aggressive = 63488 // ~0.97 - strongest filtering / lowest cutoff
)

// 8-bit one-pole low-pass alpha presets (Q16). The range is narrower
// than the biquad's: low alpha on already-quantized 8-bit-origin data
// amplifies quantization noise.
const (
	lpf8VerySoft   = 61440 // 0.9375 - very gentle filtering
	lpf8Soft       = 57344 // 0.875 - gentle filtering
	lpf8Medium     = 49152 // 0.75 - balanced filtering
	lpf8Firm       = 45056 // 0.6875 - firm filtering
	lpf8Aggressive = 40960 // 0.625 - strong filtering
)

// biquadWarmupCycles is how many times the first sample of a stream runs
// through the 16-bit biquad before output is produced, converging the
// filter history to kill the startup pop.
const biquadWarmupCycles = 16

// Makeup gain defaults (Q16).
const (
	defaultMakeupGain8  = 70779 // ~1.08x after the one-pole LPF
	defaultMakeupGain16 = 65536 // unity after the biquad
	minMakeupGain       = 6554  // 0.1x
	maxMakeupGain       = 131072
)

// Air effect (high-shelf brightening) constants.
const (
	airCutoffAlpha  = 49152  // ~0.75 alpha, shelf near 5-6 kHz @ 22 kHz
	airDefaultGain  = 98304  // ~1.5 in Q16
	airMaxGain      = 131072 // cap runtime boost at ~2.0x to avoid harshness
)

// Fade timing defaults and bounds, in seconds. Sample counts are derived
// from the active sample rate at the start of each PlaySample and
// whenever a fade-time setter runs.
const (
	defaultFadeInSecs     = 0.150
	defaultFadeOutSecs    = 0.150
	defaultPauseFadeSecs  = 0.100
	defaultResumeFadeSecs = 0.100
	minFadeSecs           = 0.001
	maxFadeSecs           = 5.0
)

// Volume response constants.
const (
	// MaxVolume is the full-scale value of the volume source reading.
	MaxVolume = 65535

	defaultVolumeGamma = 2.0
	minVolumeGamma     = 1.0
	maxVolumeGamma     = 4.0
)

// defaultSampleRate is the rate assumed before the first PlaySample.
const defaultSampleRate = 22000

// silenceSample is the int16 midpoint written when padding output.
const silenceSample = 0
