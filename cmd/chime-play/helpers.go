package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/jennydigital/audioengine"
)

const (
	maxChannels = 2

	float32FullScale = 32767.0
)

// parseLPFLevel maps a CLI level name to an engine LPFLevel.
func parseLPFLevel(s string) (audioengine.LPFLevel, error) {
	switch strings.ToLower(s) {
	case "off":
		return audioengine.LPFOff, nil
	case "verysoft":
		return audioengine.LPFVerySoft, nil
	case "soft":
		return audioengine.LPFSoft, nil
	case "medium":
		return audioengine.LPFMedium, nil
	case "firm":
		return audioengine.LPFFirm, nil
	case "aggressive":
		return audioengine.LPFAggressive, nil
	default:
		return 0, fmt.Errorf("unknown LPF level %q", s)
	}
}

// loadClip decodes an audio file into an engine clip, dispatching on the
// file extension.
func loadClip(path string) (audioengine.Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".mp3":
		return loadMP3(path)
	case ".ogg", ".oga":
		return loadOgg(path)
	default:
		return audioengine.Clip{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func loadWAV(path string) (audioengine.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return audioengine.Clip{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return audioengine.Clip{}, fmt.Errorf("decoding WAV: %w", err)
	}
	return clipFromIntBuffer(buf)
}

// clipFromIntBuffer converts a decoded go-audio buffer into a clip.
// 8-bit WAV data is unsigned (center 128) and maps onto the engine's
// dithered 8-bit path; everything else plays as 16-bit.
func clipFromIntBuffer(buf *audio.IntBuffer) (audioengine.Clip, error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return audioengine.Clip{}, fmt.Errorf("empty audio buffer")
	}
	if buf.Format.NumChannels > maxChannels {
		return audioengine.Clip{}, fmt.Errorf("%d channels unsupported, want mono or stereo",
			buf.Format.NumChannels)
	}

	mode := audioengine.ModeMono
	if buf.Format.NumChannels == maxChannels {
		mode = audioengine.ModeStereo
	}

	if buf.SourceBitDepth == 8 {
		data := make([]uint8, len(buf.Data))
		for i, v := range buf.Data {
			data[i] = uint8(v)
		}
		return audioengine.Clip{
			Data8: data,
			Rate:  buf.Format.SampleRate,
			Depth: audioengine.Depth8,
			Mode:  mode,
		}, nil
	}

	shift := uint(0)
	if buf.SourceBitDepth > 16 {
		shift = uint(buf.SourceBitDepth - 16)
	}
	data := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = int16(v >> shift)
	}
	return audioengine.Clip{
		Data16: data,
		Rate:   buf.Format.SampleRate,
		Depth:  audioengine.Depth16,
		Mode:   mode,
	}, nil
}

func loadMP3(path string) (audioengine.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return audioengine.Clip{}, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return audioengine.Clip{}, fmt.Errorf("decoding MP3: %w", err)
	}

	// go-mp3 always emits interleaved stereo 16-bit little-endian.
	raw, err := io.ReadAll(d)
	if err != nil {
		return audioengine.Clip{}, fmt.Errorf("reading MP3 stream: %w", err)
	}

	n := len(raw) / 2
	data := make([]int16, n)
	for i := 0; i < n; i++ {
		data[i] = int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}
	return audioengine.Clip{
		Data16: data,
		Rate:   d.SampleRate(),
		Depth:  audioengine.Depth16,
		Mode:   audioengine.ModeStereo,
	}, nil
}

func loadOgg(path string) (audioengine.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return audioengine.Clip{}, err
	}
	defer f.Close()

	samples, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return audioengine.Clip{}, fmt.Errorf("decoding Ogg Vorbis: %w", err)
	}
	if format.Channels > maxChannels {
		return audioengine.Clip{}, fmt.Errorf("%d channels unsupported, want mono or stereo",
			format.Channels)
	}

	mode := audioengine.ModeMono
	if format.Channels == maxChannels {
		mode = audioengine.ModeStereo
	}

	data := make([]int16, len(samples))
	for i, v := range samples {
		data[i] = float32ToInt16(v)
	}
	return audioengine.Clip{
		Data16: data,
		Rate:   format.SampleRate,
		Depth:  audioengine.Depth16,
		Mode:   mode,
	}, nil
}

// float32ToInt16 converts a [-1, 1] float sample to int16 with
// saturation.
func float32ToInt16(v float32) int16 {
	scaled := float64(v) * float32FullScale
	if scaled > float32FullScale {
		return int16(float32FullScale)
	}
	if scaled < -float32FullScale-1 {
		return int16(-float32FullScale - 1)
	}
	return int16(scaled)
}
