// Command analyze-filter prints the frequency response of the engine's
// fixed-point filters. It drives each filter with a full-scale impulse,
// captures the impulse response, and reports FFT magnitudes at a set of
// audio-band frequencies so coefficient changes can be checked against
// the intended cutoffs.
package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/jennydigital/audioengine/internal/dsp"
	"github.com/jennydigital/audioengine/internal/fixed"
)

const (
	// fftSize bounds frequency resolution: 22000/4096 ~ 5.4 Hz per bin.
	fftSize = 4096

	// impulseAmplitude is well below full scale so filter overshoot
	// cannot saturate and distort the measured response.
	impulseAmplitude = 16384

	sampleRate = 22000.0
)

// probeFrequencies are the audio-band points reported per filter, in Hz.
var probeFrequencies = []float64{100, 250, 500, 1000, 2000, 4000, 6000, 8000, 10000}

// biquadAlphas mirrors the engine's 16-bit level presets.
var biquadAlphas = []struct {
	name  string
	alpha int32
}{
	{"verysoft", 40960},
	{"soft", 52429},
	{"medium", 57344},
	{"firm", 60416},
	{"aggressive", 63488},
}

// onePoleAlphas mirrors the engine's 8-bit level presets.
var onePoleAlphas = []struct {
	name  string
	alpha int32
}{
	{"verysoft", 61440},
	{"soft", 57344},
	{"medium", 49152},
	{"firm", 45056},
	{"aggressive", 40960},
}

func main() {
	fmt.Printf("=== Fixed-point filter frequency response (fs = %.0f Hz) ===\n", sampleRate)

	fmt.Println("\n16-bit biquad low-pass:")
	for _, p := range biquadAlphas {
		var c dsp.ChannelState
		response := impulseResponse(func(x int16) int16 {
			return c.BiquadLPF(x, p.alpha, fixed.One)
		})
		printResponse(p.name, p.alpha, response)
	}

	fmt.Println("\n8-bit one-pole low-pass (unity makeup gain):")
	for _, p := range onePoleAlphas {
		var c dsp.ChannelState
		response := impulseResponse(func(x int16) int16 {
			return c.OnePoleLPF(x, p.alpha, fixed.One)
		})
		printResponse(p.name, p.alpha, response)
	}

	fmt.Println("\nAir high-shelf (alpha 49152):")
	for _, gainDb := range []float64{1, 2, 3} {
		gain := int32(fixed.ShelfGainQ16(gainDb, 49152))
		var c dsp.ChannelState
		response := impulseResponse(func(x int16) int16 {
			return c.AirShelf(x, 49152, gain)
		})
		printResponse(fmt.Sprintf("+%.0f dB", gainDb), gain, response)
	}

	fmt.Println("\nDC blockers:")
	for _, p := range []struct {
		name  string
		alpha int32
	}{{"standard", 64225}, {"soft", 65216}} {
		var c dsp.ChannelState
		response := impulseResponse(func(x int16) int16 {
			return c.DCBlock(x, p.alpha)
		})
		printResponse(p.name, p.alpha, response)
	}
}

// impulseResponse feeds a single impulse through the filter and returns
// fftSize output samples normalized to the impulse amplitude.
func impulseResponse(filter func(int16) int16) []float64 {
	out := make([]float64, fftSize)
	out[0] = float64(filter(impulseAmplitude)) / impulseAmplitude
	for i := 1; i < fftSize; i++ {
		out[i] = float64(filter(0)) / impulseAmplitude
	}
	return out
}

// printResponse reports the magnitude in dB at each probe frequency.
func printResponse(name string, coeff int32, response []float64) {
	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, response)

	fmt.Printf("  %-10s (coeff %6d):", name, coeff)
	for _, freq := range probeFrequencies {
		bin := int(freq/sampleRate*fftSize + 0.5)
		if bin >= len(coeffs) {
			continue
		}
		mag := cmplx.Abs(coeffs[bin])
		db := 20 * math.Log10(math.Max(mag, 1e-12))
		fmt.Printf(" %6.0fHz %+6.1fdB", freq, db)
	}
	fmt.Println()
}
