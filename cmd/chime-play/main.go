// Command chime-play plays a WAV, MP3, or Ogg Vorbis file through the
// fixed-point playback engine.
//
// Usage:
//
//	chime-play chime.wav
//	chime-play -volume 60 -lpf medium chime.wav
//	chime-play -air 2 -gate chime.mp3
//	chime-play -pause 1.5 chime.ogg    # pause/resume demo after 1.5s
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jennydigital/audioengine"
	"github.com/jennydigital/audioengine/ototransport"
)

const (
	percentScale  = 100
	minRequired   = 1
	defaultVolume = 80.0
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	volumePct := flag.Float64("volume", defaultVolume, "Playback volume in percent (0-100)")
	gamma := flag.Float64("gamma", 0, "Perceptual volume gamma (0 = linear response)")
	lpfLevel := flag.String("lpf", "", "Low-pass level: off, verysoft, soft, medium, firm, aggressive")
	airDb := flag.Float64("air", 0, "Air effect boost in dB (0 = disabled)")
	gate := flag.Bool("gate", false, "Enable the noise gate")
	noClip := flag.Bool("noclip", false, "Disable the soft clipper")
	pauseAfter := flag.Float64("pause", 0, "Pause/resume demo: pause after N seconds for 1s")
	flag.Parse()

	if flag.NArg() < minRequired {
		flag.Usage()
		return fmt.Errorf("missing input file")
	}
	path := flag.Arg(0)

	clip, err := loadClip(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	fmt.Printf("%s: %d Hz, %d-bit %s, %d samples\n",
		path, clip.Rate, clip.Depth, clip.Mode, clipLen(clip))

	volume := volumeFromPercent(*volumePct)

	engine, err := audioengine.New(&audioengine.Config{
		Transport:  ototransport.New(),
		ReadVolume: func() uint16 { return volume },
		OnPlaybackEnd: func() {
			fmt.Println("playback finished")
		},
	})
	if err != nil {
		return err
	}

	if err := applyFilterFlags(engine, clip.Depth, *lpfLevel, *airDb, *gamma, *gate, *noClip); err != nil {
		return err
	}

	state, err := engine.PlaySample(clip)
	if err != nil {
		return err
	}
	fmt.Printf("state: %s\n", state)

	if *pauseAfter > 0 {
		time.Sleep(time.Duration(*pauseAfter * float64(time.Second)))
		fmt.Printf("pause: %s\n", engine.Pause())
		time.Sleep(time.Second)
		fmt.Printf("resume: %s\n", engine.Resume())
	}

	final := engine.WaitForEnd()
	engine.ShutDown()

	if final == audioengine.StatePlayingFailed {
		return fmt.Errorf("playback failed")
	}
	return nil
}

// volumeFromPercent maps a 0-100 percentage onto the engine's volume
// scale.
func volumeFromPercent(pct float64) uint16 {
	if pct < 0 {
		pct = 0
	}
	if pct > percentScale {
		pct = percentScale
	}
	return uint16(pct * audioengine.MaxVolume / percentScale)
}

// applyFilterFlags translates CLI flags into engine settings. The LPF
// flag targets whichever path matches the clip's bit depth.
func applyFilterFlags(e *audioengine.Engine, depth audioengine.BitDepth,
	lpf string, airDb, gamma float64, gate, noClip bool) error {

	if lpf != "" {
		level, err := parseLPFLevel(lpf)
		if err != nil {
			return err
		}
		if depth == audioengine.Depth8 {
			e.SetLPF8Level(level)
		} else {
			e.SetLPF16Level(level)
		}
	}

	if airDb > 0 {
		e.SetAirEffectGainDb(airDb)
		e.SetAirEffectEnabled(true)
	}
	if gamma > 0 {
		e.SetVolumeResponseGamma(gamma)
		e.SetVolumeResponseNonlinear(true)
	}
	e.SetNoiseGateEnabled(gate)
	e.SetSoftClippingEnabled(!noClip)
	return nil
}

func clipLen(c audioengine.Clip) int {
	if c.Depth == audioengine.Depth8 {
		return len(c.Data8)
	}
	return len(c.Data16)
}
