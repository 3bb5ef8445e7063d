// Command pmdwav renders a PMD song to a 16-bit stereo WAVE file: read
// input, build a Player, stream rendered frames straight into a
// wav.Writer.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-chiptune/piyopiyo"
	"github.com/go-chiptune/piyopiyo/internal/config"
	"github.com/go-chiptune/piyopiyo/wav"
)

const renderChunkFrames = 2048

func main() {
	log.SetFlags(0)
	log.SetPrefix("pmdwav: ")

	hz := flag.Int("hz", 44100, "output sample rate")
	wavOut := flag.String("wav", "", "output WAVE file path")
	reverbFlag := flag.String("reverb", "none", "reverb style: none, light, medium, silly")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Missing song filename")
	}
	if *wavOut == "" {
		log.Fatal("No -wav option provided")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	player, err := piyopiyo.NewPlayer(data, uint16(*hz))
	if err != nil {
		log.Fatal(err)
	}

	effect, err := config.ReverbFromFlag(*reverbFlag, *hz)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*wavOut)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w, err := wav.NewWriter(f, *hz)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if _, err := w.Finish(); err != nil {
			log.Fatal(err)
		}
	}()

	// One full loop: NEvents ticks' worth of frames. When RepeatRange.End
	// equals NEvents this covers the intro plus exactly one pass through
	// RepeatRange. The Player fires a tick and then waits samplesPerTick
	// frames, so each tick spans samplesPerTick+1 frames.
	samplesPerTick := int(*hz) * int(player.Song.EventWaitMs) / 1000
	framesRemaining := player.NEvents() * (samplesPerTick + 1)

	raw := make([]int16, renderChunkFrames*2)
	processed := make([]int16, renderChunkFrames*2)
	for framesRemaining > 0 {
		n := renderChunkFrames
		if n > framesRemaining {
			n = framesRemaining
		}
		buf := raw[:n*2]
		player.RenderNext(buf)

		effect.InputSamples(buf)
		got := effect.GetAudio(processed[:n*2])
		if err := w.WriteFrame(processed[:got]); err != nil {
			log.Fatal(err)
		}

		framesRemaining -= n
	}

	// Drain any input samples the effect has not yet returned.
	for {
		got := effect.GetAudio(processed)
		if got == 0 {
			break
		}
		if err := w.WriteFrame(processed[:got]); err != nil {
			log.Fatal(err)
		}
	}
}
