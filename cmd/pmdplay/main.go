// Command pmdplay plays a PMD song live through the default audio device
// via portaudio.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-chiptune/piyopiyo"
	"github.com/go-chiptune/piyopiyo/internal/config"
)

var (
	flagHz     = flag.Int("hz", 44100, "output hz")
	flagStart  = flag.Int("start", 0, "starting event cursor, clamped to song length")
	flagReverb = flag.String("reverb", "light", "reverb style: none, light, medium, silly")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pmdplay: ")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Missing song filename")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	player, err := piyopiyo.NewPlayer(data, uint16(*flagHz))
	if err != nil {
		log.Fatal(err)
	}

	start := *flagStart
	if n := player.NEvents(); n > 0 {
		if start < 0 {
			start = 0
		}
		if start >= n {
			start = n - 1
		}
	}
	player.EventCursor = uint32(start)

	effect, err := config.ReverbFromFlag(*flagReverb, *flagHz)
	if err != nil {
		log.Fatal(err)
	}

	ap := NewAudioPlayer(player, effect, *flagHz)
	if err := ap.Run(); err != nil {
		log.Fatal(err)
	}
}
