// Command pmddump parses a PMD song and dumps its structure to stdout.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-chiptune/piyopiyo"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pmddump: ")

	if len(os.Args) <= 1 {
		log.Fatal("Missing song filename")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	song, err := piyopiyo.LoadSong(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("event_wait_ms=%d repeat_range=[%d,%d)\n",
		song.EventWaitMs, song.RepeatRange.Start, song.RepeatRange.End)

	for i, mt := range song.MelodyTracks {
		fmt.Printf("melody[%d]: octave=%d len=%d vol=%d events=%d\n",
			i, mt.Octave, mt.Len, mt.Vol, len(mt.Events))
	}
	fmt.Printf("percussion: vol=%d events=%d\n",
		song.PercussionTrack.Vol, len(song.PercussionTrack.Events))

	for i, ev := range song.PercussionTrack.Events {
		var keys []int
		for k := 0; k < piyopiyo.NKeys; k++ {
			if ev.KeyDown(k) {
				keys = append(keys, k)
			}
		}
		pan, hasPan := ev.Pan()
		fmt.Printf("  tick %4d: keys=%v", i, keys)
		if hasPan {
			fmt.Printf(" pan=%d", pan)
		}
		fmt.Println()
	}
}
