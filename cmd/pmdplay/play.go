package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"

	"github.com/go-chiptune/piyopiyo"
	"github.com/go-chiptune/piyopiyo/internal/reverb"
)

var (
	white   = color.New(color.FgWhite).SprintfFunc()
	cyan    = color.New(color.FgCyan).SprintfFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"
)

const scratchFrames = 2048

// AudioPlayer drives live playback of a piyopiyo.Player through portaudio
// and renders a small colorized terminal readout.
type AudioPlayer struct {
	mu     sync.Mutex
	player *piyopiyo.Player
	effect reverb.Effect
	hz     int

	stream  *portaudio.Stream
	scratch []int16

	playing    bool
	terminated bool

	ctx      context.Context
	cancelFn context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	keyboardDoneCh chan struct{}
}

// NewAudioPlayer builds an AudioPlayer around player, rendering through
// effect at hz.
func NewAudioPlayer(player *piyopiyo.Player, effect reverb.Effect, hz int) *AudioPlayer {
	ctx, cancel := context.WithCancel(context.Background())
	return &AudioPlayer{
		player:         player,
		effect:         effect,
		hz:             hz,
		scratch:        make([]int16, scratchFrames*2),
		playing:        true,
		ctx:            ctx,
		cancelFn:       cancel,
		keyboardDoneCh: make(chan struct{}),
	}
}

// Run initializes portaudio, starts the stream, and blocks rendering the
// terminal readout until the user quits or SIGINT arrives.
func (ap *AudioPlayer) Run() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(ap.hz), portaudio.FramesPerBufferUnspecified, ap.streamCallback)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	ap.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	ap.setupSignalHandlers()
	ap.setupKeyboardHandlers()

	fmt.Print(hideCursor)

	var lastCursor uint32 = ^uint32(0)
	for {
		select {
		case <-ap.ctx.Done():
			goto exit
		default:
		}

		ap.mu.Lock()
		cursor := ap.player.EventCursor
		ap.mu.Unlock()

		if cursor != lastCursor {
			ap.renderRow(cursor)
			lastCursor = cursor
		}
	}

exit:
	fmt.Print(showCursor)

	select {
	case <-ap.keyboardDoneCh:
	case <-time.After(500 * time.Millisecond):
	}

	ap.wg.Wait()
	return nil
}

// streamCallback is the portaudio callback: it renders directly from the
// Player under lock, pushes the result through the reverb effect, and
// writes the processed samples into out. This is the real-time path: no
// allocation, no blocking I/O.
func (ap *AudioPlayer) streamCallback(out []int16) {
	sc := ap.scratch[:len(out)]

	ap.mu.Lock()
	playing := ap.playing
	if playing {
		ap.player.RenderNext(sc)
	}
	ap.mu.Unlock()

	if !playing {
		clear(sc)
	}

	ap.effect.InputSamples(sc)
	if n := ap.effect.GetAudio(out); n < len(out) {
		clear(out[n:])
	}
}

func (ap *AudioPlayer) renderRow(cursor uint32) {
	song := &ap.player.Song
	fmt.Printf("%s %6d/%d  ", cyan("tick"), cursor, ap.player.NEvents())

	for i := range song.MelodyTracks {
		ev := song.MelodyTracks[i].Events[cursor]
		fmt.Print(white("m%d:", i), formatKeys(ev), " ")
	}
	pev := song.PercussionTrack.Events[cursor]
	fmt.Print(magenta("p:"), formatKeys(pev))
	fmt.Println()
}

func formatKeys(ev piyopiyo.Event) string {
	s := ""
	for k := 0; k < piyopiyo.NKeys; k++ {
		if ev.KeyDown(k) {
			s += "#"
		} else {
			s += "."
		}
	}
	return s
}

func (ap *AudioPlayer) setupSignalHandlers() {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)

	ap.wg.Add(1)
	go func() {
		defer ap.wg.Done()
		select {
		case <-ap.ctx.Done():
		case <-sigch:
			ap.Stop()
		}
	}()
}

func (ap *AudioPlayer) setupKeyboardHandlers() {
	ap.wg.Add(1)
	go func() {
		defer ap.wg.Done()
		keyboard.Listen(func(key keys.Key) (stop bool, err error) {
			if key.Code == keys.CtrlC || key.Code == keys.Escape {
				ap.Stop()
				return true, nil
			}
			ap.handleKeyPress(key)
			return false, nil
		})
		close(ap.keyboardDoneCh)
	}()
}

func (ap *AudioPlayer) handleKeyPress(key keys.Key) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	switch key.Code {
	case keys.Space:
		ap.playing = !ap.playing
	case keys.Left:
		if ap.player.EventCursor > 0 {
			ap.player.EventCursor--
		}
	case keys.Right:
		if n := uint32(ap.player.NEvents()); ap.player.EventCursor+1 < n {
			ap.player.EventCursor++
		}
	case keys.RuneKey:
		if len(key.Runes) > 0 && key.Runes[0] == 'q' {
			ap.Stop()
		}
	}
}

// Stop tears down the audio stream and signals Run's loop to exit. Safe
// to call from any goroutine, any number of times.
func (ap *AudioPlayer) Stop() {
	ap.stopOnce.Do(func() {
		ap.cancelFn()

		if ap.stream != nil {
			ap.stream.Stop()
			ap.stream.Close()
		}
		if !ap.terminated {
			portaudio.Terminate()
			ap.terminated = true
		}

		fmt.Print(showCursor)
	})
}
