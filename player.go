package piyopiyo

// samplesPerSecond is the fixed phase-reference rate the original format's
// phase increments are expressed against.
const samplesPerSecond = 22050

// Player is the tick-driven sequencer: it owns a Song, advances an event
// cursor at EventWaitMs-spaced ticks, and renders mixed stereo frames on
// demand. It is safe to call RenderNext from a real-time audio callback -
// it performs no allocation, I/O, or blocking - but a Player is not safe
// for concurrent use; a host that edits Song fields from one goroutine
// while rendering on another must serialize access itself (a single
// owning goroutine per Player, or a mutex around both).
type Player struct {
	SampleRate uint16

	// EventCursor is the index of the next event to dispatch. It is
	// exported so a host can seek playback directly, mirroring the Rust
	// reference's public event_cursor field.
	EventCursor uint32

	// Song is exported for in-place editing by a host UI between render
	// calls.
	Song Song

	waitTimer uint32
}

// NewPlayer parses data as a PMD song and returns a Player ready to render
// at sampleRate.
func NewPlayer(data []byte, sampleRate uint16) (*Player, error) {
	song, err := LoadSong(data)
	if err != nil {
		return nil, err
	}
	return &Player{SampleRate: sampleRate, Song: *song}, nil
}

// NEvents returns the number of events in the loaded song. All four tracks
// share the same event count, so the percussion track's event slice is
// used as the representative length.
func (p *Player) NEvents() int {
	return len(p.Song.PercussionTrack.Events)
}

// RenderNext fills buf with interleaved left/right 16-bit samples. len(buf)
// must be even; each pair of entries is one rendered stereo frame.
func (p *Player) RenderNext(buf []int16) {
	for i := 0; i+1 < len(buf); i += 2 {
		p.tick()
		frame := p.nextFrame()
		buf[i] = frame[0]
		buf[i+1] = frame[1]
	}
}

// tick fires the sequencer clock: when the per-tick wait has elapsed it
// dispatches the current event to every track and advances (with
// loop-back) the cursor; otherwise it just counts the wait down. Firing
// on a zeroed timer rather than decrementing first keeps the very first
// tick's event audible immediately instead of one tick late.
func (p *Player) tick() {
	if p.waitTimer == 0 {
		p.waitTimer = uint32(p.SampleRate) * p.Song.EventWaitMs / 1000

		for i := range p.Song.MelodyTracks {
			DoEventAtIdx(&p.Song.MelodyTracks[i], int(p.EventCursor))
		}
		DoEventAtIdx(&p.Song.PercussionTrack, int(p.EventCursor))

		p.EventCursor++
		if p.EventCursor >= p.Song.RepeatRange.End {
			p.EventCursor = p.Song.RepeatRange.Start
		}
		return
	}
	p.waitTimer--
}

// nextFrame mixes one stereo frame from all four tracks with a saturating
// add, so a pathological chord across every voice clips cleanly instead of
// wrapping.
func (p *Player) nextFrame() [2]int16 {
	sampPhase := samplesPerSecond / float64(p.SampleRate)

	var mix [2]int16
	for i := range p.Song.MelodyTracks {
		frame := RenderNext(&p.Song.MelodyTracks[i], sampPhase)
		mix[0] = saturatingAdd16(mix[0], frame[0])
		mix[1] = saturatingAdd16(mix[1], frame[1])
	}
	frame := RenderNext(&p.Song.PercussionTrack, sampPhase)
	mix[0] = saturatingAdd16(mix[0], frame[0])
	mix[1] = saturatingAdd16(mix[1], frame[1])

	return mix
}
