package piyopiyo

import "errors"

// ErrInvalidMagic is returned by LoadSong when the blob's first three bytes
// are not "PMD".
var ErrInvalidMagic = errors.New("piyopiyo: invalid magic, expected PMD")

// ErrPrematureEof is returned by LoadSong when the blob ends before a
// required field could be read.
var ErrPrematureEof = errors.New("piyopiyo: premature end of file")

// RepeatRange describes the tick range the sequencer loops over: once the
// event cursor reaches End it jumps back to Start.
type RepeatRange struct {
	Start uint32
	End   uint32
}

// Song is a fully parsed PMD music file: the tick timing, loop range, and
// the four tracks (three melody, one percussion) that share a common
// event-indexed timeline.
type Song struct {
	EventWaitMs uint32
	RepeatRange RepeatRange

	MelodyTracks    [3]MelodyTrack
	PercussionTrack PercussionTrack
}

// LoadSong parses a PMD byte blob into a Song. It performs no validation
// beyond the magic check and bounds checking during sequential reads;
// out-of-range field values are clamped or masked later, at the sites
// that use them, rather than rejected here.
func LoadSong(data []byte) (*Song, error) {
	c := newCursor(data)

	magic, ok := c.nextBytes(3)
	if !ok {
		return nil, ErrPrematureEof
	}
	if string(magic) != "PMD" {
		return nil, ErrInvalidMagic
	}
	c.skip(5)

	eventWaitMs, ok := c.nextU32LE()
	if !ok {
		return nil, ErrPrematureEof
	}
	repeatStart, ok := c.nextU32LE()
	if !ok {
		return nil, ErrPrematureEof
	}
	repeatEnd, ok := c.nextU32LE()
	if !ok {
		return nil, ErrPrematureEof
	}
	nEventsU32, ok := c.nextU32LE()
	if !ok {
		return nil, ErrPrematureEof
	}
	nEvents := int(nEventsU32)

	song := &Song{
		EventWaitMs: eventWaitMs,
		RepeatRange: RepeatRange{Start: repeatStart, End: repeatEnd},
	}

	for i := range song.MelodyTracks {
		if err := readMelodyHeader(c, &song.MelodyTracks[i]); err != nil {
			return nil, err
		}
	}

	percVol, ok := c.nextU32LE()
	if !ok {
		return nil, ErrPrematureEof
	}
	song.PercussionTrack = *NewPercussionTrack()
	song.PercussionTrack.Vol = uint16(percVol)

	for i := range song.MelodyTracks {
		events, ok := c.nextEvents(nEvents)
		if !ok {
			return nil, ErrPrematureEof
		}
		song.MelodyTracks[i].Events = events
	}

	events, ok := c.nextEvents(nEvents)
	if !ok {
		return nil, ErrPrematureEof
	}
	song.PercussionTrack.Events = events

	return song, nil
}

// readMelodyHeader reads one melody track's fixed-size header (octave,
// hold length, volume, waveform, and envelope). It resets t to a fresh
// MelodyTrack first, so t's event list is empty on return; events are read
// afterwards in a separate pass, matching the PMD file's layout.
func readMelodyHeader(c *cursor, t *MelodyTrack) error {
	*t = *NewMelodyTrack()

	octave, ok := c.nextU8()
	if !ok {
		return ErrPrematureEof
	}
	t.Octave = octave
	c.skip(3)

	lenU32, ok := c.nextU32LE()
	if !ok {
		return ErrPrematureEof
	}
	t.Len = uint16(lenU32)

	volU32, ok := c.nextU32LE()
	if !ok {
		return ErrPrematureEof
	}
	t.Vol = uint16(volU32)
	c.skip(8)

	waveform, ok := c.nextBytes(256)
	if !ok {
		return ErrPrematureEof
	}
	for i, b := range waveform {
		t.Waveform[i] = int8(b)
	}

	envelope, ok := c.nextBytes(64)
	if !ok {
		return ErrPrematureEof
	}
	copy(t.Envelope[:], envelope)

	return nil
}
