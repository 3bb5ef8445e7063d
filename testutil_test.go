package piyopiyo

import (
	"bytes"
	"encoding/binary"

	clone "github.com/huandu/go-clone/generic"
)

// pmdBuilder assembles a well-formed (or deliberately truncated) PMD byte
// blob for tests: a small DSL so test cases can express "a song shaped
// like X" without hand-packing bytes inline.
type pmdBuilder struct {
	eventWaitMs uint32
	repeatStart uint32
	repeatEnd   uint32
	nEvents     uint32

	melodyOctave [3]uint8
	melodyLen    [3]uint32
	melodyVol    [3]uint32
	waveform     [3][256]byte
	envelope     [3][64]byte

	percVol uint32

	melodyEvents [3][]uint32
	percEvents   []uint32
}

// newSilentPMDBuilder returns a builder for a song with nEvents all-zero
// events on every track (Scenario A's shape).
func newSilentPMDBuilder(eventWaitMs, repeatStart, repeatEnd, nEvents uint32) *pmdBuilder {
	b := &pmdBuilder{
		eventWaitMs: eventWaitMs,
		repeatStart: repeatStart,
		repeatEnd:   repeatEnd,
		nEvents:     nEvents,
	}
	for t := 0; t < 3; t++ {
		b.melodyEvents[t] = make([]uint32, nEvents)
	}
	b.percEvents = make([]uint32, nEvents)
	return b
}

func (b *pmdBuilder) setMelody(track int, octave uint8, length, vol uint32) *pmdBuilder {
	b.melodyOctave[track] = octave
	b.melodyLen[track] = length
	b.melodyVol[track] = vol
	return b
}

func (b *pmdBuilder) setWaveform(track int, wave [256]int8) *pmdBuilder {
	for i, s := range wave {
		b.waveform[track][i] = byte(s)
	}
	return b
}

func (b *pmdBuilder) setEnvelope(track int, env [64]uint8) *pmdBuilder {
	b.envelope[track] = env
	return b
}

func (b *pmdBuilder) setMelodyEvent(track, idx int, ev uint32) *pmdBuilder {
	b.melodyEvents[track][idx] = ev
	return b
}

func (b *pmdBuilder) setPercEvent(idx int, ev uint32) *pmdBuilder {
	b.percEvents[idx] = ev
	return b
}

func (b *pmdBuilder) setPercVol(vol uint32) *pmdBuilder {
	b.percVol = vol
	return b
}

// build assembles the full PMD byte stream: header, three melody track
// headers, percussion volume, then each track's event table in turn.
func (b *pmdBuilder) build() []byte {
	var buf bytes.Buffer
	buf.WriteString("PMD")
	buf.Write(make([]byte, 5)) // reserved

	writeU32 := func(v uint32) {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], v)
		buf.Write(tmp[:])
	}

	writeU32(b.eventWaitMs)
	writeU32(b.repeatStart)
	writeU32(b.repeatEnd)
	writeU32(b.nEvents)

	for t := 0; t < 3; t++ {
		buf.WriteByte(b.melodyOctave[t])
		buf.Write(make([]byte, 3))
		writeU32(b.melodyLen[t])
		writeU32(b.melodyVol[t])
		buf.Write(make([]byte, 8))
		buf.Write(b.waveform[t][:])
		buf.Write(b.envelope[t][:])
	}

	writeU32(b.percVol)

	for t := 0; t < 3; t++ {
		for _, ev := range b.melodyEvents[t] {
			writeU32(ev)
		}
	}
	for _, ev := range b.percEvents {
		writeU32(ev)
	}

	return buf.Bytes()
}

// sineWaveform returns a 256-entry single-cycle waveform table approximating
// a sine wave scaled to amplitude, used by tests that need a melody track
// to actually produce sound.
func sineWaveform(amplitude int8) [256]int8 {
	var w [256]int8
	for i := range w {
		// A coarse quarter-symmetric sine stand-in: avoids importing math
		// into _test.go fixtures for what is just "some periodic signal".
		t := i % 256
		switch {
		case t < 64:
			w[i] = int8(int(amplitude) * t / 64)
		case t < 128:
			w[i] = int8(int(amplitude) * (128 - t) / 64)
		case t < 192:
			w[i] = int8(-int(amplitude) * (t - 128) / 64)
		default:
			w[i] = int8(-int(amplitude) * (256 - t) / 64)
		}
	}
	return w
}

func fullEnvelope(level uint8) [64]uint8 {
	var e [64]uint8
	for i := range e {
		e[i] = level
	}
	return e
}

// constantWaveform returns a 256-entry waveform table that is level at
// every index, used by tests that need a melody track's raw per-key
// sample to be independent of phase.
func constantWaveform(level int8) [256]int8 {
	var w [256]int8
	for i := range w {
		w[i] = level
	}
	return w
}

// baselineSong is a shared fixture parsed once: an audible single-key pulse
// on melody track 0. Tests that want their own independent Song to mutate
// fork it with cloneBaselineSong rather than building and reparsing a fresh
// blob.
var baselineSong = mustBuildBaselineSong()

func mustBuildBaselineSong() *Song {
	song, err := LoadSong(newScenarioBBuilder().build())
	if err != nil {
		panic(err)
	}
	return song
}

// cloneBaselineSong returns an independent deep copy of baselineSong so a
// test can mutate its own copy's fields without affecting other tests.
func cloneBaselineSong() *Song {
	return clone.Clone(baselineSong)
}
