package piyopiyo

// melodyFreqTable holds the phase-increment base for the 12 semitones of
// one octave, in the format's internal fixed-point-ish units. Keys 12..23
// reuse this table shifted one octave up.
var melodyFreqTable = [12]float64{
	1551, 1652, 1747, 1848, 1955, 2074, 2205, 2324, 2461, 2616, 2770, 2938,
}

// MelodyTrack is a wavetable synth voice: a 256-sample single-cycle
// waveform stepped through a 64-stage amplitude envelope over the life of
// a note, with an octave shift and per-track note-hold length. TrackBase
// is embedded so its fields (Vol, Timers, Phases, Events, ...) are
// promoted onto MelodyTrack directly, the way the Rust reference composes
// Track out of a base struct.
type MelodyTrack struct {
	TrackBase

	Waveform [256]int8
	Envelope [64]uint8
	Octave   uint8
	Len      uint16
}

// NewMelodyTrack returns a MelodyTrack with its derived gains at unity,
// matching the Rust reference's Default impl.
func NewMelodyTrack() *MelodyTrack {
	return &MelodyTrack{TrackBase: newTrackBase()}
}

var _ Track = (*MelodyTrack)(nil)

func (m *MelodyTrack) NoteDuration(_ int) float64 { return float64(m.Len) }

// Base satisfies the Track capability interface.
func (m *MelodyTrack) Base() *TrackBase { return &m.TrackBase }

func (m *MelodyTrack) PostEvent() {}

// SampleOfKey implements the wavetable synthesis algorithm: envelope
// index from note progress, phase accumulation scaled by octave and
// semitone, a single waveform lookup, and the stereo gain apply.
func (m *MelodyTrack) SampleOfKey(key int, sampPhase float64) [2]int16 {
	if m.Timers[key] < 0 {
		m.Timers[key] = 0
	}

	idx := 0
	if m.Len > 0 {
		idx = 64 * (int(m.Len) - int(m.Timers[key])) / int(m.Len)
	}
	if idx < 0 {
		idx = 0
	}
	if idx > 63 {
		idx = 63
	}
	envelope := int16(2 * int(m.Envelope[idx]))

	octaveShift := float64(uint(1) << m.Octave)
	var freqBase float64
	if key < 12 {
		freqBase = melodyFreqTable[key] / 16
	} else {
		freqBase = melodyFreqTable[key-12] / 8
	}
	increment := octaveShift * freqBase * sampPhase

	m.Phases[key] += increment
	tp := int(m.Phases[key]) / 256

	s := int32(m.Waveform[tp&0xff]) * int32(envelope)

	l := float32(s) * m.VolMix * m.VolLeft
	r := float32(s) * m.VolMix * m.VolRight
	return [2]int16{clampToInt16(l), clampToInt16(r)}
}

// clampToInt16 saturates a float32 sample to the int16 range before
// truncating, so a pathological combination of envelope/vol_mix/pan never
// wraps - this is the float-domain half of the saturation guarantee that
// saturatingAdd16 then extends across tracks.
func clampToInt16(v float32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
