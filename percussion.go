package piyopiyo

// PercussionTrack is a 24-key sampled-drum voice. Each key is bound to one
// of six built-in PCM samples via percussionSamples; playback is linear
// interpolation between adjacent sample frames, with odd-indexed keys
// using a secondary "low" gain derived from a different scaling of Vol.
type PercussionTrack struct {
	TrackBase

	VolMixLow float32
}

// NewPercussionTrack returns a PercussionTrack with its derived gains at
// unity, matching the Rust reference's Default impl.
func NewPercussionTrack() *PercussionTrack {
	return &PercussionTrack{TrackBase: newTrackBase(), VolMixLow: 1}
}

var _ Track = (*PercussionTrack)(nil)

func (p *PercussionTrack) NoteDuration(key int) float64 {
	return float64(len(percussionSamples[key]))
}

// Base satisfies the Track capability interface.
func (p *PercussionTrack) Base() *TrackBase { return &p.TrackBase }

// PostEvent recomputes the secondary gain used by odd-indexed keys. It
// scales Vol by 7/10 (integer division, matching the original format's
// fixed-point quirk) before applying the shared logarithmic curve.
func (p *PercussionTrack) PostEvent() {
	scaled := (7 * int32(p.Vol)) / 10
	p.VolMixLow = pmdLogCurve((scaled - 300) * 8)
}

// SampleOfKey implements the sampled-playback algorithm: phase
// accumulation over the bound PCM sample, linear interpolation between
// neighboring frames (with the tail frame clamped so it never reads past
// the sample), and the odd/even "low" gain split.
func (p *PercussionTrack) SampleOfKey(key int, sampPhase float64) [2]int16 {
	sample := percussionSamples[key]

	p.Phases[key] += sampPhase
	phase := p.Phases[key]
	if phase < 0 {
		phase = 0
	}
	ph := int(phase)
	if ph >= len(sample) {
		return [2]int16{0, 0}
	}

	ph2 := ph
	if ph+1 != len(sample) {
		ph2 = ph + 1
	}

	v0 := float32(int16(sample[ph]) - 0x80)
	v1 := float32(int16(sample[ph2]) - 0x80)
	frac := float32(phase - float64(ph))

	gain := p.VolMix
	if key%2 != 0 {
		gain = p.VolMixLow
	}
	v := (v0 + frac*(v1-v0)) * 256 * gain

	l := v * p.VolLeft
	r := v * p.VolRight
	return [2]int16{clampToInt16(l), clampToInt16(r)}
}
