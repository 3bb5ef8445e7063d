package piyopiyo

import "math"

// TrackBase holds the mutable per-key state and event stream shared by both
// track kinds. It corresponds to the Rust reference's TrackBase split out
// of Track, generalized here the way shared channel bookkeeping is
// conventionally split from the per-format note decoding that drives it.
type TrackBase struct {
	// Vol is the track's nominal volume, in [0, 300] for well-formed PMD
	// data but stored as a full 16 bits since some files exceed that range.
	Vol uint16

	VolLeft  float32
	VolRight float32
	VolMix   float32

	Timers [NKeys]float64
	Phases [NKeys]float64

	Events []Event
}

func newTrackBase() TrackBase {
	return TrackBase{VolLeft: 1, VolRight: 1, VolMix: 1}
}

// Track is the capability set a concrete track (melody or percussion) must
// provide so that DoEvent and RenderNext - implemented once below - can
// drive it. This mirrors the Rust reference's Track trait with its two
// required methods plus a no-op-by-default PostEvent hook.
type Track interface {
	// NoteDuration returns how long, in samples, a freshly triggered key
	// should hold before falling silent.
	NoteDuration(key int) float64

	// SampleOfKey renders one stereo frame of the given key's current
	// contribution and advances whatever oscillator/playhead state it
	// owns. Called only for keys whose timer is still positive.
	SampleOfKey(key int, sampPhase float64) [2]int16

	// Base returns the shared mutable state so DoEvent/RenderNext can
	// operate on it.
	Base() *TrackBase

	// PostEvent runs after the shared on-event volume/pan recompute.
	// Percussion tracks use it to derive their secondary "low" gain;
	// melody tracks leave it a no-op.
	PostEvent()
}

// pmdLogCurve maps a raw PMD volume-ish quantity to a linear gain via the
// format's fixed logarithmic curve: 10^(x/2000). Both vol_mix variants and
// the per-event pan gains are instances of this same curve applied to a
// differently-derived x.
func pmdLogCurve(x int32) float32 {
	return float32(math.Pow(10, float64(x)/2000))
}

// DoEvent applies event e to t: it retriggers every key whose press bit is
// set, recomputes the logarithmic mix gain from Vol, applies any carried
// pan change, and finally invokes the track's PostEvent hook. This is the
// "on event" sequence common to both track kinds.
func DoEvent(t Track, e Event) {
	base := t.Base()
	for k := 0; k < NKeys; k++ {
		if e.KeyDown(k) {
			base.Timers[k] = t.NoteDuration(k)
			base.Phases[k] = 0
		}
	}

	base.VolMix = pmdLogCurve((int32(base.Vol) - 300) * 8)

	if pan, ok := e.Pan(); ok {
		base.VolLeft = pmdLogCurve(int32(min16(pan, 0)))
		base.VolRight = pmdLogCurve(int32(min16(-pan, 0)))
	}

	t.PostEvent()
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

// DoEventAtIdx dispatches Events[i] to t via DoEvent.
func DoEventAtIdx(t Track, i int) {
	base := t.Base()
	if i < 0 || i >= len(base.Events) {
		return
	}
	DoEvent(t, base.Events[i])
}

// RenderNext produces one stereo frame of t's current contribution. Every
// key with a positive timer has its timer decremented by sampPhase samples
// and is asked to render; contributions are saturating-added together so a
// single track's own polyphony cannot wrap.
func RenderNext(t Track, sampPhase float64) [2]int16 {
	base := t.Base()
	var out [2]int16
	for k := 0; k < NKeys; k++ {
		if base.Timers[k] <= 0 {
			continue
		}
		base.Timers[k] -= sampPhase

		s := t.SampleOfKey(k, sampPhase)
		out[0] = saturatingAdd16(out[0], s[0])
		out[1] = saturatingAdd16(out[1], s[1])
	}
	return out
}

// saturatingAdd16 adds a and b clamped to the int16 range. Clamping every
// accumulation, rather than widening into an accumulator and clamping once
// at the end of a mix pass, is affordable here because each track
// contributes at most one already-clamped-to-range sample per key and the
// number of adds per frame is small and fixed (24 keys x 4 tracks), so the
// extra clamps cost nothing that matters and keep every intermediate value
// a valid sample.
func saturatingAdd16(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum > math.MaxInt16 {
		return math.MaxInt16
	}
	if sum < math.MinInt16 {
		return math.MinInt16
	}
	return int16(sum)
}
