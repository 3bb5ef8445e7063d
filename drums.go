package piyopiyo

import "math"

// The original Piyo Piyo binary embeds six raw 8-bit unsigned mono PCM
// samples (bass1, bass2, snare, hat1, hat2, cymbal) directly in its
// executable; the Rust reference does the same with six include_bytes!
// blobs under wav/. Those binary assets are not part of this pack, so this
// port generates deterministic stand-in waveforms at init time instead -
// short, decaying bursts shaped to resemble each drum's character (a
// low thump for the basses, a noisy crack for the snare, bright short
// transients for the hats, and a longer ringing decay for the cymbal).
// Swapping in the original binaries only requires replacing the bodies of
// these functions; every consumer addresses samples purely through the
// percussionSamples table built from them.

const drumSampleRate = 11025

func init() {
	bass1 = genThump(0x1111, 140, 4200)
	bass2 = genThump(0x2222, 110, 5200)
	snare = genNoiseBurst(0x3333, 2600, 0.55)
	hat1 = genNoiseBurst(0x4444, 900, 0.12)
	hat2 = genNoiseBurst(0x5555, 1300, 0.16)
	cymbal = genNoiseBurst(0x6666, 9000, 0.85)

	percussionSamples = [NKeys][]uint8{
		0: bass1, 1: bass1,
		2: bass2, 3: bass2,
		4: snare, 5: snare, 6: snare, 7: snare,
		8: hat1, 9: hat1,
		10: hat2, 11: hat2,
		12: cymbal, 13: cymbal, 14: cymbal, 15: cymbal,
		16: cymbal, 17: cymbal, 18: cymbal, 19: cymbal,
		20: cymbal, 21: cymbal, 22: cymbal, 23: cymbal,
	}
}

var (
	bass1, bass2, snare, hat1, hat2, cymbal []uint8

	// percussionSamples maps each of the 24 piano keys to the PCM data
	// played when that key is struck.
	percussionSamples [NKeys][]uint8
)

// lcg is a minimal deterministic pseudo-random generator so the stand-in
// drum waveforms are reproducible across runs and platforms without
// depending on math/rand's seeding behavior.
type lcg uint32

func (s *lcg) next() uint32 {
	*s = lcg(uint32(*s)*1664525 + 1013904223)
	return uint32(*s)
}

// genThump synthesizes a low-pitched decaying sine burst, standing in for
// a bass drum sample.
func genThump(seed uint32, freqHz float64, length int) []uint8 {
	out := make([]uint8, length)
	rng := lcg(seed)
	for i := range out {
		decay := 1 - float64(i)/float64(length)
		noise := (float64(rng.next()%1000)/1000 - 0.5) * 0.05
		t := float64(i) / drumSampleRate
		s := decay * (math.Sin(2*math.Pi*freqHz*t) + noise)
		out[i] = floatToU8(s)
	}
	return out
}

// genNoiseBurst synthesizes a decaying noise burst, standing in for a
// snare/hat/cymbal sample. brightness scales how quickly the burst tails
// off: low brightness decays fast (hats), high brightness rings longer
// (cymbal).
func genNoiseBurst(seed uint32, length int, brightness float64) []uint8 {
	out := make([]uint8, length)
	rng := lcg(seed)
	exp := 1 + 3*(1-brightness)
	for i := range out {
		decay := math.Pow(1-float64(i)/float64(length), exp)
		noise := float64(rng.next()%2000)/1000 - 1
		out[i] = floatToU8(decay * noise)
	}
	return out
}

func floatToU8(s float64) uint8 {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return uint8(int16(s*127) + 0x80)
}
