// Package reverb implements a comb-filter echo effect for the mixed
// stereo stream coming out of a Player.
package reverb

// Effect is the capability a host needs from a reverb implementation: feed
// it freshly rendered audio, then drain processed audio back out. It is
// the small push/pull shape a portaudio stream callback drives a comb
// filter through between rendering and output.
type Effect interface {
	// InputSamples appends newly rendered interleaved stereo samples and
	// returns how many of them it accepted.
	InputSamples(in []int16) int

	// GetAudio copies up to len(out) processed samples into out and
	// returns how many were written.
	GetAudio(out []int16) int
}

// PassThrough implements Effect without altering the audio, for a
// "-reverb none" configuration. It still buffers through a fixed ring so
// callers can always push and pull at independent rates.
type PassThrough struct {
	audio             []int16
	readPos, writePos int
	n                 int
}

var _ Effect = (*PassThrough)(nil)

// NewPassThrough returns a PassThrough backed by a ring buffer of
// bufSize samples.
func NewPassThrough(bufSize int) *PassThrough {
	return &PassThrough{audio: make([]int16, bufSize)}
}

func (p *PassThrough) InputSamples(in []int16) int {
	free := len(p.audio) - p.n
	n := len(in)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	if p.writePos+n > len(p.audio) {
		n1 := len(p.audio) - p.writePos
		n2 := n - n1
		copy(p.audio[p.writePos:], in[:n1])
		copy(p.audio[:n2], in[n1:n1+n2])
		p.writePos = n2
	} else {
		copy(p.audio[p.writePos:p.writePos+n], in[:n])
		p.writePos += n
	}
	p.n += n
	return n
}

func (p *PassThrough) GetAudio(out []int16) int {
	n := len(out)
	if n > p.n {
		n = p.n
	}
	if n == 0 {
		return 0
	}

	if p.readPos+n > len(p.audio) {
		n1 := len(p.audio) - p.readPos
		n2 := n - n1
		copy(out[:n1], p.audio[p.readPos:])
		copy(out[n1:n], p.audio[:n2])
		p.readPos = n2
	} else {
		copy(out[:n], p.audio[p.readPos:p.readPos+n])
		p.readPos += n
	}
	p.n -= n
	return n
}

// Comb is a feedback comb filter: each sample arriving at the ring buffer
// also adds decay * the sample delayOffset frames behind it, producing a
// simple chiptune-appropriate echo. Unlike an unbounded feedback buffer
// that keeps every sample it has ever seen, it holds audio in a
// fixed-size ring so a live playback host's reverb tail cannot grow
// without bound.
type Comb struct {
	audio             []int16
	delayOffset       int
	decay             float32
	readPos, writePos int
	n                 int
}

var _ Effect = (*Comb)(nil)

// NewComb returns a Comb with a bufSize-sample (stereo-pair) ring, echoing
// each input delayMs milliseconds later at decay gain.
func NewComb(bufSize int, decay float32, delayMs, sampleRate int) *Comb {
	return &Comb{
		audio:       make([]int16, bufSize*2),
		delayOffset: (delayMs * sampleRate) / 1000,
		decay:       decay,
	}
}

func (c *Comb) InputSamples(in []int16) int {
	free := len(c.audio) - c.n
	n := len(in)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	for i := 0; i < n; i++ {
		pos := (c.writePos + i) % len(c.audio)
		s := in[i]
		delayed := (pos + c.delayOffset*2) % len(c.audio)
		c.audio[pos] = s
		c.audio[delayed] += int16(float32(s) * c.decay)
	}
	c.writePos = (c.writePos + n) % len(c.audio)
	c.n += n
	return n
}

func (c *Comb) GetAudio(out []int16) int {
	n := len(out)
	if n > c.n {
		n = c.n
	}
	if n == 0 {
		return 0
	}

	for i := 0; i < n; i++ {
		out[i] = c.audio[(c.readPos+i)%len(c.audio)]
	}
	c.readPos = (c.readPos + n) % len(c.audio)
	c.n -= n
	return n
}
