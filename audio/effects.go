package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	cueAttack  = 5 * time.Millisecond
	cueRelease = 40 * time.Millisecond
)

// Shape is an oscillator waveform
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeSaw
	ShapeNoise
)

// Note is one tone of a cue
// A non-zero To glides the pitch linearly from Freq to To over Length
type Note struct {
	Freq   float64
	To     float64
	Length time.Duration
	Shape  Shape
}

// ramp is the linear attack/release gain shared by every cue note
type ramp struct {
	pos     int
	total   int
	attack  int
	release int
}

func newRamp(d time.Duration, rate beep.SampleRate) ramp {
	total := rate.N(d)
	att := min(rate.N(cueAttack), total/2)
	return ramp{
		total:   total,
		attack:  att,
		release: min(rate.N(cueRelease), total-att),
	}
}

func (r *ramp) done() bool { return r.pos >= r.total }

func (r *ramp) gain() float64 {
	switch {
	case r.pos < r.attack:
		return float64(r.pos) / float64(r.attack)
	case r.pos >= r.total-r.release:
		return float64(r.total-r.pos) / float64(r.release)
	}
	return 1
}

// voice renders a Note
type voice struct {
	ramp
	note  Note
	rate  beep.SampleRate
	phase float64
}

func newVoice(n Note, rate beep.SampleRate) *voice {
	return &voice{ramp: newRamp(n.Length, rate), note: n, rate: rate}
}

func (v *voice) freq() float64 {
	if v.note.To == 0 || v.total == 0 {
		return v.note.Freq
	}
	return v.note.Freq + (v.note.To-v.note.Freq)*float64(v.pos)/float64(v.total)
}

func (v *voice) sample() float64 {
	switch v.note.Shape {
	case ShapeSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case ShapeSaw:
		return 2 * (v.phase - 0.5)
	case ShapeNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * v.phase)
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.done() {
		return 0, false
	}
	for n < len(samples) && !v.done() {
		s := v.sample() * v.gain()
		samples[n] = [2]float64{s, s}
		v.phase += v.freq() / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
		n++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

// fade applies the cue ramp to an external streamer and cuts it at the ramp's end
type fade struct {
	ramp
	streamer beep.Streamer
}

func newFade(s beep.Streamer, d time.Duration, rate beep.SampleRate) *fade {
	return &fade{ramp: newRamp(d, rate), streamer: s}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	if f.done() {
		return 0, false
	}
	n, ok = f.streamer.Stream(samples[:min(len(samples), f.total-f.pos)])
	for i := range n {
		g := f.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// phrase plays notes back to back
func phrase(rate beep.SampleRate, notes ...Note) beep.Streamer {
	voices := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		voices[i] = newVoice(n, rate)
	}
	return beep.Seq(voices...)
}

// newVolume wraps s at linear gain vol
// math.Log2(0) is -Inf, so 0 volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
