package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator emits a square-ish beep with a short attack.
type ToneGenerator struct {
	sr   beep.SampleRate
	pos  int
	freq float64
}

// NewToneGenerator creates a fixed-pitch tone.
func NewToneGenerator(sr beep.SampleRate, freq float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.25*math.Sin(2*math.Pi*g.freq*t) + 0.08*math.Sin(2*math.Pi*g.freq*3*t)
		sample *= math.Min(t/0.005, 1.0)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ChompGenerator is the pellet "waka": a fast down-up pitch wobble.
type ChompGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewChompGenerator creates a pellet chomp.
func NewChompGenerator(sr beep.SampleRate) *ChompGenerator {
	return &ChompGenerator{sr: sr}
}

func (g *ChompGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	cycle := float64(g.sr.N(chompDuration))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		p := float64(g.pos) / cycle

		freq := 250 + 250*math.Abs(math.Cos(p*math.Pi))
		sample := 0.2 * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChompGenerator) Err() error {
	return nil
}

// SweepGenerator glides linearly between two pitches while fading out.
type SweepGenerator struct {
	sr       beep.SampleRate
	pos      int
	phase    float64
	from, to float64
	length   int
}

// NewSweepGenerator creates a pitch sweep lasting d.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, length: max(sr.N(d), 1)}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.length), 1.0)
		freq := g.from + (g.to-g.from)*p

		sample := 0.25 * (1 - p) * math.Sin(2*math.Pi*g.phase)

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// note is one step of a jingle.
type note struct {
	freq float64
	dur  time.Duration
}

var (
	deathNotes = []note{
		{494, 150 * time.Millisecond}, {440, 150 * time.Millisecond}, {392, 150 * time.Millisecond},
		{330, 150 * time.Millisecond}, {262, 300 * time.Millisecond},
	}
	clearedNotes = []note{
		{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond},
		{1047, 440 * time.Millisecond},
	}
)

// JingleGenerator plays a fixed note sequence, then silence.
type JingleGenerator struct {
	sr    beep.SampleRate
	notes []note
	idx   int
	pos   int
	phase float64
}

// NewJingleGenerator creates a jingle from the note sequence.
func NewJingleGenerator(sr beep.SampleRate, notes []note) *JingleGenerator {
	return &JingleGenerator{sr: sr, notes: notes}
}

func (g *JingleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		sample := 0.0
		if g.idx < len(g.notes) {
			nt := g.notes[g.idx]
			length := g.sr.N(nt.dur)
			env := 1.0 - float64(g.pos)/float64(length)

			if g.phase < 0.5 {
				sample = 0.15 * env
			} else {
				sample = -0.15 * env
			}
			g.phase += nt.freq / float64(g.sr)
			g.phase -= math.Floor(g.phase)

			g.pos++
			if g.pos >= length {
				g.idx++
				g.pos = 0
			}
		}

		samples[i][0] = sample
		samples[i][1] = sample
	}
	return len(samples), true
}

func (g *JingleGenerator) Err() error {
	return nil
}

// MusicGenerator is an endless bass-and-kick loop.
type MusicGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// bassLine is one bar of the loop, one pitch per beat.
var bassLine = [4]float64{110, 110, 131, 98}

// NewMusicGenerator creates the background loop at 120 BPM.
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{sr: sr, samples: sr.N(500 * time.Millisecond)}
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(80 * time.Millisecond)
	for i := range samples {
		beat := (g.pos / g.samples) % len(bassLine)
		beatPos := g.pos % g.samples
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < kickLen {
			env := 1.0 - float64(beatPos)/float64(kickLen)
			kick = 0.3 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}

		bass := 0.1 * math.Sin(2*math.Pi*bassLine[beat]*t)
		sample := kick + bass

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}
