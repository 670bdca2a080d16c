// Package audio synthesizes short sound cues for engine events with beep.
// Cues are plain streamers; a Player mixes them and, in builds tagged
// "audio", feeds the mix to the speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	pcore "dotlab/pkg/core"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// rumble is a decaying mix of low sine and filtered noise.
type rumble struct {
	rate     beep.SampleRate
	freq     float64
	decay    float64
	noiseAmt float64
	total    int
	pos      int
	last     float64
	rng      *pcore.RNG
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.pos >= r.total {
			return i, i > 0
		}
		t := float64(r.pos) / float64(r.rate)
		env := math.Exp(-t * r.decay)
		// One-pole low-pass keeps the noise from hissing.
		r.last += 0.2 * (r.rng.Centered()*2 - r.last)
		v := env * ((1-r.noiseAmt)*math.Sin(2*math.Pi*r.freq*t) + r.noiseAmt*r.last)
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// chirp is a sine sweep from one frequency to another with a linear fade.
type chirp struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.pos >= c.total {
			return i, i > 0
		}
		progress := float64(c.pos) / float64(c.total)
		freq := c.from + (c.to-c.from)*progress
		v := math.Sin(2*math.Pi*c.phase) * (1 - progress)
		c.phase += freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }

// Explosion renders a blast cue. Larger radii ring longer and lower; force
// scales loudness.
func Explosion(radius, force float64, rng *pcore.RNG) beep.Streamer {
	radius = math.Max(radius, 1)
	dur := time.Duration(150+radius*4) * time.Millisecond
	body := &rumble{
		rate:     SampleRate,
		freq:     math.Max(35, 140-radius),
		decay:    6,
		noiseAmt: 0.6,
		total:    SampleRate.N(dur),
		rng:      rng,
	}
	return withVolume(body, math.Min(1, 0.3+force/1000))
}

// Decay renders the short crackle of a particle crumbling away.
func Decay(rng *pcore.RNG) beep.Streamer {
	return withVolume(&rumble{
		rate:     SampleRate,
		freq:     80,
		decay:    14,
		noiseAmt: 0.8,
		total:    SampleRate.N(180 * time.Millisecond),
		rng:      rng,
	}, 0.35)
}

// Transmute renders the chirp played when two materials blend.
func Transmute() beep.Streamer {
	up := &chirp{rate: SampleRate, from: 520, to: 880, total: SampleRate.N(60 * time.Millisecond)}
	return withVolume(up, 0.15)
}

// withVolume scales s linearly. Zero or negative gain silences it.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
