package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"dotlab/internal/sims/dots"
	pcore "dotlab/pkg/core"
)

// maxVoices bounds how many cues may overlap; extra cues are skipped.
const maxVoices = 12

// Player mixes event cues into one stream.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rng    *pcore.RNG
	volume float64
	muted  bool
}

// NewPlayer returns a player with the given master volume in [0, 1].
func NewPlayer(volume float64, seed int64) *Player {
	return &Player{mixer: &beep.Mixer{}, rng: pcore.NewRNG(seed), volume: volume}
}

// Stream exposes the mix for an output device or a test. While muted the
// cues keep advancing but the output is silent.
func (p *Player) Stream(samples [][2]float64) (n int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok = p.mixer.Stream(samples)
	if p.muted {
		clear(samples[:n])
	}
	return n, ok
}

// Err always returns nil.
func (p *Player) Err() error { return nil }

// Voices reports how many cues are still sounding.
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// SetMuted silences the output and refuses new cues. Cues already queued
// keep playing silently.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Play queues s unless muted or the voice limit is reached. It reports
// whether the cue was queued.
func (p *Player) Play(s beep.Streamer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted || p.mixer.Len() >= maxVoices {
		return false
	}
	p.mixer.Add(withVolume(s, p.volume))
	return true
}

// OnExplosion plays a blast cue; pass it to World.OnExplosion.
func (p *Player) OnExplosion(e dots.Explosion) {
	p.Play(Explosion(e.Radius, e.Force, p.voiceRNG()))
}

// OnStats plays decay and blend cues for activity between two stats
// samples taken a frame apart.
func (p *Player) OnStats(prev, cur dots.Stats) {
	if cur.Decays > prev.Decays {
		p.Play(Decay(p.voiceRNG()))
	}
	if cur.Changed > prev.Changed {
		p.Play(Transmute())
	}
}

func (p *Player) voiceRNG() *pcore.RNG {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pcore.NewRNGFromUint64(p.rng.Uint64())
}
