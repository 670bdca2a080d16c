package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"dotlab/internal/sims/dots"
	pcore "dotlab/pkg/core"
)

// drain streams s to completion and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			out = append(out, v[0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func peak(samples []float64) float64 {
	m := 0.0
	for _, v := range samples {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func TestExplosionCueScalesWithRadius(t *testing.T) {
	small := drain(t, Explosion(20, 100, pcore.NewRNG(1)))
	large := drain(t, Explosion(100, 500, pcore.NewRNG(1)))
	if len(large) <= len(small) {
		t.Fatalf("larger blasts should ring longer: %d vs %d samples", len(large), len(small))
	}
	if p := peak(large); p == 0 || p > 1 {
		t.Fatalf("peak %v out of range", p)
	}
}

func TestCuesDeterministicForSeed(t *testing.T) {
	a := drain(t, Decay(pcore.NewRNG(3)))
	b := drain(t, Decay(pcore.NewRNG(3)))
	if len(a) != len(b) {
		t.Fatal("lengths differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestTransmuteFadesOut(t *testing.T) {
	s := drain(t, Transmute())
	if len(s) != SampleRate.N(60e6) {
		t.Fatalf("unexpected cue length %d", len(s))
	}
	if math.Abs(s[len(s)-1]) > 0.01 {
		t.Fatalf("chirp should fade to silence, last sample %v", s[len(s)-1])
	}
}

func TestSilentVolume(t *testing.T) {
	if p := peak(drain(t, withVolume(Transmute(), 0))); p != 0 {
		t.Fatalf("zero gain should be silent, peak %v", p)
	}
}

func TestPlayerMixesAndLimits(t *testing.T) {
	p := NewPlayer(1, 9)
	p.OnExplosion(dots.Explosion{Radius: 40, Force: 300})
	if p.Voices() != 1 {
		t.Fatalf("expected one voice, got %d", p.Voices())
	}
	buf := make([][2]float64, 1024)
	p.Stream(buf)
	if peak([]float64{buf[100][0], buf[500][0], buf[900][0]}) == 0 {
		t.Fatal("mix should carry the blast")
	}

	for i := 0; i < 2*maxVoices; i++ {
		p.Play(Transmute())
	}
	if p.Voices() != maxVoices {
		t.Fatalf("voices should cap at %d, got %d", maxVoices, p.Voices())
	}

	p.SetMuted(true)
	if p.Play(Transmute()) {
		t.Fatal("muted player should refuse cues")
	}
}

func TestOnStatsPlaysForActivity(t *testing.T) {
	p := NewPlayer(0.5, 1)
	p.OnStats(dots.Stats{}, dots.Stats{})
	if p.Voices() != 0 {
		t.Fatal("no activity should stay quiet")
	}
	p.OnStats(dots.Stats{}, dots.Stats{Decays: 1, Changed: 2})
	if p.Voices() != 2 {
		t.Fatalf("expected decay and blend cues, got %d voices", p.Voices())
	}
}

func TestMutedPlayerStreamsSilence(t *testing.T) {
	p := NewPlayer(1, 9)
	p.OnExplosion(dots.Explosion{Radius: 40, Force: 300})
	p.SetMuted(true)

	buf := make([][2]float64, 512)
	p.Stream(buf)
	for i, s := range buf {
		if s != [2]float64{} {
			t.Fatalf("muted output should be silent, sample %d = %v", i, s)
		}
	}
	if p.Voices() != 1 {
		t.Fatalf("muting should keep the queued cue, got %d voices", p.Voices())
	}

	p.SetMuted(false)
	p.Stream(buf)
	loud := false
	for _, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Fatal("unmuted output should carry the cue again")
	}
}
