// Package dots implements a falling-sand style particle engine: dots fall,
// collide, trade heat, change phase, explode, decay, and blend their
// materials through a background reaction pipeline.
package dots

import (
	"math"

	"dotlab/internal/core"
	"dotlab/internal/material"
	"dotlab/internal/reaction"
	pcore "dotlab/pkg/core"
)

// Explosion describes a blast emitted during the state update.
type Explosion struct {
	X, Y   float64
	Radius float64
	Force  float64
	Heat   float64
	Source uint64
}

// Stats counts engine activity since the last Reset.
type Stats struct {
	Ticks      uint64
	Live       int
	Changed    uint64
	Vanished   uint64
	Explosions uint64
	Decays     uint64
	Stale      uint64
	Dropped    uint64
	Submitted  uint64
}

// World owns every particle and the reaction pipeline feeding it.
type World struct {
	cfg Config
	log core.Logger

	particles []Particle
	nextID    uint64
	now       float64

	rng      *pcore.RNG
	grid     *core.SpatialGrid
	pairs    []core.Pair
	pipeline *reaction.Pipeline
	results  []reaction.Result

	blasts   []Explosion
	blastSrc []int
	removals []int

	stopped       bool
	lastDropWarn  float64
	onExplosion   func(Explosion)
	stats         Stats
	droppedAtWarn uint64
}

// New returns a dots world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// reaction pipeline starts immediately; call Close to stop it.
func NewWithConfig(cfg Config) *World { return NewWithLogger(cfg, nil) }

// NewWithLogger is NewWithConfig with engine and pipeline logging routed to l.
func NewWithLogger(cfg Config, l core.Logger) *World {
	cfg.sanitize()
	if l == nil {
		l = core.NopLogger{}
	}
	w := &World{
		cfg:          cfg,
		log:          l,
		nextID:       1,
		rng:          pcore.NewRNG(cfg.Seed),
		lastDropWarn: math.Inf(-1),
	}
	w.grid = core.NewSpatialGrid(float64(cfg.Width), float64(cfg.Height), 2*cfg.Params.Radius)
	w.pipeline = reaction.Start(w.pipelineConfig(), w.log)
	return w
}

// OnExplosion registers fn to be called for every blast.
func (w *World) OnExplosion(fn func(Explosion)) { w.onExplosion = fn }

func (w *World) pipelineConfig() reaction.Config {
	p := w.cfg.Params
	return reaction.Config{
		EventBuffer:  p.EventBuffer,
		ResultBuffer: p.ResultBuffer,
		Lanes:        p.Lanes,
		MaxBatch:     p.MaxBatch,
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "dots" }

// Size reports the arena dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Now reports the simulation clock in seconds.
func (w *World) Now() float64 { return w.now }

// Len reports the number of live particles.
func (w *World) Len() int { return len(w.particles) }

// Particles exposes the live particle slice. Callers must not retain it
// across ticks.
func (w *World) Particles() []Particle { return w.particles }

// AllStopped reports whether the last tick left every condensed particle
// resting on the floor with no gas present.
func (w *World) AllStopped() bool { return w.stopped }

// Stats returns activity counters.
func (w *World) Stats() Stats {
	s := w.stats
	s.Live = len(w.particles)
	ps := w.pipeline.Stats()
	s.Dropped = ps.Dropped
	s.Submitted = ps.Submitted
	return s
}

// Reset clears the arena, reseeds randomness and lays out the configured
// auto-spawn scene. Particle ids keep increasing across resets.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = pcore.NewRNG(effective)
	w.Clear()
	w.now = 0
	w.stats = Stats{}
	if n := w.cfg.Params.SpawnCount; n > 0 {
		w.Scatter(n)
	}
	w.log.Infof("reset with seed %d: %d particles", effective, len(w.particles))
}

// Clear removes every particle. Reaction results still in flight are
// rejected when they arrive because their ids no longer exist.
func (w *World) Clear() {
	w.particles = w.particles[:0]
	w.stopped = false
	w.log.Debugf("cleared arena")
}

// Close stops the reaction pipeline.
func (w *World) Close() { w.pipeline.Close() }

// Spawn places a particle made of d at (x, y) unless another particle
// already sits within one radius. It returns the new id and whether the
// particle was placed.
func (w *World) Spawn(x, y float64, d material.DNA) (uint64, bool) {
	r := w.cfg.Params.Radius
	x = clamp(x, r, float64(w.cfg.Width)-r)
	y = clamp(y, r, float64(w.cfg.Height)-r)
	for i := range w.particles {
		dx := w.particles[i].X - x
		dy := w.particles[i].Y - y
		if dx*dx+dy*dy < r*r {
			return 0, false
		}
	}
	id := w.nextID
	w.nextID++
	w.particles = append(w.particles, Particle{
		ID:               id,
		Name:             material.Name(d),
		X:                x,
		Y:                y,
		Material:         material.Decode(d),
		DNA:              d,
		LastReaction:     w.now,
		LastDecayCheck:   w.now,
		LastHeatExchange: w.now,
	})
	w.stopped = false
	return id, true
}

// RandomMaterial draws a brush material from the world's random stream.
func (w *World) RandomMaterial() material.DNA { return material.Random(w.rng) }

// SelectNearest marks the particle closest to (x, y) as selected and clears
// every other selection. It returns false when the arena is empty.
func (w *World) SelectNearest(x, y float64) (uint64, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range w.particles {
		p := &w.particles[i]
		p.Selected = false
		dx := p.X - x
		dy := p.Y - y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	w.particles[best].Selected = true
	return w.particles[best].ID, true
}

// Selected returns a copy of the selected particle, if any.
func (w *World) Selected() (Particle, bool) {
	for i := range w.particles {
		if w.particles[i].Selected {
			return w.particles[i], true
		}
	}
	return Particle{}, false
}

// Lookup returns a copy of the particle with the given id.
func (w *World) Lookup(id uint64) (Particle, bool) {
	for i := range w.particles {
		if w.particles[i].ID == id {
			return w.particles[i], true
		}
	}
	return Particle{}, false
}

// Step advances one fixed time step. An idle world only applies pending
// reaction results until something wakes it.
func (w *World) Step() {
	if w.stopped {
		if w.applyReactions() > 0 {
			w.stopped = false
		}
		return
	}
	w.Tick(w.cfg.TimeStep)
}

// Tick advances the simulation by dt seconds: broad phase, state update,
// collisions, integration, then reaction results.
func (w *World) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	w.now += dt
	w.stats.Ticks++

	w.rebuildGrid()
	if w.updateStates(dt) {
		w.rebuildGrid()
	}
	w.resolveCollisions(dt)
	w.stopped = w.integrate(dt)
	w.applyReactions()
	w.warnDropped()
}

func (w *World) rebuildGrid() {
	w.grid.Rebuild(len(w.particles), func(i int) (float64, float64) {
		return w.particles[i].X, w.particles[i].Y
	})
}

func (w *World) warnDropped() {
	if w.now-w.lastDropWarn < 1 {
		return
	}
	dropped := w.pipeline.Stats().Dropped
	if dropped > w.droppedAtWarn {
		w.log.Warningf("reaction queue full: %d events dropped", dropped-w.droppedAtWarn)
		w.droppedAtWarn = dropped
		w.lastDropWarn = w.now
	}
}

// ScatterCount is the auto-spawn count of the "scatter" scene.
const ScatterCount = 300

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	core.Register("dots", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
	core.Register("scatter", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		if _, ok := cfg["spawn_count"]; !ok {
			c.Params.SpawnCount = ScatterCount
		}
		return NewWithConfig(c)
	})
}
