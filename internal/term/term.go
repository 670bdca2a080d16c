// Package term draws a dots world into a tcell screen and maps keyboard and
// mouse events onto world actions.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"dotlab/internal/core"
	"dotlab/internal/material"
	"dotlab/internal/render"
	"dotlab/internal/sims/dots"
	"dotlab/internal/ui"
)

// World is what the terminal front end needs from the engine.
type World interface {
	core.Sim
	Snapshot(dst []dots.DotView) []dots.DotView
	Spawn(x, y float64, d material.DNA) (uint64, bool)
	RandomMaterial() material.DNA
	SelectNearest(x, y float64) (uint64, bool)
	Clear()
	Stats() dots.Stats
	Now() float64
}

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	background = tcell.NewRGBColor(int32(render.Background.R), int32(render.Background.G), int32(render.Background.B))
	baseStyle  = tcell.StyleDefault.Background(background).Foreground(tcell.ColorSilver)
)

// phaseRune picks a glyph per phase so states read without colour.
func phaseRune(p material.Phase) rune {
	switch p {
	case material.Liquid:
		return '▓'
	case material.Gas:
		return '░'
	default:
		return '█'
	}
}

// View renders a world into a screen. The arena is scaled to fill every row
// but the last, which holds the status line.
type View struct {
	screen   tcell.Screen
	world    World
	controls *ui.Controls
	views    []dots.DotView

	brush    material.DNA
	selected int
	paused   bool
	seed     int64
}

// NewView binds world to screen.
func NewView(screen tcell.Screen, world World, seed int64) *View {
	return &View{
		screen:   screen,
		world:    world,
		controls: ui.NewControls(world),
		brush:    world.RandomMaterial(),
		seed:     seed,
	}
}

// Paused reports whether stepping is suspended.
func (v *View) Paused() bool { return v.paused }

// arena returns the number of terminal columns and rows used by the arena.
func (v *View) arena() (int, int) {
	w, h := v.screen.Size()
	return w, max(h-1, 1)
}

// toWorld maps a terminal cell to arena coordinates at the cell centre.
func (v *View) toWorld(col, row int) (float64, float64) {
	cols, rows := v.arena()
	size := v.world.Size()
	return (float64(col) + 0.5) * float64(size.W) / float64(cols),
		(float64(row) + 0.5) * float64(size.H) / float64(rows)
}

// toCell maps arena coordinates to a terminal cell.
func (v *View) toCell(x, y float64) (int, int) {
	cols, rows := v.arena()
	size := v.world.Size()
	col := int(x * float64(cols) / float64(size.W))
	row := int(y * float64(rows) / float64(size.H))
	return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
}

// Draw paints the arena and status line and shows the frame.
func (v *View) Draw() {
	v.screen.Fill(' ', baseStyle)
	v.views = v.world.Snapshot(v.views[:0])
	for i := range v.views {
		d := &v.views[i]
		col, row := v.toCell(d.X, d.Y)
		c := render.DotColor(*d)
		style := baseStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if d.Selected {
			style = style.Reverse(true)
		}
		v.screen.SetContent(col, row, phaseRune(d.Phase), nil, style)
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *View) drawStatus() {
	w, h := v.screen.Size()
	s := v.world.Stats()
	state := "run"
	if v.paused {
		state = "pause"
	}
	line := fmt.Sprintf(" %s %5.1fs dots:%d react:%d boom:%d [%s]", v.world.Name(), v.world.Now(), s.Live, s.Changed, s.Explosions, state)
	if v.selected < len(v.controls.Items) {
		item := v.controls.Items[v.selected]
		line += fmt.Sprintf(" %s=%s", item.Spec.Label, item.Value)
	}
	if lines := ui.InspectLines(v.world); len(lines) > 1 {
		line += " | " + lines[0] + " " + lines[1]
	}
	status := baseStyle.Reverse(true)
	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		v.screen.SetContent(col, h-1, r, nil, status)
		col++
	}
	for ; col < w; col++ {
		v.screen.SetContent(col, h-1, ' ', nil, status)
	}
}

// Handle applies one input event. It returns false when the user asked to
// quit.
func (v *View) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		col, row := ev.Position()
		if _, rows := v.arena(); row >= rows {
			return true
		}
		x, y := v.toWorld(col, row)
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			v.world.Spawn(x, y, v.brush)
		case ev.Buttons()&tcell.Button2 != 0:
			v.world.SelectNearest(x, y)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		if n := len(v.controls.Items); n > 0 {
			v.selected = (v.selected + 1) % n
		}
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.world.Step()
	case 'r':
		v.world.Reset(v.seed)
	case 's':
		v.seed = time.Now().UnixNano()
		v.world.Reset(v.seed)
	case 'c':
		v.world.Clear()
	case 'b':
		v.brush = v.world.RandomMaterial()
	case '+', '=':
		v.adjust(1)
	case '-':
		v.adjust(-1)
	}
	return true
}

func (v *View) adjust(direction int) {
	if provider, ok := v.world.(parameterProvider); ok {
		v.controls.Refresh(provider.Parameters())
	}
	v.controls.Adjust(v.selected, direction)
}

// Run drives the view until ctx ends or the user quits. Input is polled on
// its own goroutine; stepping and drawing happen on the caller's.
func (v *View) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	v.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			if !v.paused {
				v.world.Step()
			}
			if provider, ok := v.world.(parameterProvider); ok {
				v.controls.Refresh(provider.Parameters())
			}
			v.Draw()
		}
	}
}
