//go:build audio

package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Start opens the default output device and plays p's mix on it.
func Start(p *Player) error {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p)
	return nil
}

// Stop silences the output device.
func Stop() { speaker.Clear() }
