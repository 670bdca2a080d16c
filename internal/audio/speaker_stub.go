//go:build !audio

package audio

import "errors"

// ErrNoAudio reports a binary built without the audio tag.
var ErrNoAudio = errors.New("audio output requires building with the 'audio' tag")

// Start reports ErrNoAudio in builds without speaker support.
func Start(*Player) error { return ErrNoAudio }

// Stop is a no-op without speaker support.
func Stop() {}
