//go:build !linux

// Package mpris exposes playback control to desktop environments over
// D-Bus via the org.mpris.MediaPlayer2 interfaces.
package mpris

import "github.com/llehouerou/chime/internal/playback"

// Adapter is a no-op off Linux; MPRIS is a D-Bus interface.
type Adapter struct{}

// New returns a no-op adapter.
func New(_ *playback.Engine) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op.
func (a *Adapter) Close() error {
	return nil
}
