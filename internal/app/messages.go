package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/spectrum"
)

// statusMsg carries an engine snapshot into the UI loop.
type statusMsg playback.Status

// spectrumMsg carries a visualizer frame into the UI loop.
type spectrumMsg spectrum.Snapshot

// engineDoneMsg reports that the engine has shut down.
type engineDoneMsg struct{}

// waitForStatus blocks until the engine publishes its next snapshot.
func waitForStatus(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case st := <-sub.Status:
			return statusMsg(st)
		case <-sub.Done:
			return engineDoneMsg{}
		}
	}
}

// waitForSpectrum blocks until the next visualizer frame.
func waitForSpectrum(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-sub.Spectrum:
			return spectrumMsg(snap)
		case <-sub.Done:
			return engineDoneMsg{}
		}
	}
}
