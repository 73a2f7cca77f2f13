package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/chime/internal/app/handler"
	"github.com/llehouerou/chime/internal/keymap"
	"github.com/llehouerou/chime/internal/playback"
)

// handleKeyMsg dispatches a key press. The help overlay and the filter
// field take every key while open; everything else goes through the
// resolver and falls back to list navigation.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.tracklist.Filtering() {
		var cmd tea.Cmd
		m.tracklist, cmd = m.tracklist.Update(msg)
		return m, cmd
	}

	act := m.keys.Resolve(msg.String())
	res := handler.Chain(
		func() handler.Result { return m.handleGlobalAction(act) },
		func() handler.Result { return m.handlePlaybackAction(act) },
	)
	if res.Handled {
		return m, res.Cmd
	}

	var cmd tea.Cmd
	m.tracklist, cmd = m.tracklist.Update(msg)
	return m, cmd
}

// handleGlobalAction handles quit and the UI toggles.
func (m *Model) handleGlobalAction(act keymap.Action) handler.Result {
	switch act { //nolint:exhaustive // only global actions here
	case keymap.ActionQuit:
		// The engine confirms shutdown by closing the subscription, which
		// surfaces as engineDoneMsg and quits the program.
		m.engine.Enqueue(playback.Quit{})
		return handler.HandledNoCmd
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.Reset()
		return handler.HandledNoCmd
	case keymap.ActionInfo:
		m.showSide = !m.showSide
		m.resize()
		return handler.HandledNoCmd
	case keymap.ActionMiniMode:
		m.miniMode = !m.miniMode
		m.resize()
		return handler.HandledNoCmd
	case keymap.ActionCycleTheme:
		m.engine.Enqueue(playback.CycleTheme{})
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handlePlaybackAction maps playback actions onto engine commands.
func (m *Model) handlePlaybackAction(act keymap.Action) handler.Result {
	switch act { //nolint:exhaustive // only playback actions here
	case keymap.ActionPlayPause:
		m.engine.Enqueue(playback.TogglePlay{})
	case keymap.ActionNextTrack:
		m.engine.Enqueue(playback.Next{})
	case keymap.ActionPrevTrack:
		m.engine.Enqueue(playback.Previous{})
	case keymap.ActionSeekForward:
		m.engine.Enqueue(playback.SeekRelative{Delta: m.seekStep()})
	case keymap.ActionSeekBack:
		m.engine.Enqueue(playback.SeekRelative{Delta: -m.seekStep()})
	case keymap.ActionVolumeUp:
		m.engine.Enqueue(playback.VolumeDelta{Delta: m.cfg.VolumeStep})
	case keymap.ActionVolumeDown:
		m.engine.Enqueue(playback.VolumeDelta{Delta: -m.cfg.VolumeStep})
	case keymap.ActionSpeedUp:
		m.engine.Enqueue(playback.SpeedDelta{Delta: speedStep})
	case keymap.ActionSpeedDown:
		m.engine.Enqueue(playback.SpeedDelta{Delta: -speedStep})
	case keymap.ActionToggleShuffle:
		m.engine.Enqueue(playback.ToggleShuffle{})
	case keymap.ActionCycleRepeat:
		m.engine.Enqueue(playback.CycleRepeat{})
	case keymap.ActionCycleVisualizer:
		m.engine.Enqueue(playback.CycleVisualizer{})
	case keymap.ActionToggleSleep:
		m.engine.Enqueue(playback.CycleSleepTimer{})
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m Model) seekStep() time.Duration {
	return time.Duration(m.cfg.SeekStepSeconds) * time.Second
}
