package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/spectrum"
	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/action"
	"github.com/llehouerou/chime/internal/ui/helpbindings"
	"github.com/llehouerou/chime/internal/ui/layout"
	"github.com/llehouerou/chime/internal/ui/styles"
	"github.com/llehouerou/chime/internal/ui/tracklist"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case statusMsg:
		m.applyStatus(playback.Status(msg))
		return m, waitForStatus(m.sub)

	case spectrumMsg:
		m.spectrum = spectrum.Snapshot(msg)
		return m, waitForSpectrum(m.sub)

	case engineDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case action.Msg:
		return m.handleAction(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// applyStatus folds an engine snapshot into the components.
func (m *Model) applyStatus(st playback.Status) {
	if st.Theme != m.status.Theme {
		styles.Set(st.Theme)
	}
	errChanged := (st.Err != "") != (m.status.Err != "")
	m.status = st

	if st.Track != nil {
		m.tracklist.SetPlaying(st.Track.ID)
	} else {
		m.tracklist.SetPlaying(-1)
	}
	m.trackinfo.SetTrack(st.Track)

	// The analyzer stops emitting frames in off mode, so the last frame
	// would otherwise linger on screen.
	if st.Visualizer == spectrum.ModeOff && m.spectrum.Mode != spectrum.ModeOff {
		m.spectrum = spectrum.Snapshot{Mode: spectrum.ModeOff}
	}

	// The error line appears and disappears with the error, shifting the
	// space left for the panels.
	if errChanged {
		m.resize()
	}
}

// handleAction routes actions emitted by components.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case tracklist.TrackSelected:
		m.engine.Enqueue(playback.SelectTrack{ID: a.ID})
	case helpbindings.Close:
		m.showHelp = false
	}
	return m, nil
}

// resize recomputes component sizes from the window and current state.
func (m *Model) resize() {
	mainHeight := m.mainHeight()

	m.tracklist.SetSize(layout.ListWidth(m.width, m.sideVisible()), mainHeight)

	infoHeight, _ := layout.SideHeights(mainHeight)
	m.trackinfo.SetSize(ui.SidePanelWidth, infoHeight)
	m.help.SetSize(m.width, m.height)
}

// mainHeight is the vertical space left for the panels above the player
// bar and the error line.
func (m Model) mainHeight() int {
	return layout.MainHeight(m.height, m.status.Err != "")
}

// sideVisible reports whether the side column fits the current layout.
func (m Model) sideVisible() bool {
	return layout.SideVisible(m.width, m.showSide, m.miniMode)
}
