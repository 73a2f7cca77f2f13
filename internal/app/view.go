package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/layout"
	"github.com/llehouerou/chime/internal/ui/overlay"
	"github.com/llehouerou/chime/internal/ui/playerbar"
	"github.com/llehouerou/chime/internal/ui/render"
	"github.com/llehouerou/chime/internal/ui/styles"
	"github.com/llehouerou/chime/internal/ui/visualizer"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || m.quitting {
		return ""
	}

	var main string
	if m.miniMode {
		main = m.renderVisualizerPanel(m.width, m.mainHeight())
	} else {
		main = m.tracklist.View()
		if m.sideVisible() {
			main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderSide())
		}
	}

	view := main
	if m.status.Err != "" {
		view += "\n" + m.renderError()
	}
	view += "\n" + playerbar.Render(playerbar.NewState(m.status), m.width)

	if m.showHelp {
		help := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
		view = overlay.Compose(view, help, m.width)
	}

	return view
}

// renderSide stacks the track info panel over the visualizer.
func (m Model) renderSide() string {
	_, vizHeight := layout.SideHeights(m.mainHeight())
	if vizHeight == 0 {
		return m.trackinfo.View()
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.trackinfo.View(),
		m.renderVisualizerPanel(ui.SidePanelWidth, vizHeight),
	)
}

// renderVisualizerPanel wraps the visualizer in a panel titled with the
// active mode.
func (m Model) renderVisualizerPanel(width, height int) string {
	innerWidth := width - 2
	innerHeight := height - ui.BorderHeight - 1 // border plus title line
	if innerWidth < 1 || innerHeight < 1 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Border)
	title := render.Pad(titleStyle.Render(m.status.Visualizer.Label()), innerWidth)
	content := title + "\n" + visualizer.Render(m.spectrum, innerWidth, innerHeight)

	return styles.PanelStyle(false).Width(innerWidth).Render(content)
}

// renderError renders the most recent playback failure as a full-width
// line above the player bar.
func (m Model) renderError() string {
	return styles.T().S().Error.Render(render.Fit(" "+m.status.Err, m.width))
}
