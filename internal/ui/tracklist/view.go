package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/chime/internal/icons"
	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/ui/render"
	"github.com/llehouerou/chime/internal/ui/styles"
)

// View renders the track list panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	innerWidth := m.Width() - 2

	borderColor := t.Border
	if m.IsFocused() {
		borderColor = t.BorderFocus
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	titleLine := render.Pad(titleStyle.Render("Library"), innerWidth)

	rows := m.renderRows(innerWidth, m.listHeight())
	content := titleLine + "\n" + m.renderHeader(innerWidth) + "\n" + strings.Join(rows, "\n")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders the filter field or a track count summary.
func (m Model) renderHeader(width int) string {
	if m.filterMode {
		return m.filter.View()
	}
	s := styles.T().S()
	if q := m.filter.Value(); q != "" {
		summary := fmt.Sprintf("%d/%d tracks · /%s", len(m.visible), m.lib.Len(), q)
		return s.Accent.Render(render.Fit(summary, width))
	}
	return s.Subtle.Render(render.Fit(fmt.Sprintf("%d tracks", m.lib.Len()), width))
}

// renderRows renders the visible window of the list, padded to full height.
func (m Model) renderRows(width, height int) []string {
	lines := make([]string, height)
	start, _ := m.cursor.VisibleRange(len(m.visible), height)
	for i := range height {
		idx := start + i
		if idx >= len(m.visible) {
			lines[i] = render.Pad("", width)
			continue
		}
		lines[i] = m.renderRow(m.visible[idx], idx == m.cursor.Pos(), width)
	}
	if len(m.visible) == 0 && height > 0 {
		lines[0] = styles.T().S().Subtle.Render(render.Fit("  no matching tracks", width))
	}
	return lines
}

// renderRow lays a track out as cursor/playing prefix, title, artist and a
// right-aligned duration, exactly width columns wide.
func (m Model) renderRow(t library.Track, isCursor bool, width int) string {
	prefix := "  "
	switch {
	case isCursor:
		prefix = "> "
	case t.ID == m.playingID:
		prefix = render.Pad(icons.Audio(), 2)
	}

	dur := render.Clock(t.Duration)
	avail := width - 2 - lipgloss.Width(dur) - 1
	if avail < 4 {
		return m.styleRow(render.Fit(prefix+t.Title, width), t, isCursor)
	}

	titleWidth := avail * 3 / 5
	artistWidth := avail - titleWidth - 1
	line := prefix +
		render.Fit(t.Title, titleWidth) + " " +
		render.Fit(t.Artist, artistWidth) + " " + dur

	return m.styleRow(line, t, isCursor)
}

func (m Model) styleRow(line string, t library.Track, isCursor bool) string {
	s := styles.T().S()
	switch {
	case isCursor && m.IsFocused():
		return s.Cursor.Render(line)
	case t.ID == m.playingID:
		return s.Playing.Render(line)
	default:
		return s.Base.Render(line)
	}
}
