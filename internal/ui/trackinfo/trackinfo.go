// Package trackinfo renders a metadata panel for the track under the cursor.
package trackinfo

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/render"
	"github.com/llehouerou/chime/internal/ui/styles"
)

// labelWidth is the fixed width of the label column.
const labelWidth = 8

// Model is the track info panel state.
type Model struct {
	ui.Base
	track *library.Track
}

// New creates an empty info panel.
func New() Model {
	return Model{}
}

// SetTrack sets the track whose metadata is shown. Pass nil to clear.
func (m *Model) SetTrack(t *library.Track) {
	m.track = t
}

// View renders the panel.
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

	lines := []string{render.Pad(titleStyle.Render("Track"), innerWidth), ""}
	lines = append(lines, m.infoLines(innerWidth)...)

	// pad to the panel height so the border stays put
	for len(lines) < m.Height()-2 {
		lines = append(lines, "")
	}
	if maxLines := m.Height() - 2; len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

func (m Model) infoLines(width int) []string {
	if m.track == nil {
		return []string{styles.T().S().Subtle.Render(" no track selected")}
	}
	tr := m.track

	album := tr.Album
	if tr.Year > 0 {
		album = fmt.Sprintf("%s (%d)", album, tr.Year)
	}

	lines := []string{
		infoRow("Title", tr.Title, width),
		infoRow("Artist", tr.Artist, width),
		infoRow("Album", album, width),
	}
	if tr.Genre != "" {
		lines = append(lines, infoRow("Genre", tr.Genre, width))
	}
	if tr.TrackNumber > 0 {
		lines = append(lines, infoRow("Track", strconv.Itoa(tr.TrackNumber), width))
	}
	lines = append(lines,
		infoRow("Length", render.Clock(tr.Duration), width),
		infoRow("Format", strings.ToUpper(tr.Format), width),
	)
	if tr.SizeBytes > 0 {
		//nolint:gosec // SizeBytes is guaranteed non-negative above
		lines = append(lines, infoRow("Size", humanize.IBytes(uint64(tr.SizeBytes)), width))
	}
	lines = append(lines, infoRow("File", filepath.Base(tr.Path), width))

	return lines
}

// infoRow renders a muted label column followed by the value.
func infoRow(label, value string, width int) string {
	s := styles.T().S()
	return s.Muted.Render(render.Pad(" "+label, labelWidth)) +
		s.Base.Render(render.Truncate(value, max(width-labelWidth, 0)))
}
