// Package tracklist provides the scrollable, filterable library list that
// fills the main panel.
package tracklist

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/cursor"
)

// Model is the track list state.
type Model struct {
	ui.Base

	lib     *library.Library
	visible []library.Track // tracks matching the current filter, play order

	cursor cursor.Cursor

	filter     textinput.Model
	filterMode bool // true while the user is typing in the filter field

	playingID int // -1 when nothing is loaded
}

// New creates a track list over the full library.
func New(lib *library.Library) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "title, artist or album"
	ti.CharLimit = 128

	return Model{
		lib:       lib,
		visible:   lib.Tracks(),
		cursor:    cursor.New(ui.ScrollMargin),
		filter:    ti,
		playingID: -1,
	}
}

// SetSize updates the dimensions and keeps the cursor on screen.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.filter.Width = max(width-8, 10)
	m.cursor.EnsureVisible(len(m.visible), m.listHeight())
}

// SetPlaying marks the track highlighted as currently loaded. Pass -1 to
// clear the highlight.
func (m *Model) SetPlaying(id int) {
	m.playingID = id
}

// Filtering returns true while the filter field has key focus. Global
// shortcuts must stay inactive so typing "s" filters instead of toggling
// shuffle.
func (m Model) Filtering() bool {
	return m.filterMode
}

// SelectedTrack returns the track under the cursor, or nil.
func (m Model) SelectedTrack() *library.Track {
	if len(m.visible) == 0 {
		return nil
	}
	t := m.visible[m.cursor.Pos()]
	return &t
}

// JumpToTrack moves the cursor to the given track ID if it is visible.
func (m *Model) JumpToTrack(id int) {
	for i := range m.visible {
		if m.visible[i].ID == id {
			m.cursor.Jump(i, len(m.visible), m.listHeight())
			return
		}
	}
}

// applyFilter rebuilds the visible slice from the current query.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.lib.Tracks()
	} else {
		filtered := make([]library.Track, 0, m.lib.Len())
		for _, t := range m.lib.Tracks() {
			if matchesQuery(t, query) {
				filtered = append(filtered, t)
			}
		}
		m.visible = filtered
	}
	m.cursor.ClampToBounds(len(m.visible))
	m.cursor.EnsureVisible(len(m.visible), m.listHeight())
}

func matchesQuery(t library.Track, query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Artist), query) ||
		strings.Contains(strings.ToLower(t.Album), query)
}

// listHeight returns the number of track rows that fit in the panel.
func (m Model) listHeight() int {
	return max(m.ListHeight(ui.PanelOverhead), 1)
}
