package tracklist

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.filterMode {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "/":
		m.filterMode = true
		m.filter.Focus()
		return m, nil

	case "enter":
		if t := m.SelectedTrack(); t != nil {
			id := t.ID
			return m, func() tea.Msg { return ActionMsg(TrackSelected{ID: id}) }
		}
		return m, nil

	case "esc":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		return m, nil

	default:
		m.cursor.HandleKey(key, len(m.visible), m.listHeight())
		return m, nil
	}
}

// handleFilterKey routes keys while the filter field is focused. The list
// narrows on every keystroke; enter keeps the filter, esc drops it.
func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case "enter":
		m.filterMode = false
		m.filter.Blur()
		return m, nil

	case "up", "down":
		m.cursor.HandleKey(msg.String(), len(m.visible), m.listHeight())
		return m, nil

	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
}
