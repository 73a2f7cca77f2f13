// Package playerbar renders the bottom transport bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/chime/internal/icons"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/render"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// State holds everything needed to render the player bar.
type State struct {
	Playing        bool
	Paused         bool
	Title          string
	Artist         string
	Album          string
	QueueIndex     int
	QueueLen       int
	Position       time.Duration
	Duration       time.Duration
	Volume         float64
	Speed          float64
	Shuffle        bool
	Repeat         playback.RepeatMode
	SleepRemaining time.Duration
}

// NewState builds a bar State from a playback status snapshot.
func NewState(st playback.Status) State {
	s := State{
		Playing:        st.Transport == playback.StatePlaying,
		Paused:         st.Transport == playback.StatePaused,
		QueueIndex:     st.QueueIndex,
		QueueLen:       st.QueueLen,
		Position:       st.Position,
		Duration:       st.Duration,
		Volume:         st.Volume,
		Speed:          st.Speed,
		Shuffle:        st.Shuffle,
		Repeat:         st.Repeat,
		SleepRemaining: st.SleepRemaining,
	}
	if st.Track != nil {
		s.Title = st.Track.Title
		s.Artist = st.Track.Artist
		s.Album = st.Track.Album
	}
	return s
}

// Render returns the player bar for the given terminal width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)

	var content string
	if !s.Playing && !s.Paused {
		content = renderStopped(s, innerWidth)
	} else {
		content = renderPlaying(s, innerWidth)
	}

	// Hard cap so the bar never wraps on narrow terminals.
	if lipgloss.Width(content) > innerWidth {
		content = ansi.Truncate(content, innerWidth, "…")
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(content)
}

func renderStopped(s State, innerWidth int) string {
	left := metaStyle().Render(stopSymbol + "  Nothing playing")
	right := renderVolume(s.Volume)
	return render.Row(left, right, innerWidth)
}

func renderPlaying(s State, innerWidth int) string {
	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}

	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := strings.Join(infoParts, " · ")

	var queuePos string
	if s.QueueIndex >= 0 && s.QueueLen > 0 {
		queuePos = fmt.Sprintf("%d/%d", s.QueueIndex+1, s.QueueLen)
	}

	indicators := renderIndicators(s)
	timeStr := render.Clock(s.Position) + " / " + render.Clock(s.Duration)
	volume := renderVolume(s.Volume)

	separator := "   "
	sepWidth := lipgloss.Width(separator)

	// Fixed-width pieces: status, queue position, indicators, times, volume.
	fixed := lipgloss.Width(status) + 2 + // status + gap before bar
		lipgloss.Width(timeStr) + sepWidth +
		lipgloss.Width(volume) + sepWidth
	if queuePos != "" {
		fixed += lipgloss.Width(queuePos) + sepWidth
	}
	if indicators != "" {
		fixed += lipgloss.Width(indicators) + sepWidth
	}

	// Title and info share what the progress bar does not need.
	available := innerWidth - fixed - ui.MinProgressBarWidth - sepWidth
	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	var styledTitle, styledInfo string
	var usedWidth int
	switch {
	case titleWidth+sepWidth+infoWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		usedWidth = titleWidth + sepWidth + infoWidth
	case titleWidth+sepWidth < available && info != "":
		maxInfo := available - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.Truncate(info, maxInfo))
		usedWidth = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(available, 10)
		truncated := render.Truncate(title, maxTitle)
		styledTitle = titleStyle().Render(truncated)
		usedWidth = lipgloss.Width(truncated)
	}

	barWidth := max(innerWidth-usedWidth-fixed-sepWidth, ui.MinProgressBarWidth)
	bar := renderProgress(s.Position, s.Duration, barWidth)

	var b strings.Builder
	b.WriteString(styledTitle)
	if styledInfo != "" {
		b.WriteString(separator)
		b.WriteString(styledInfo)
	}
	if queuePos != "" {
		b.WriteString(separator)
		b.WriteString(metaStyle().Render(queuePos))
	}
	if indicators != "" {
		b.WriteString(separator)
		b.WriteString(indicators)
	}
	b.WriteString(separator)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(bar)
	b.WriteString(separator)
	b.WriteString(timeStyle().Render(timeStr))
	b.WriteString(separator)
	b.WriteString(volume)

	return b.String()
}

// renderIndicators builds the shuffle/repeat/speed/sleep cluster. Inactive
// modes render nothing.
func renderIndicators(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, accentStyle().Render(icons.Shuffle()))
	}
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, accentStyle().Render(icons.RepeatAll()))
	case playback.RepeatOne:
		parts = append(parts, accentStyle().Render(icons.RepeatOne()))
	case playback.RepeatOff:
	}
	if s.Speed != 0 && s.Speed != 1.0 {
		parts = append(parts, accentStyle().Render(fmt.Sprintf("×%g", s.Speed)))
	}
	if s.SleepRemaining > 0 {
		parts = append(parts, accentStyle().Render(icons.Sleep()+render.Clock(s.SleepRemaining)))
	}
	return strings.Join(parts, " ")
}

func renderProgress(position, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(width)*ratio), width)
	return progressFilled().Render(strings.Repeat("━", filled)) +
		progressEmpty().Render(strings.Repeat("─", width-filled))
}

func renderVolume(volume float64) string {
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", icons.Volume(), int(volume*100)))
}
