package app

import (
	"math"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/chime/internal/config"
	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/player"
	"github.com/llehouerou/chime/internal/spectrum"
	"github.com/llehouerou/chime/internal/ui"
	"github.com/llehouerou/chime/internal/ui/action"
	"github.com/llehouerou/chime/internal/ui/layout"
	"github.com/llehouerou/chime/internal/ui/styles"
	"github.com/llehouerou/chime/internal/ui/tracklist"
)

func testConfig() *config.Config {
	return &config.Config{
		Volume:          0.8,
		VolumeStep:      0.05,
		SeekStepSeconds: 5,
		Theme:           "default",
		Visualizer:      "bars",
		IconStyle:       "none",
		Port:            8080,
	}
}

// testLibrary returns three tracks whose play order is Dawn (0), Dusk
// (1), Echo (2).
func testLibrary() *library.Library {
	return library.New([]library.Track{
		{Path: "/music/dawn.flac", Title: "Dawn", Artist: "Alpha", Album: "First", TrackNumber: 1, Duration: 3 * time.Minute, Format: "flac"},
		{Path: "/music/dusk.flac", Title: "Dusk", Artist: "Alpha", Album: "First", TrackNumber: 2, Duration: 4 * time.Minute, Format: "flac"},
		{Path: "/music/echo.mp3", Title: "Echo", Artist: "Beta", Album: "Second", TrackNumber: 1, Duration: 2 * time.Minute, Format: "mp3"},
	})
}

// startApp runs a real engine over a mock player and returns a model
// that has seen the initial snapshot and a 120x40 window. Call
// quitEngine before the bubble ends.
func startApp(t *testing.T) (Model, *playback.Engine, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	p.SetDuration(3 * time.Minute)
	lib := testLibrary()
	e := playback.New(p, lib, nil, playback.Options{Volume: 0.8, Theme: "default"})
	m := New(testConfig(), e, lib)
	go e.Run()
	synctest.Wait()

	m = resizeApp(m, 120, 40)
	return pump(t, m), e, p
}

func quitEngine(t *testing.T, e *playback.Engine) {
	t.Helper()
	e.Enqueue(playback.Quit{})
	select {
	case <-e.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for engine shutdown")
	}
}

func resizeApp(m Model, width, height int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(Model)
}

// pump applies every queued subscription message to the model.
func pump(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case st := <-m.sub.Status:
			next, _ := m.Update(statusMsg(st))
			m = next.(Model)
		case snap := <-m.sub.Spectrum:
			next, _ := m.Update(spectrumMsg(snap))
			m = next.(Model)
		default:
			return m
		}
	}
}

// press sends a key, lets the engine settle and applies the resulting
// snapshots. The command returned by Update is dropped; tests that need
// it call Update directly.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	synctest.Wait()
	return pump(t, next.(Model))
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

// --- construction ---

func TestNew_Defaults(t *testing.T) {
	lib := testLibrary()
	e := playback.New(player.NewMock(), lib, nil, playback.Options{})
	m := New(testConfig(), e, lib)

	if m.sub == nil {
		t.Fatal("expected a live subscription")
	}
	if !m.showSide {
		t.Error("side column should start visible")
	}
	if m.showHelp || m.miniMode || m.quitting {
		t.Error("overlay flags should start clear")
	}
	if m.Init() == nil {
		t.Error("Init should arm the subscription pumps")
	}
}

// --- layout ---

func TestResize_SplitLayout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		if got := m.tracklist.Width(); got != 120-ui.SidePanelWidth {
			t.Errorf("tracklist width = %d, want %d", got, 120-ui.SidePanelWidth)
		}
		if got := m.tracklist.Height(); got != 40-ui.PlayerBarHeight {
			t.Errorf("tracklist height = %d, want %d", got, 40-ui.PlayerBarHeight)
		}
		if got := m.trackinfo.Width(); got != ui.SidePanelWidth {
			t.Errorf("trackinfo width = %d, want %d", got, ui.SidePanelWidth)
		}
		if got := m.trackinfo.Height(); got != layout.TrackInfoHeight {
			t.Errorf("trackinfo height = %d, want %d", got, layout.TrackInfoHeight)
		}

		quitEngine(t, e)
	})
}

func TestResize_NarrowDropsSideColumn(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = resizeApp(m, 80, 30)

		if m.sideVisible() {
			t.Error("side column should be hidden below the split width")
		}
		if got := m.tracklist.Width(); got != 80 {
			t.Errorf("tracklist width = %d, want full 80", got)
		}
		if view := ansi.Strip(m.View()); strings.Contains(view, "Spectrum") {
			t.Error("narrow view should not render the visualizer panel")
		}

		quitEngine(t, e)
	})
}

func TestView_FillsTerminalExactly(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		lines := viewLines(m)
		if len(lines) != 40 {
			t.Fatalf("view has %d lines, want 40", len(lines))
		}
		for i, line := range lines {
			if w := ansi.StringWidth(line); w != 120 {
				t.Errorf("line %d width = %d, want 120", i, w)
			}
		}

		quitEngine(t, e)
	})
}

// --- playback keys ---

func TestKeys_SpaceTogglesPlayback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, p := startApp(t)

		m = press(t, m, "space")
		if m.status.Transport != playback.StatePlaying {
			t.Fatalf("Transport = %v, want Playing", m.status.Transport)
		}
		if m.status.Track == nil || m.status.Track.Title != "Dawn" {
			t.Fatalf("Track = %+v, want Dawn", m.status.Track)
		}
		if p.State() != player.Playing {
			t.Errorf("player state = %v, want Playing", p.State())
		}

		m = press(t, m, "space")
		if m.status.Transport != playback.StatePaused {
			t.Errorf("Transport = %v, want Paused", m.status.Transport)
		}

		quitEngine(t, e)
	})
}

func TestKeys_NextAndPrevious(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "space")
		m = press(t, m, "n")
		if m.status.Track == nil || m.status.Track.Title != "Dusk" {
			t.Fatalf("Track = %+v, want Dusk after next", m.status.Track)
		}

		m = press(t, m, "p")
		if m.status.Track == nil || m.status.Track.Title != "Dawn" {
			t.Errorf("Track = %+v, want Dawn after previous", m.status.Track)
		}

		quitEngine(t, e)
	})
}

func TestKeys_SeekUsesConfiguredStep(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, p := startApp(t)

		m = press(t, m, "space")
		m = press(t, m, "right")
		m = press(t, m, "left")

		calls := p.SeekCalls()
		if len(calls) != 2 || calls[0] != 5*time.Second || calls[1] != -5*time.Second {
			t.Errorf("SeekCalls() = %v, want [5s -5s]", calls)
		}

		quitEngine(t, e)
	})
}

func TestKeys_VolumeAndSpeed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "+")
		if math.Abs(m.status.Volume-0.85) > 1e-9 {
			t.Errorf("Volume = %v, want 0.85", m.status.Volume)
		}
		m = press(t, m, "-")
		if math.Abs(m.status.Volume-0.8) > 1e-9 {
			t.Errorf("Volume = %v, want 0.8", m.status.Volume)
		}

		m = press(t, m, ">")
		if m.status.Speed != 1.25 {
			t.Errorf("Speed = %v, want 1.25", m.status.Speed)
		}
		m = press(t, m, "<")
		if m.status.Speed != 1.0 {
			t.Errorf("Speed = %v, want 1.0", m.status.Speed)
		}

		quitEngine(t, e)
	})
}

func TestKeys_ModeToggles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Cleanup(func() { styles.Set("default") })
		m, e, _ := startApp(t)

		m = press(t, m, "s")
		if !m.status.Shuffle {
			t.Error("expected shuffle on")
		}
		m = press(t, m, "r")
		if m.status.Repeat != playback.RepeatAll {
			t.Errorf("Repeat = %v, want All", m.status.Repeat)
		}
		m = press(t, m, "v")
		if m.status.Visualizer != spectrum.ModeWaveform {
			t.Errorf("Visualizer = %v, want waveform", m.status.Visualizer)
		}
		m = press(t, m, "T")
		if m.status.Theme != "dracula" {
			t.Errorf("Theme = %q, want dracula", m.status.Theme)
		}
		if styles.T().Name != "dracula" {
			t.Errorf("active style theme = %q, want dracula", styles.T().Name)
		}
		m = press(t, m, "t")
		if m.status.SleepRemaining <= 0 {
			t.Error("expected an armed sleep timer")
		}

		quitEngine(t, e)
	})
}

// --- quitting ---

func TestKeys_QuitShutsDownEngine(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		next, _ := m.Update(keyMsg("q"))
		m = next.(Model)

		select {
		case <-e.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not shut down after q")
		}

		// The pump turns the closed subscription into a quit.
		msg := waitForStatus(m.sub)()
		if _, ok := msg.(engineDoneMsg); !ok {
			t.Fatalf("pump returned %T, want engineDoneMsg", msg)
		}
		next, cmd := m.Update(msg)
		m = next.(Model)
		if !m.quitting {
			t.Error("model should be quitting")
		}
		if cmd == nil {
			t.Fatal("expected tea.Quit")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.Quit command")
		}
		if m.View() != "" {
			t.Error("quitting model should render nothing")
		}
	})
}

// --- help overlay ---

func TestHelp_OpensAndTakesKeys(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "?")
		if !m.showHelp {
			t.Fatal("expected help overlay open")
		}
		if view := ansi.Strip(m.View()); !strings.Contains(view, "Play/pause") {
			t.Error("help overlay should list bindings")
		}

		// q closes the overlay instead of quitting.
		next, cmd := m.Update(keyMsg("q"))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("expected a close action from the overlay")
		}
		next, _ = m.Update(cmd())
		m = next.(Model)
		if m.showHelp {
			t.Error("help should be closed")
		}
		select {
		case <-e.Done():
			t.Fatal("q inside the overlay must not quit the app")
		default:
		}

		quitEngine(t, e)
	})
}

// --- filter mode ---

func TestFilter_CapturesPlaybackKeys(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "/")
		if !m.tracklist.Filtering() {
			t.Fatal("expected filter mode")
		}

		// n goes into the query instead of skipping tracks.
		m = press(t, m, "n")
		if m.status.Track != nil {
			t.Error("typing in the filter must not reach playback")
		}
		if !m.tracklist.Filtering() {
			t.Error("filter mode should survive typing")
		}

		m = press(t, m, "esc")
		if m.tracklist.Filtering() {
			t.Error("esc should leave filter mode")
		}

		quitEngine(t, e)
	})
}

// --- selection ---

func TestKeys_EnterPlaysCursorTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, p := startApp(t)

		m = press(t, m, "j") // cursor on Dusk
		next, cmd := m.Update(keyMsg("enter"))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("enter should emit a selection action")
		}

		next, _ = m.Update(cmd())
		synctest.Wait()
		m = pump(t, next.(Model))

		if m.status.Track == nil || m.status.Track.Title != "Dusk" {
			t.Fatalf("Track = %+v, want Dusk", m.status.Track)
		}
		calls := p.PlayCalls()
		if len(calls) != 1 || calls[0] != "/music/dusk.flac" {
			t.Errorf("PlayCalls() = %v, want [/music/dusk.flac]", calls)
		}

		quitEngine(t, e)
	})
}

func TestAction_TrackSelectedPlaysTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		next, _ := m.Update(action.Msg{Source: "tracklist", Action: tracklist.TrackSelected{ID: 2}})
		synctest.Wait()
		m = pump(t, next.(Model))

		if m.status.Track == nil || m.status.Track.Title != "Echo" {
			t.Fatalf("Track = %+v, want Echo", m.status.Track)
		}
		if m.status.Transport != playback.StatePlaying {
			t.Errorf("Transport = %v, want Playing", m.status.Transport)
		}

		quitEngine(t, e)
	})
}

// --- view toggles ---

func TestKeys_InfoTogglesSideColumn(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "i")
		if m.sideVisible() {
			t.Error("i should hide the side column")
		}
		if got := m.tracklist.Width(); got != 120 {
			t.Errorf("tracklist width = %d, want full 120", got)
		}

		m = press(t, m, "i")
		if got := m.tracklist.Width(); got != 120-ui.SidePanelWidth {
			t.Errorf("tracklist width = %d, want %d", got, 120-ui.SidePanelWidth)
		}

		quitEngine(t, e)
	})
}

func TestKeys_MiniMode(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		m = press(t, m, "m")
		if !m.miniMode {
			t.Fatal("expected mini mode")
		}

		view := ansi.Strip(m.View())
		if strings.Contains(view, "Library") {
			t.Error("mini mode should not render the track list")
		}
		if !strings.Contains(view, "Spectrum") {
			t.Error("mini mode should render the visualizer panel")
		}
		if lines := viewLines(m); len(lines) != 40 {
			t.Errorf("mini view has %d lines, want 40", len(lines))
		}

		m = press(t, m, "m")
		if m.miniMode {
			t.Error("m should toggle mini mode off")
		}

		quitEngine(t, e)
	})
}

// --- status handling ---

func TestStatus_ErrorLineAppears(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		st := m.status
		st.Err = "cannot decode /music/dawn.flac"
		next, _ := m.Update(statusMsg(st))
		m = next.(Model)

		view := ansi.Strip(m.View())
		if !strings.Contains(view, "cannot decode /music/dawn.flac") {
			t.Error("view should show the playback error")
		}
		if lines := viewLines(m); len(lines) != 40 {
			t.Errorf("view has %d lines, want 40 with the error line", len(lines))
		}
		if got := m.tracklist.Height(); got != 40-ui.PlayerBarHeight-1 {
			t.Errorf("tracklist height = %d, want %d", got, 40-ui.PlayerBarHeight-1)
		}

		quitEngine(t, e)
	})
}

func TestStatus_OffModeClearsStaleFrame(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		bars := make([]float64, spectrum.NumBands)
		for i := range bars {
			bars[i] = 1.0
		}
		next, _ := m.Update(spectrumMsg(spectrum.Snapshot{Mode: spectrum.ModeBars, Bars: bars, Peaks: bars}))
		m = next.(Model)
		if !strings.Contains(ansi.Strip(m.View()), "█") {
			t.Fatal("expected bars in the visualizer panel")
		}

		st := m.status
		st.Visualizer = spectrum.ModeOff
		next, _ = m.Update(statusMsg(st))
		m = next.(Model)

		if m.spectrum.Mode != spectrum.ModeOff {
			t.Errorf("spectrum mode = %v, want off", m.spectrum.Mode)
		}
		if !strings.Contains(ansi.Strip(m.View()), "visualizer off") {
			t.Error("off mode should render the off hint, not stale bars")
		}

		quitEngine(t, e)
	})
}

func TestStatus_SpectrumPumpRearms(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, e, _ := startApp(t)

		next, cmd := m.Update(spectrumMsg(spectrum.Snapshot{Mode: spectrum.ModeBars}))
		m = next.(Model)
		if cmd == nil {
			t.Error("spectrum delivery should re-arm the pump")
		}
		next, cmd = m.Update(statusMsg(m.status))
		_ = next.(Model)
		if cmd == nil {
			t.Error("status delivery should re-arm the pump")
		}

		quitEngine(t, e)
	})
}
