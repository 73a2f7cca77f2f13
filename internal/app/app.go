// Package app assembles the terminal UI: it owns the root bubbletea
// model, pumps engine snapshots into the components and translates key
// presses into playback commands.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/chime/internal/config"
	"github.com/llehouerou/chime/internal/keymap"
	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/spectrum"
	"github.com/llehouerou/chime/internal/ui/helpbindings"
	"github.com/llehouerou/chime/internal/ui/trackinfo"
	"github.com/llehouerou/chime/internal/ui/tracklist"
)

// speedStep is the playback speed change per keypress.
const speedStep = 0.25

// Model is the root bubbletea model.
type Model struct {
	cfg    *config.Config
	engine *playback.Engine
	sub    *playback.Subscription
	keys   *keymap.Resolver

	tracklist tracklist.Model
	trackinfo trackinfo.Model
	help      helpbindings.Model

	status   playback.Status
	spectrum spectrum.Snapshot

	width  int
	height int

	showHelp bool
	showSide bool
	miniMode bool
	quitting bool
}

// New builds the root model over a configured engine. It registers its
// own subscription; the caller starts the engine loop.
func New(cfg *config.Config, engine *playback.Engine, lib *library.Library) Model {
	list := tracklist.New(lib)
	list.SetFocused(true)

	return Model{
		cfg:       cfg,
		engine:    engine,
		sub:       engine.Subscribe(),
		keys:      keymap.NewResolver(keymap.All),
		tracklist: list,
		trackinfo: trackinfo.New(),
		help:      helpbindings.New(),
		showSide:  true,
	}
}

// Init arms the subscription pumps. Each delivered message re-arms its
// pump from Update, so the UI always has one outstanding read per
// channel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForStatus(m.sub), waitForSpectrum(m.sub))
}
