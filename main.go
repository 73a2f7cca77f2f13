// Command chime is a terminal music player with a live visualizer and
// a phone web remote.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/chime/internal/app"
	"github.com/llehouerou/chime/internal/config"
	"github.com/llehouerou/chime/internal/errmsg"
	"github.com/llehouerou/chime/internal/icons"
	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/mpris"
	"github.com/llehouerou/chime/internal/notify"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/player"
	"github.com/llehouerou/chime/internal/remote"
	"github.com/llehouerou/chime/internal/spectrum"
	"github.com/llehouerou/chime/internal/stderr"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	path     string
	shuffle  bool
	port     int
	portSet  bool
	noRemote bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "chime [path]",
		Short: "Terminal music player with a live visualizer and phone remote",
		Long: "Chime plays a folder (or single file) of music in the terminal,\n" +
			"with a spectrum visualizer, themes and a phone web remote.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.path = args[0]
			}
			opts.portSet = cmd.Flags().Changed("port")
			return run(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.shuffle, "shuffle", false, "start with shuffle enabled")
	cmd.Flags().IntVar(&opts.port, "port", config.DefaultPort, "remote control port")
	cmd.Flags().BoolVar(&opts.noRemote, "no-remote", false, "disable the remote control server")
	return cmd
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fail(errmsg.OpConfigLoad, err)
	}
	if opts.portSet {
		cfg.Port = opts.port
	}
	if opts.noRemote {
		cfg.DisableRemote = true
	}
	icons.Init(cfg.IconStyle)
	setupLogging()

	path := opts.path
	if path == "" {
		path = cfg.MusicFolder
	}
	if path == "" {
		return fail(errmsg.OpLibraryScan, errors.New("no path given (pass one or set music_folder in the config)"))
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return fail(errmsg.OpLibraryScan, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fail(errmsg.OpLibraryScan, err)
	}

	lib, err := loadLibrary(path)
	if err != nil {
		return fail(errmsg.OpLibraryScan, err)
	}
	fmt.Printf("Found %d tracks. Starting chime...\n", lib.Len())

	// From here on the audio backend may write to fd 2; keep that away
	// from the TUI and replay it through the logger on exit.
	if err := stderr.Capture(); err != nil {
		slog.Warn("cannot capture stderr", "error", err)
	}

	p := player.New(cfg.Volume)
	mode := spectrum.ParseMode(cfg.Visualizer)
	analyzer := spectrum.NewAnalyzer(p.Samples(), mode)
	go analyzer.Run()

	engine := playback.New(p, lib, analyzer, playback.Options{
		Volume:     cfg.Volume,
		Shuffle:    opts.shuffle,
		Visualizer: mode,
		Theme:      cfg.Theme,
	})
	go engine.Run()

	if !cfg.DisableRemote {
		srv := remote.New(engine, lib, cfg.Port)
		if err := srv.Start(); err != nil {
			quitEngine(engine)
			return fail(errmsg.OpRemoteStart, err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		fmt.Printf("Remote control: http://%s:%d\n", remote.LANIP(), cfg.Port)
	}

	if adapter, err := mpris.New(engine); err != nil {
		slog.Warn("mpris unavailable", "error", err)
	} else {
		defer adapter.Close()
	}

	if notifier, err := notify.New(); err != nil {
		slog.Warn("desktop notifications unavailable", "error", err)
	} else {
		go notify.Watch(engine.Subscribe(), notifier)
	}

	// A single file starts playing immediately; a directory waits for
	// the user to pick a track.
	if !info.IsDir() {
		if err := playImmediately(engine); err != nil {
			quitEngine(engine)
			return fail(errmsg.OpPlaybackStart, err)
		}
	}

	prog := tea.NewProgram(app.New(cfg, engine, lib), tea.WithAltScreen())
	_, uiErr := prog.Run()

	quitEngine(engine)

	if uiErr != nil {
		return fail(errmsg.OpInitialize, uiErr)
	}
	return nil
}

// loadLibrary scans with the cache when it opens, without it otherwise.
func loadLibrary(path string) (*library.Library, error) {
	cache, err := library.OpenCache()
	if err != nil {
		slog.Warn("library cache unavailable, scanning cold", "error", err)
	} else {
		defer cache.Close()
	}

	tracks, err := library.Scan(path, cache)
	if err != nil {
		return nil, err
	}
	return library.New(tracks), nil
}

// playImmediately starts the first track and fails when it cannot be
// played, since a library of one has nothing to fall back to.
func playImmediately(engine *playback.Engine) error {
	sub := engine.Subscribe()
	defer engine.Unsubscribe(sub)

	engine.Enqueue(playback.Play{})

	deadline := time.After(10 * time.Second)
	for {
		select {
		case st := <-sub.Status:
			if st.Transport == playback.StatePlaying {
				return nil
			}
			if st.Transport == playback.StateStopped && st.Err != "" {
				return errors.New(st.Err)
			}
		case <-deadline:
			return nil
		}
	}
}

// quitEngine drains the engine, restores fd 2 and replays captured
// backend noise through the logger.
func quitEngine(engine *playback.Engine) {
	engine.Enqueue(playback.Quit{})
	select {
	case <-engine.Done():
	case <-time.After(shutdownTimeout):
		slog.Warn("engine shutdown timed out")
	}

	stderr.Restore()
	for {
		select {
		case line, ok := <-stderr.Lines:
			if !ok {
				return
			}
			slog.Warn("audio backend", "stderr", line)
		default:
			return
		}
	}
}

// setupLogging sends slog to a file under the XDG state dir so log
// output never competes with the TUI. Logging stays on stderr when the
// state path is unusable.
func setupLogging() {
	path, err := xdg.StateFile(filepath.Join("chime", "chime.log"))
	if err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
}

// fail reports a fatal startup error on the real stderr, past any
// active capture.
func fail(op errmsg.Op, err error) error {
	stderr.Restore()
	fmt.Fprintf(os.Stderr, "chime: %s\n", errmsg.Format(op, err))
	return err
}
