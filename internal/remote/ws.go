package remote

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/llehouerou/chime/internal/playback"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWS streams state and spectrum frames to one client and feeds
// its command frames into the engine. Each connection gets its own
// subscription, so a stalled phone only loses its own frames.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := s.engine.Subscribe()
	defer s.engine.Unsubscribe(sub)

	gone := make(chan struct{})
	go s.readCommands(conn, gone)

	// First frame: the cached state, so the page renders before the
	// next broadcast.
	if err := writeFrame(conn, newStateFrame(s.currentStatus())); err != nil {
		return
	}

	for {
		select {
		case st := <-sub.Status:
			if err := writeFrame(conn, newStateFrame(st)); err != nil {
				return
			}
		case snap := <-sub.Spectrum:
			if err := writeFrame(conn, newSpectrumFrame(snap)); err != nil {
				return
			}
		case <-sub.Done:
			return
		case <-gone:
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}

// clientFrame is a command sent by the page; Cmd reuses the REST
// endpoint names.
type clientFrame struct {
	Cmd string   `json:"cmd"`
	V   *float64 `json:"v,omitempty"`
	T   *float64 `json:"t,omitempty"`
	S   *float64 `json:"s,omitempty"`
	D   *float64 `json:"d,omitempty"`
	ID  *int     `json:"id,omitempty"`
}

// readCommands consumes client frames until the connection drops, then
// closes gone.
func (s *Server) readCommands(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var f clientFrame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		if cmd, ok := frameCommand(f); ok {
			s.engine.Enqueue(cmd)
		}
	}
}

func frameCommand(f clientFrame) (playback.Command, bool) {
	switch f.Cmd {
	case "toggle":
		return playback.TogglePlay{}, true
	case "next":
		return playback.Next{}, true
	case "prev":
		return playback.Previous{}, true
	case "shuffle":
		return playback.ToggleShuffle{}, true
	case "repeat":
		return playback.CycleRepeat{}, true
	case "theme":
		return playback.CycleTheme{}, true
	case "visualizer":
		return playback.CycleVisualizer{}, true
	case "sleep":
		return playback.CycleSleepTimer{}, true
	case "volume":
		if f.V != nil {
			return playback.SetVolume{Level: *f.V}, true
		}
	case "seek":
		if f.T != nil {
			return playback.SeekAbsolute{Position: secondsToDuration(*f.T)}, true
		}
	case "speed":
		if f.S != nil {
			return playback.SetSpeed{Ratio: *f.S}, true
		}
		if f.D != nil {
			return playback.SpeedDelta{Delta: *f.D}, true
		}
	case "select":
		if f.ID != nil {
			return playback.SelectTrack{ID: *f.ID}, true
		}
	}
	return nil, false
}
