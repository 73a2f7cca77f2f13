package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/player"
)

func newTestServer(t *testing.T) (*httptest.Server, *player.Mock) {
	t.Helper()

	tracks := make([]library.Track, 3)
	for i := range tracks {
		tracks[i] = library.Track{
			Path:        fmt.Sprintf("/music/%02d.mp3", i),
			Title:       fmt.Sprintf("Track %02d", i),
			Artist:      "Artist",
			Album:       "Album",
			TrackNumber: i + 1,
			Duration:    3 * time.Minute,
		}
	}
	lib := library.New(tracks)

	mock := player.NewMock()
	mock.SetDuration(3 * time.Minute)

	engine := playback.New(mock, lib, nil, playback.Options{Volume: 0.8, Theme: "default"})
	s := New(engine, lib, 0)
	go engine.Run()

	ts := httptest.NewServer(s.routes())
	t.Cleanup(func() {
		ts.Close()
		engine.Enqueue(playback.Quit{})
		select {
		case <-engine.Done():
		case <-time.After(time.Second):
			t.Fatal("engine did not stop")
		}
	})
	return ts, mock
}

// fetchStatus never fails the test, so it is safe inside require.Eventually
// conditions, which run off the test goroutine.
func fetchStatus(ts *httptest.Server) (statusPayload, error) {
	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		return statusPayload{}, err
	}
	defer resp.Body.Close()

	var st statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return statusPayload{}, err
	}
	return st, nil
}

func getStatus(t *testing.T, ts *httptest.Server) statusPayload {
	t.Helper()

	st, err := fetchStatus(ts)
	require.NoError(t, err)
	return st
}

func post(t *testing.T, ts *httptest.Server, path string) int {
	t.Helper()

	resp, err := http.Post(ts.URL+path, "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestServer_IndexServesPage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	buf := make([]byte, 1024)
	n, _ := resp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "<!DOCTYPE html>")
}

func TestServer_StatusStartsStopped(t *testing.T) {
	ts, _ := newTestServer(t)

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.QueueLen == 3
	}, time.Second, 10*time.Millisecond)

	st := getStatus(t, ts)
	assert.False(t, st.IsPlaying)
	assert.Nil(t, st.TrackID)
	assert.Equal(t, -1, st.QueueIndex)
	assert.Equal(t, 0.8, st.Volume)
	assert.Equal(t, "bars", st.VisualizerMode)
}

func TestServer_TracksListsLibrary(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/tracks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tracks []trackPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tracks))
	require.Len(t, tracks, 3)
	assert.Equal(t, 0, tracks[0].ID)
	assert.Equal(t, "Track 00", tracks[0].Title)
	assert.Equal(t, 180.0, tracks[0].Duration)
}

func TestServer_ToggleStartsPlayback(t *testing.T) {
	ts, mock := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/toggle"))

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.IsPlaying
	}, time.Second, 10*time.Millisecond)

	st := getStatus(t, ts)
	require.NotNil(t, st.TrackID)
	assert.Equal(t, 0, *st.TrackID)
	assert.Equal(t, "Track 00", st.TrackTitle)
	assert.Equal(t, []string{"/music/00.mp3"}, mock.PlayCalls())
}

func TestServer_NextAndPrev(t *testing.T) {
	ts, mock := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/toggle"))
	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/next"))

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.TrackID != nil && *st.TrackID == 1
	}, time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/prev"))
	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.TrackID != nil && *st.TrackID == 0
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"/music/00.mp3", "/music/01.mp3", "/music/00.mp3"}, mock.PlayCalls())
}

func TestServer_VolumeEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/volume?v=0.5"))
	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.Volume == 0.5
	}, time.Second, 10*time.Millisecond)
}

func TestServer_SeekEndpoint(t *testing.T) {
	ts, mock := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/toggle"))
	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.IsPlaying
	}, time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/seek?t=30"))
	require.Eventually(t, func() bool {
		calls := mock.SeekCalls()
		return len(calls) == 1 && calls[0] == 30*time.Second
	}, time.Second, 10*time.Millisecond)
}

func TestServer_SpeedEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/speed?s=1.5"))
	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.Speed == 1.5
	}, time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/speed?d=0.25"))
	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.Speed == 1.75
	}, time.Second, 10*time.Millisecond)
}

func TestServer_SelectEndpoint(t *testing.T) {
	ts, mock := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/select?id=2"))

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.IsPlaying && st.TrackID != nil && *st.TrackID == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"/music/02.mp3"}, mock.PlayCalls())
}

func TestServer_ToggleEndpointsCycleModes(t *testing.T) {
	ts, _ := newTestServer(t)

	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/shuffle"))
	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/repeat"))
	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/theme"))
	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/visualizer"))
	require.Equal(t, http.StatusNoContent, post(t, ts, "/api/sleep"))

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil &&
			st.Shuffle &&
			st.Repeat == "All" &&
			st.Theme == "dracula" &&
			st.VisualizerMode == "waveform" &&
			st.SleepRemaining > 14*60
	}, time.Second, 10*time.Millisecond)
}

func TestServer_BadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"volume missing param", http.MethodPost, "/api/volume", http.StatusBadRequest},
		{"volume bad param", http.MethodPost, "/api/volume?v=loud", http.StatusBadRequest},
		{"seek missing param", http.MethodPost, "/api/seek", http.StatusBadRequest},
		{"speed missing params", http.MethodPost, "/api/speed", http.StatusBadRequest},
		{"select missing param", http.MethodPost, "/api/select", http.StatusBadRequest},
		{"select bad param", http.MethodPost, "/api/select?id=first", http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/toggle", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestServer_WebSocketStateFrames(t *testing.T) {
	ts, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first stateFrame
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "state", first.Type)
	assert.False(t, first.IsPlaying)

	require.NoError(t, conn.WriteJSON(map[string]any{"cmd": "toggle"}))

	var frame stateFrame
	for !frame.IsPlaying {
		require.NoError(t, conn.ReadJSON(&frame))
		require.Equal(t, "state", frame.Type)
	}
	require.NotNil(t, frame.TrackID)
	assert.Equal(t, 0, *frame.TrackID)
}

func TestServer_WebSocketParamCommands(t *testing.T) {
	ts, mock := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	v := 0.3
	require.NoError(t, conn.WriteJSON(clientFrame{Cmd: "volume", V: &v}))
	id := 1
	require.NoError(t, conn.WriteJSON(clientFrame{Cmd: "select", ID: &id}))

	require.Eventually(t, func() bool {
		st, err := fetchStatus(ts)
		return err == nil && st.Volume == 0.3 && st.TrackID != nil && *st.TrackID == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"/music/01.mp3"}, mock.PlayCalls())
}

func TestLANIP_ReturnsAnAddress(t *testing.T) {
	ip := LANIP()
	assert.NotEmpty(t, ip)
}
