package remote

import (
	"github.com/samber/lo"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/spectrum"
)

// statusPayload is the JSON shape of /api/status and of "state" frames
// on the WebSocket. Times are in seconds.
type statusPayload struct {
	TrackID        *int    `json:"track_id"`
	TrackTitle     string  `json:"track_title"`
	TrackArtist    string  `json:"track_artist"`
	TrackAlbum     string  `json:"track_album"`
	Progress       float64 `json:"progress"`
	Duration       float64 `json:"duration"`
	IsPlaying      bool    `json:"is_playing"`
	IsPaused       bool    `json:"is_paused"`
	Volume         float64 `json:"volume"`
	Speed          float64 `json:"speed"`
	Shuffle        bool    `json:"shuffle"`
	Repeat         string  `json:"repeat"`
	Theme          string  `json:"theme"`
	VisualizerMode string  `json:"visualizer_mode"`
	SleepRemaining float64 `json:"sleep_remaining"`
	QueueIndex     int     `json:"queue_index"`
	QueueLen       int     `json:"queue_len"`
	Error          string  `json:"error,omitempty"`
}

func newStatusPayload(st playback.Status) statusPayload {
	p := statusPayload{
		Progress:       st.Position.Seconds(),
		Duration:       st.Duration.Seconds(),
		IsPlaying:      st.Transport == playback.StatePlaying,
		IsPaused:       st.Transport == playback.StatePaused,
		Volume:         st.Volume,
		Speed:          st.Speed,
		Shuffle:        st.Shuffle,
		Repeat:         st.Repeat.String(),
		Theme:          st.Theme,
		VisualizerMode: st.Visualizer.String(),
		SleepRemaining: st.SleepRemaining.Seconds(),
		QueueIndex:     st.QueueIndex,
		QueueLen:       st.QueueLen,
		Error:          st.Err,
	}
	if st.Track != nil {
		id := st.Track.ID
		p.TrackID = &id
		p.TrackTitle = st.Track.Title
		p.TrackArtist = st.Track.Artist
		p.TrackAlbum = st.Track.Album
	}
	return p
}

// trackPayload is one entry of /api/tracks.
type trackPayload struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
}

func trackList(lib *library.Library) []trackPayload {
	return lo.Map(lib.Tracks(), func(t library.Track, _ int) trackPayload {
		return trackPayload{
			ID:       t.ID,
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Duration: t.Duration.Seconds(),
		}
	})
}

// stateFrame is a WebSocket push of the full playback state.
type stateFrame struct {
	Type string `json:"type"`
	statusPayload
}

func newStateFrame(st playback.Status) stateFrame {
	return stateFrame{Type: "state", statusPayload: newStatusPayload(st)}
}

// spectrumFrame is a WebSocket push of one analyzer snapshot.
type spectrumFrame struct {
	Type     string    `json:"type"`
	Mode     string    `json:"mode"`
	Bars     []float64 `json:"bars,omitempty"`
	Peaks    []float64 `json:"peaks,omitempty"`
	Waveform []float64 `json:"waveform,omitempty"`
}

func newSpectrumFrame(snap spectrum.Snapshot) spectrumFrame {
	return spectrumFrame{
		Type:     "spectrum",
		Mode:     snap.Mode.String(),
		Bars:     snap.Bars,
		Peaks:    snap.Peaks,
		Waveform: snap.Waveform,
	}
}
