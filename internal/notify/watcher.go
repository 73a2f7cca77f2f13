package notify

import (
	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
)

// nowPlayingTimeout keeps track-change notifications short-lived (ms).
const nowPlayingTimeout = 5000

// Watch sends a now-playing notification each time the current track
// changes, replacing the previous one instead of stacking. It blocks
// until the subscription ends, so callers run it in a goroutine.
func Watch(sub *playback.Subscription, n Notifier) {
	watch(sub.Status, sub.Done, n)
}

func watch(status <-chan playback.Status, done <-chan struct{}, n Notifier) {
	var lastID uint32
	lastTrack := -1
	for {
		select {
		case st := <-status:
			if st.Track == nil {
				// A later replay of the same track counts as a change.
				lastTrack = -1
				continue
			}
			if st.Transport != playback.StatePlaying || st.Track.ID == lastTrack {
				continue
			}
			lastTrack = st.Track.ID
			if id, err := n.Notify(nowPlaying(st.Track, lastID)); err == nil && id != 0 {
				lastID = id
			}
		case <-done:
			return
		}
	}
}

// nowPlaying builds the track-change notification, replacing the
// previous one when the server gave it an ID.
func nowPlaying(t *library.Track, replaces uint32) Notification {
	body := t.Artist
	switch {
	case body == "":
		body = t.Album
	case t.Album != "":
		body += " · " + t.Album
	}
	return Notification{
		Title:      t.Title,
		Body:       body,
		Icon:       library.CoverArt(t.Path),
		Timeout:    nowPlayingTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}
