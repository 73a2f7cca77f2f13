package tracklist

import (
	"github.com/llehouerou/chime/internal/ui/action"
)

// TrackSelected is emitted when the user presses enter on a track.
type TrackSelected struct {
	ID int
}

// ActionType implements action.Action.
func (TrackSelected) ActionType() string { return "tracklist.track_selected" }

// ActionMsg creates an action.Msg for a tracklist action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "tracklist", Action: a}
}
