// Package layout provides pure functions for panel dimension calculations.
package layout

import "github.com/llehouerou/chime/internal/ui"

// TrackInfoHeight is the fixed height of the track info panel in the
// side column.
const TrackInfoHeight = 12

// MinVisualizerHeight is the smallest visualizer panel worth drawing.
// Below it the track info panel takes the whole side column.
const MinVisualizerHeight = 5

// MainHeight calculates the available height for the panels above the
// player bar. An active error line takes one more row away.
func MainHeight(windowHeight int, errorVisible bool) int {
	height := windowHeight - ui.PlayerBarHeight
	if errorVisible {
		height--
	}
	return max(height, 0)
}

// SideVisible returns true if the side column fits the current layout.
// The column needs the split toggle on, full mode, and a terminal at
// least MinSplitWidth wide.
func SideVisible(windowWidth int, enabled, mini bool) bool {
	return enabled && !mini && windowWidth >= ui.MinSplitWidth
}

// ListWidth calculates the available width for the track list.
// With the side column visible the list gives up SidePanelWidth,
// otherwise it takes the full window.
func ListWidth(windowWidth int, sideVisible bool) int {
	if sideVisible {
		return windowWidth - ui.SidePanelWidth
	}
	return windowWidth
}

// SideHeights splits the side column between the track info panel and
// the visualizer. Short terminals give the whole column to track info.
func SideHeights(total int) (info, viz int) {
	viz = total - TrackInfoHeight
	if viz < MinVisualizerHeight {
		return total, 0
	}
	return TrackInfoHeight, viz
}
