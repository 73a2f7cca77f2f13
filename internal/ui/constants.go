package ui

// Layout constants shared across UI components.
const (
	// ScrollMargin is the number of rows kept visible above and below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// HeaderHeight is the space for a panel header plus its separator.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead of a bordered panel with
	// a header: listHeight = panelHeight - PanelOverhead.
	PanelOverhead = BorderHeight + HeaderHeight

	// SidePanelWidth is the fixed width of the right-hand column holding the
	// track info panel and the visualizer.
	SidePanelWidth = 38

	// MinSplitWidth is the narrowest terminal that still gets the side
	// column; below it the track list takes the full width.
	MinSplitWidth = 100

	// PlayerBarHeight is the height of the bottom player bar with borders.
	PlayerBarHeight = 3

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)
