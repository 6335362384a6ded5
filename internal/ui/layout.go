package ui

// Fixed rows outside the two panes: header, status line and footer.
const chromeRows = 3

// Each pane is wrapped in a rounded border.
const paneBorder = 2

const (
	// minPaneHeight keeps both panes usable on tiny terminals.
	minPaneHeight = 3

	// editorShare is the percentage of the body given to the editor pane.
	editorShare = 45

	// endpointDisplayWidth caps the service URL shown in the header.
	endpointDisplayWidth = 48
)
