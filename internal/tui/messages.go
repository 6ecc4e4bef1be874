package tui

// refreshMsg signals that a view-model operation finished and the shared
// view-model state is authoritative again, carrying any alerts raised
// along the way.
type refreshMsg struct {
	alerts []string
	// accepted is set when a form submission passed validation and was
	// persisted; the form screen closes only then.
	accepted bool
}

// statusClearMsg hides the status line after a short delay.
type statusClearMsg struct{}
