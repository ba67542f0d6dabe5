package cli

// LayoutMode is the cosmetic rendering mode of the TUI. It never affects
// which projects are shown or how they are ordered.
type LayoutMode int

const (
	LayoutDesktop LayoutMode = iota
	LayoutMobile
)

func (m LayoutMode) String() string {
	if m == LayoutMobile {
		return "Mobile Mode"
	}
	return "Desktop Mode"
}

// Toggle flips between desktop and mobile.
func (m LayoutMode) Toggle() LayoutMode {
	if m == LayoutMobile {
		return LayoutDesktop
	}
	return LayoutMobile
}

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	Layout LayoutMode

	// Terminal dimensions
	Width  int
	Height int

	// previewSeq numbers preview requests across form instances so a result
	// that outlives its form is recognized as stale.
	previewSeq int
}

// NextPreviewSeq returns a fresh preview request id.
func (s *SharedState) NextPreviewSeq() int {
	s.previewSeq++
	return s.previewSeq
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), command bar (1 line)
// and footer (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 6
	if h < 1 {
		return 1
	}
	return h
}
