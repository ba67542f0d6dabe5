package formatter

import "strings"

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// DoneBar renders how much of the backlog is Done as a bar of width cells.
// An empty backlog renders a muted empty bar. Colors go red, yellow, green
// as the share passes one and two thirds.
func DoneBar(done, total, width int) string {
	width = max(width, 2)
	if total <= 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, width))
	}

	done = min(max(done, 0), total)
	filled := done * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	switch share := float64(done) / float64(total); {
	case share < 1.0/3:
		return StyleRed.Render(bar)
	case share < 2.0/3:
		return StyleYellow.Render(bar)
	default:
		return StyleGreen.Render(bar)
	}
}
