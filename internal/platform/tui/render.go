package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/philo/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Every cell is painted on the screen's background color; cells without
// their own foreground use the background's contrast color. Adjacent cells
// with the same foreground are grouped to minimize ANSI escape sequences.
// A nil renderer uses the lipgloss default.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	bg := s.Background()
	base := r.NewStyle().Background(lipgloss.Color(bg.Hex()))
	plain := bg.Contrast()

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			fg := plain
			if start.HasFG {
				fg = start.FG
			}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.HasFG != start.HasFG || cell.FG != start.FG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(base.Foreground(lipgloss.Color(fg.Hex())).Render(run.String()))
		}
	}
	return sb.String()
}
