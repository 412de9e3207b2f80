package render

import "strings"

// Render returns the text frame for g.
//
// Rows are emitted top to bottom. Within a row, columns 0 through Width-2 are
// encoded with [Encode]; at column Width-1 a newline is written in place of
// that pixel. [Reset] follows the last row, with no newline after it.
func Render(g Grid, s Settings) string {
	var sb strings.Builder

	RenderTo(&sb, g, s)

	return sb.String()
}

// RenderTo appends the frame for g to sb, reusing its storage.
func RenderTo(sb *strings.Builder, g Grid, s Settings) {
	cell := 2
	if s.Color {
		cell += len("\x1b[38;2;000;000;000m")
	}

	sb.Grow(g.Height*(max(0, g.Width-1)*cell+1) + len(Reset))

	for y := range g.Height {
		for x := range g.Width {
			if x == g.Width-1 {
				sb.WriteByte('\n')

				continue
			}

			encodeTo(sb, g.At(x, y), s)
		}
	}

	sb.WriteString(Reset)
}
