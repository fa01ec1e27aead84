package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/meshgrid/internal/render"
)

// SVG converts the commands captured by a Recorder since its last Clear
// into an SVG document of the given size.
func SVG(rec *render.Recorder, width, height float64, bg render.Color) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg.Hex()))

	if rec != nil {
		for _, cmd := range rec.Commands {
			switch cmd.Op {
			case render.OpCircle:
				sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.4f"/>
`, cmd.A.X, cmd.A.Y, cmd.Radius, cmd.Color.Hex(), cmd.Color.A))
			case render.OpLine:
				sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.4f" stroke-width="%.2f"/>
`, cmd.A.X, cmd.A.Y, cmd.B.X, cmd.B.Y, cmd.Color.Hex(), cmd.Color.A, cmd.Width))
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
