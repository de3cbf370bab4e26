// Package export renders captured frames as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/sim"
)

const background = "#0a0a0a"

// fallbackPalette colors groups whose config carries no color.
var fallbackPalette = []string{
	"#ff5f5f", "#5fff87", "#5fafff", "#ffd75f", "#af5fff", "#ff87d7",
}

// Scatter renders one frame as a dot plot, one filled circle per
// particle, grouped by color. The frame must carry exactly one x,y
// pair per configured particle, in group order.
func Scatter(frame sim.Frame, cfg *config.Config, scale float64) (string, error) {
	total := 0
	for _, g := range cfg.Groups {
		total += g.Count
	}
	if len(frame.Positions) != total*2 {
		return "", fmt.Errorf("export: frame holds %d coordinates, want %d", len(frame.Positions), total*2)
	}
	if scale <= 0 {
		scale = 1
	}

	width := cfg.World.Width * scale
	height := cfg.World.Height * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	offset := 0
	for i, g := range cfg.Groups {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", groupColor(g, i)))
		r := g.Radius * scale
		for p := 0; p < g.Count; p++ {
			x := frame.Positions[(offset+p)*2] * scale
			y := frame.Positions[(offset+p)*2+1] * scale
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, r))
		}
		sb.WriteString("</g>\n")
		offset += g.Count
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// Trails draws the path of each group's centroid across the captured
// frames, one stroked polyline per group.
func Trails(frames []sim.Frame, cfg *config.Config, scale float64) (string, error) {
	if len(frames) < 2 {
		return "", fmt.Errorf("export: need at least 2 frames, got %d", len(frames))
	}
	total := 0
	for _, g := range cfg.Groups {
		total += g.Count
	}
	for i, f := range frames {
		if len(f.Positions) != total*2 {
			return "", fmt.Errorf("export: frame %d holds %d coordinates, want %d", i, len(f.Positions), total*2)
		}
	}
	if scale <= 0 {
		scale = 1
	}

	width := cfg.World.Width * scale
	height := cfg.World.Height * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	offset := 0
	for i, g := range cfg.Groups {
		if g.Count == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, groupColor(g, i)))
		for fi, f := range frames {
			cx, cy := 0.0, 0.0
			for p := 0; p < g.Count; p++ {
				cx += f.Positions[(offset+p)*2]
				cy += f.Positions[(offset+p)*2+1]
			}
			cx = cx / float64(g.Count) * scale
			cy = cy / float64(g.Count) * scale
			if fi == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", cx, cy))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", cx, cy))
			}
		}
		sb.WriteString("\"/>\n")
		offset += g.Count
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func groupColor(g config.GroupConfig, i int) string {
	if g.Color != "" {
		return g.Color
	}
	return fallbackPalette[i%len(fallbackPalette)]
}
