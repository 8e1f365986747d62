package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/viz"
)

const (
	background   = "#0a0a0a"
	defaultColor = "#00ff00"
)

// braille dot bits indexed by [row][column] within one cell
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasSVG draws every set braille dot of canvas as a circle in its cell
// color. Each dot occupies scale pixels.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(canvas.PixelWidth())*scale, float64(canvas.PixelHeight())*scale)

	r := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			cell := canvas.Grid[row][col]
			if cell <= 0x2800 {
				continue
			}
			pattern := cell - 0x2800
			fill := defaultColor
			if c := string(canvas.Colors[row][col]); c != "" {
				fill = c
			}

			baseX := float64(col) * 2 * scale
			baseY := float64(row) * 4 * scale
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, r, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG draws the paths seen from above (x right, z up) with shared
// bounds and 10% padding. colors pairs with paths; missing entries are white.
func TrajectorySVG(paths [][]dynamo.Vec3, colors []dynamo.Color, width, height int) string {
	minX, maxX, minZ, maxZ, ok := bounds(paths)
	if !ok {
		return ""
	}

	rangeX := maxX - minX
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	minZ -= rangeZ * 0.1
	rangeX *= 1.2
	rangeZ *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		c := dynamo.White
		if i < len(colors) {
			c = colors[i].Clamp()
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="#%02x%02x%02x" stroke-width="1.5" d="M`,
			int(c[0]*255), int(c[1]*255), int(c[2]*255))
		for j, p := range path {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Z-minZ)/rangeZ*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(paths [][]dynamo.Vec3) (minX, maxX, minZ, maxZ float64, ok bool) {
	for _, path := range paths {
		for _, p := range path {
			if !ok {
				minX, maxX, minZ, maxZ, ok = p.X, p.X, p.Z, p.Z, true
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minZ = min(minZ, p.Z)
			maxZ = max(maxZ, p.Z)
		}
	}
	return
}
