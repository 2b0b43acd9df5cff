package canvas

import (
	"image"
	"image/color"
	"math"
)

// drawLine draws a line between two points with the given thickness.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		setPixelSafe(output, x1, y1, col)
		return
	}

	steps := int(length) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := float64(x1) + dx*t
		cy := float64(y1) + dy*t

		for ox := -thickness / 2; ox <= thickness/2; ox++ {
			for oy := -thickness / 2; oy <= thickness/2; oy++ {
				setPixelSafe(output, int(cx)+ox, int(cy)+oy, col)
			}
		}
	}
}

// drawSquare draws a filled handle square with an outline, centered on
// (cx, cy) with the given half-size.
func drawSquare(output *image.RGBA, cx, cy, half int, fill, outline color.RGBA) {
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			onEdge := x == cx-half || x == cx+half || y == cy-half || y == cy+half
			if onEdge {
				setPixelSafe(output, x, y, outline)
			} else {
				setPixelSafe(output, x, y, fill)
			}
		}
	}
}

// drawCircle draws a filled circle centered on (cx, cy).
func drawCircle(output *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				setPixelSafe(output, cx+x, cy+y, col)
			}
		}
	}
}

func setPixelSafe(output *image.RGBA, x, y int, col color.RGBA) {
	if !image.Pt(x, y).In(output.Bounds()) {
		return
	}
	output.SetRGBA(x, y, col)
}
