// Command roiprobe replays a scripted pointer gesture sequence against
// the selection controller and prints the resulting state. Useful for
// checking gesture math without launching the full UI.
//
// Script format, one command per line ('#' starts a comment):
//
//	down <x> <y>
//	move <x> <y>
//	up
//	print
//
// Coordinates are normalized to the editing surface.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"vault-tracer/internal/roi"
	"vault-tracer/pkg/geometry"
)

func main() {
	scriptPath := flag.String("script", "", "Path to gesture script (default: stdin)")
	imgWidth := flag.Float64("width", 0, "Image width in pixels for the final pixel payload")
	imgHeight := flag.Float64("height", 0, "Image height in pixels for the final pixel payload")
	flag.Parse()

	input := os.Stdin
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	controller := roi.NewController()
	scanner := bufio.NewScanner(input)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "down":
			p, err := parsePoint(fields)
			if err != nil {
				fatalf(lineNo, err)
			}
			mode := controller.PointerDown(p)
			fmt.Printf("down (%.3f, %.3f) -> %s\n", p.X, p.Y, mode)
		case "move":
			p, err := parsePoint(fields)
			if err != nil {
				fatalf(lineNo, err)
			}
			controller.PointerMove(p)
		case "up":
			controller.PointerUp()
		case "print":
			printState(controller.State())
		default:
			fatalf(lineNo, fmt.Errorf("unknown command %q", fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read script: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nFinal state:")
	printState(controller.State())

	if *imgWidth > 0 && *imgHeight > 0 {
		px := controller.State().ToPixels(*imgWidth, *imgHeight)
		fmt.Printf("\nPixel payload for %gx%g:\n", *imgWidth, *imgHeight)
		fmt.Printf("  center (%.1f, %.1f)  size %.1fx%.1f  rotation %.2f°\n",
			px.X, px.Y, px.Width, px.Height, px.Rotation)
		for i, c := range px.Corners {
			fmt.Printf("  corner %d: (%.1f, %.1f)\n", i, c[0], c[1])
		}
	}
}

func parsePoint(fields []string) (geometry.Point2D, error) {
	if len(fields) != 3 {
		return geometry.Point2D{}, fmt.Errorf("expected 2 coordinates, got %d", len(fields)-1)
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("bad x %q", fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("bad y %q", fields[2])
	}
	return geometry.Point2D{X: x, Y: y}, nil
}

func printState(s roi.State) {
	fmt.Printf("  center (%.4f, %.4f)  size %.4fx%.4f  rotation %.2f°\n",
		s.X, s.Y, s.Width, s.Height, s.Rotation)
	corners := roi.Corners(s)
	names := []string{"nw", "ne", "se", "sw"}
	for i, c := range corners {
		fmt.Printf("  %s: (%.4f, %.4f)\n", names[i], c.X, c.Y)
	}
}

func fatalf(line int, err error) {
	fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
	os.Exit(1)
}
