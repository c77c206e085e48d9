package storage

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// TrackView selects the pair of telemetry columns drawn by ExportSVG.
type TrackView string

const (
	GroundTrack TrackView = "track"   // x against z, seen from above
	Profile     TrackView = "profile" // altitude against distance flown
)

type point struct{ X, Y float64 }

// ExportSVG draws the flight path of a run as a single SVG polyline.
func (s *Store) ExportSVG(w io.Writer, runID string, view TrackView, width, height int) error {
	tel, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	var xs, ys []float64
	switch view {
	case GroundTrack:
		xs, ys = tel.Column("x"), tel.Column("z")
	case Profile:
		xs, ys = distanceFlown(tel.Column("x"), tel.Column("z")), tel.Column("y")
	default:
		return fmt.Errorf("unknown view %q", view)
	}
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("run %s: not enough samples to draw", runID)
	}

	points := make([]point, len(xs))
	for i := range xs {
		points[i] = point{xs[i], ys[i]}
	}
	_, err = io.WriteString(w, trajectoryToSVG(points, width, height, "#00ccff"))
	return err
}

func distanceFlown(xs, zs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := 1; i < len(xs) && i < len(zs); i++ {
		dx, dz := xs[i]-xs[i-1], zs[i]-zs[i-1]
		out[i] = out[i-1] + math.Hypot(dx, dz)
	}
	return out
}

func trajectoryToSVG(points []point, width, height int, strokeColor string) string {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// 10% padding
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
