package study

import (
	"fmt"
	"math"
	"strings"
)

// Point is a 2D chart coordinate.
type Point struct {
	X, Y float64
}

// curveSmoothing scales the control-point offset derived from each point's
// neighbors. 0.2 gives a gentle Catmull-Rom-like curve through the daily
// totals.
const curveSmoothing = 0.2

// ChartPoints maps a week series onto a width×height canvas, oldest day at
// x=0, today at x=width. The top 20 units are left as headroom for dot
// markers, matching the dashboard chart geometry.
func ChartPoints(series WeekSeries, width, height float64) []Point {
	pts := make([]Point, len(series.Days))
	n := float64(len(series.Days) - 1)
	if n <= 0 {
		n = 1
	}
	for i, d := range series.Days {
		x := float64(i) / n * width
		y := height - float64(d.Minutes)/float64(series.Scale)*(height-20)
		pts[i] = Point{X: x, Y: y}
	}
	return pts
}

func lineBetween(a, b Point) (length, angle float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// controlPoint derives a cubic control point for current from the direction
// between its neighbors; reverse flips it for the incoming side.
func controlPoint(current Point, previous, next *Point, reverse bool) Point {
	p, n := current, current
	if previous != nil {
		p = *previous
	}
	if next != nil {
		n = *next
	}
	length, angle := lineBetween(p, n)
	if reverse {
		angle += math.Pi
	}
	length *= curveSmoothing
	return Point{
		X: current.X + math.Cos(angle)*length,
		Y: current.Y + math.Sin(angle)*length,
	}
}

// SmoothPath renders points as an SVG path command string, joining them
// with cubic segments whose control points follow neighbor directions.
func SmoothPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s,%s", coord(points[0].X), coord(points[0].Y))
	for i := 1; i < len(points); i++ {
		var prev2, next *Point
		if i >= 2 {
			prev2 = &points[i-2]
		}
		if i+1 < len(points) {
			next = &points[i+1]
		}
		cps := controlPoint(points[i-1], prev2, &points[i], false)
		cpe := controlPoint(points[i], &points[i-1], next, true)
		fmt.Fprintf(&b, " C %s,%s %s,%s %s,%s",
			coord(cps.X), coord(cps.Y),
			coord(cpe.X), coord(cpe.Y),
			coord(points[i].X), coord(points[i].Y))
	}
	return b.String()
}

// coord trims float noise from path output.
func coord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
