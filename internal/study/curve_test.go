package study

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestChartPoints(t *testing.T) {
	s := newTestStore(t)
	tr := newTestTracker(t, s)
	now := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		tr.CommitMinute(now, ModeStudy)
	}

	series := WeeklySeries(tr, now)
	pts := ChartPoints(series, 300, 150)
	if len(pts) != 7 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[0].X != 0 || pts[6].X != 300 {
		t.Fatalf("x range: %v .. %v", pts[0].X, pts[6].X)
	}
	// Empty days sit on the baseline.
	if pts[0].Y != 150 {
		t.Fatalf("baseline y = %v", pts[0].Y)
	}
	// Today hit the scale max: top of the drawable band (20 units of
	// headroom).
	if math.Abs(pts[6].Y-20) > 1e-9 {
		t.Fatalf("today y = %v, want 20", pts[6].Y)
	}
}

func TestSmoothPathShape(t *testing.T) {
	pts := []Point{{0, 150}, {50, 100}, {100, 130}, {150, 40}}
	path := SmoothPath(pts)

	if !strings.HasPrefix(path, "M 0,150") {
		t.Fatalf("path start: %q", path)
	}
	// One cubic segment per point after the first.
	if got := strings.Count(path, "C "); got != 3 {
		t.Fatalf("segments = %d: %q", got, path)
	}
	// The curve ends exactly on the last point.
	if !strings.HasSuffix(path, "150,40") {
		t.Fatalf("path end: %q", path)
	}
}

func TestSmoothPathDegenerate(t *testing.T) {
	if got := SmoothPath(nil); got != "" {
		t.Fatalf("empty input: %q", got)
	}
	if got := SmoothPath([]Point{{10, 20}}); got != "M 10,20" {
		t.Fatalf("single point: %q", got)
	}
}

func TestControlPointSmoothing(t *testing.T) {
	// Collinear horizontal neighbors keep the control point on the line,
	// offset by the smoothing factor of the neighbor distance.
	prev := Point{0, 100}
	cur := Point{50, 100}
	next := Point{100, 100}
	cp := controlPoint(cur, &prev, &next, false)
	if math.Abs(cp.Y-100) > 1e-9 {
		t.Fatalf("control point left the line: %+v", cp)
	}
	if math.Abs(cp.X-70) > 1e-9 { // 50 + 0.2*100
		t.Fatalf("control point x = %v, want 70", cp.X)
	}

	rev := controlPoint(cur, &prev, &next, true)
	if math.Abs(rev.X-30) > 1e-9 {
		t.Fatalf("reversed control point x = %v, want 30", rev.X)
	}
}
