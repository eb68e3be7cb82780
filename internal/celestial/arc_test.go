package celestial

import (
	"math"
	"testing"
)

func TestInterpolateArc_Length(t *testing.T) {
	a := Project(10, 20, 50)
	b := Project(-30, 100, 50)

	for _, n := range []int{1, 2, 10, 50} {
		got := len(ArcPoints(a, b, 50, n))
		if got != n+1 {
			t.Errorf("len(ArcPoints(n=%d)) = %d, want %d", n, got, n+1)
		}
	}
}

func TestInterpolateArc_ClampsSegments(t *testing.T) {
	a := Project(0, 0, 1)
	b := Project(0, 90, 1)
	if got := len(ArcPoints(a, b, 1, 0)); got != 2 {
		t.Errorf("len(ArcPoints(n=0)) = %d, want 2", got)
	}
}

func TestInterpolateArc_EndpointsAndRadius(t *testing.T) {
	// Endpoints deliberately at a different radius than the arc.
	a := Project(48.85, 2.35, 100)
	b := Project(40.71, -74.0, 100)
	const r = 50.05

	points := ArcPoints(a, b, r, 50)

	if !vecApprox(points[0], a.Normalized().Scale(r), tol) {
		t.Errorf("first = %+v, want %+v", points[0], a.Normalized().Scale(r))
	}
	last := points[len(points)-1]
	if !vecApprox(last, b.Normalized().Scale(r), 1e-9) {
		t.Errorf("last = %+v, want %+v", last, b.Normalized().Scale(r))
	}
	for i, p := range points {
		if !approxEqual(p.Norm(), r, 1e-9) {
			t.Errorf("point %d radius = %v, want %v", i, p.Norm(), r)
		}
	}
}

func TestInterpolateArc_EvenSpacing(t *testing.T) {
	a := Project(0, 0, 1)
	b := Project(0, 90, 1)
	points := ArcPoints(a, b, 1, 9)

	step := math.Pi / 2 / 9
	for i := 1; i < len(points); i++ {
		got := AngularSeparation(points[i-1], points[i])
		if !approxEqual(got, step, 1e-9) {
			t.Errorf("step %d = %v rad, want %v", i, got, step)
		}
	}
}

func TestInterpolateArc_Degenerate(t *testing.T) {
	a := Project(35, 139, 50)

	tests := []struct {
		name string
		end  Vec3
	}{
		{"coincident", a},
		{"coincident different radius", a.Scale(3)},
		{"antipodal", a.Scale(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := ArcPoints(a, tt.end, 50, 20)
			if len(points) != 21 {
				t.Fatalf("len = %d, want 21", len(points))
			}
			want := a.Normalized().Scale(50)
			for i, p := range points {
				if !p.IsFinite() {
					t.Fatalf("point %d is not finite: %+v", i, p)
				}
				if !vecApprox(p, want, 1e-9) {
					t.Errorf("point %d = %+v, want %+v", i, p, want)
				}
			}
		})
	}
}

func TestInterpolateArc_Restartable(t *testing.T) {
	seq := InterpolateArc(Project(0, 0, 1), Project(45, 45, 1), 1, 5)

	var first, second []Vec3
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}

	if len(first) != len(second) {
		t.Fatalf("second pass len = %d, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs between passes", i)
		}
	}
}

func TestInterpolateArc_EarlyStop(t *testing.T) {
	count := 0
	for range InterpolateArc(Project(0, 0, 1), Project(0, 90, 1), 1, 50) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
