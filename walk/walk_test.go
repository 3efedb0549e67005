package walk

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCircumference(t *testing.T) {
	if c := Circumference(0, 1); c != 0 {
		t.Errorf("Circumference(0) = %g; want 0", c)
	}
	if c := Circumference(π/2, 1); c != 2*π {
		t.Errorf("Circumference(π/2) = %g; want 2π", c)
	}
	// sin(π) is not exactly 0 in float64
	if c := Circumference(π, 1); !scalar.EqualWithinAbs(c, 0, 1e-12) {
		t.Errorf("Circumference(π) = %g; want 0", c)
	}
	if c := Circumference(π/2, RadiusOfEarthMiles); !scalar.EqualWithinRel(c, 24873.874, 1e-6) {
		t.Errorf("Circumference(π/2, earth) = %f; want 24873.874", c)
	}
	if c := Circumference(π/6, 1); !scalar.EqualWithinAbs(c, π, 1e-12) {
		t.Errorf("Circumference(π/6) = %g; want π", c)
	}
}

func TestLatStr(t *testing.T) {
	tests := []struct {
		a    float64
		want string
	}{
		{0, "90.00000 degrees N"},
		{π, "90.00000 degrees S"},
		{π / 2, "Equator!"},
		{π / 4, "45.00000 degrees N"},
		{3 * π / 4, "45.00000 degrees S"},
		{1, "32.70422 degrees N"},
		{2, "24.59156 degrees S"},
		{π/2 + 1e-12, "0.00000 degrees S"},
	}
	for _, tt := range tests {
		if got := LatStr(tt.a); got != tt.want {
			t.Errorf("LatStr(%g) = %q; want %q", tt.a, got, tt.want)
		}
	}
}

func TestSolveLine(t *testing.T) {
	res, err := NewSolver().Solve(1)
	if err != nil {
		t.Fatalf("Solve(1): %v", err)
	}
	want := "a=1.00000 (32.70422 degrees N) --> b=1.84376 to 72.93568 degrees S (2.843764100000rads) " +
		"(x=0.29344, circ_x=1.84376, total distance=3.68753)(c-x=0.00438)"
	if got := res.Line(1); got != want {
		t.Errorf("Solve(1).Line(1) =\n%s\nwant\n%s", got, want)
	}
}

func TestSolveFromNorthPole(t *testing.T) {
	res, err := NewSolver().Solve(0.00001)
	if err != nil {
		t.Fatalf("Solve(0.00001): %v", err)
	}
	if got := LatStr(res.A + res.B); got != "64.57267 degrees S" {
		t.Errorf("Solve(0.00001) ends at %s; want 64.57267 degrees S", got)
	}
	want := "a=0.03959 (89.99943 degrees N) --> b=10680.01897 to 64.57267 degrees S (2.697802000000rads) " +
		"(x=1699.77768, circ_x=10680.01817, total distance=21360.03714)(c-x=57.10076)"
	if got := res.Line(RadiusOfEarthMiles); got != want {
		t.Errorf("Solve(0.00001).Line(earth) =\n%s\nwant\n%s", got, want)
	}
}

func TestSolveConverges(t *testing.T) {
	for _, a := range []float64{0.00001, 0.3, 0.7766715172, 1, 1.5, 2, 2.5, 3, 3.14, π - 0.0001} {
		var last Step
		s := NewSolver()
		s.Observe = func(step Step) { last = step }

		res, err := s.Solve(a)
		if err != nil {
			t.Errorf("Solve(%g): %v", a, err)
			continue
		}
		if res.B < 0 {
			t.Errorf("Solve(%g) = %g; want b >= 0", a, res.B)
		}
		if math.Abs(last.Delta) >= Tolerance {
			t.Errorf("Solve(%g) stopped with delta %g", a, last.Delta)
		}
		// the last step is still applied after the residual check
		if d := Circumference(a+last.B, 1) - last.B; d != last.Delta {
			t.Errorf("Solve(%g) last step delta = %g; want %g", a, last.Delta, d)
		}
		want := last.B
		if last.Delta > 0 {
			want += last.Increment
		}
		if last.Delta < 0 {
			want = want - last.PrevIncrement + last.Increment
		}
		if res.B != want {
			t.Errorf("Solve(%g) = %g; want %g", a, res.B, want)
		}
		if d := math.Abs(Circumference(a+res.B, 1) - res.B); d > 1e-3 {
			t.Errorf("Solve(%g) residual %g", a, d)
		}
	}
}

func TestSolveSteps(t *testing.T) {
	var steps []Step
	s := NewSolver()
	s.Observe = func(step Step) { steps = append(steps, step) }

	res, err := s.Solve(0.5)
	if err != nil {
		t.Fatalf("Solve(0.5): %v", err)
	}
	if len(steps) != res.Iterations {
		t.Fatalf("observed %d steps; want %d", len(steps), res.Iterations)
	}

	increment := 0.1
	overshot := false
	prev := 0.0
	for i, step := range steps {
		if step.Iteration != i+1 {
			t.Errorf("step %d has iteration %d", i, step.Iteration)
		}
		if step.Overshoot {
			if step.Delta >= 0 {
				t.Errorf("step %d overshoot with delta %g", i, step.Delta)
			}
			if step.PrevIncrement != increment {
				t.Errorf("step %d previous increment %g; want %g", i, step.PrevIncrement, increment)
			}
			if step.Increment != increment/10 {
				t.Errorf("step %d increment %g; want %g", i, step.Increment, increment/10)
			}
			increment = step.Increment
			overshot = true
		} else if step.Increment != increment {
			t.Errorf("step %d increment %g; want %g", i, step.Increment, increment)
		}
		if !overshot && step.B < prev {
			t.Errorf("step %d b=%g decreased from %g before any overshoot", i, step.B, prev)
		}
		prev = step.B
	}
	if !overshot {
		t.Errorf("Solve(0.5) never overshot")
	}
}

func TestSolveWithoutIteration(t *testing.T) {
	for _, a := range []float64{0, 1e-7} {
		res, err := NewSolver().Solve(a)
		if err != nil {
			t.Fatalf("Solve(%g): %v", a, err)
		}
		if res.B != 0 || res.Iterations != 0 || res.X != 0 {
			t.Errorf("Solve(%g) = %+v; want b=0 without iterating", a, res)
		}
	}

	res, err := NewSolver().Solve(math.NaN())
	if err != nil || res.B != 0 || res.Iterations != 0 {
		t.Errorf("Solve(NaN) = %+v, %v; want b=0", res, err)
	}
}

func TestSolveMaxIterations(t *testing.T) {
	s := Solver{MaxIterations: 3}
	res, err := s.Solve(1)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("Solve(1) with 3 iterations: err = %v; want ErrNoConvergence", err)
	}
	if res.Iterations != 3 || !scalar.EqualWithinAbs(res.B, 0.3, 1e-12) {
		t.Errorf("Solve(1) with 3 iterations = %+v; want b=0.3", res)
	}

	unbounded, err := Solver{}.Solve(1)
	if err != nil {
		t.Fatalf("Solve(1) unbounded: %v", err)
	}
	bounded, _ := NewSolver().Solve(1)
	if unbounded != bounded {
		t.Errorf("bounded %+v differs from unbounded %+v", bounded, unbounded)
	}
}

func TestTrace(t *testing.T) {
	a := (90 - 45.5) * π / 180
	res, err := NewSolver().Solve(a)
	if err != nil {
		t.Fatalf("Solve(%g): %v", a, err)
	}

	p := res.Path()
	if !scalar.EqualWithinAbs(p.Start.Lat, 45.5, 1e-9) || p.Start.Lon != 0 {
		t.Errorf("Start = %v; want {45.5 0}", p.Start)
	}
	if !scalar.EqualWithinAbs(p.Turn.Lat, latitude(a+res.B), 1e-9) {
		t.Errorf("Turn.Lat = %f; want %f", p.Turn.Lat, latitude(a+res.B))
	}
	if p.Lap.Lat != p.Turn.Lat {
		t.Errorf("Lap.Lat = %f; want %f", p.Lap.Lat, p.Turn.Lat)
	}
	south, north := p.Headings()
	if math.Abs(math.Remainder(south-180, 360)) > 1e-6 {
		t.Errorf("south leg heading = %f; want 180", south)
	}
	if math.Abs(math.Remainder(north, 360)) > 1e-6 {
		t.Errorf("north leg heading = %f; want 0", north)
	}
	if !p.Closed(1e-4) {
		t.Errorf("walk from %v ends at %v (gap %g)", p.Start, p.End, p.Gap(1))
	}
	if g := p.Gap(RadiusOfEarthMiles); g > 1 {
		t.Errorf("Gap = %f mi; want < 1", g)
	}

	// half the circle of latitude is not a closed walk
	open := Trace(a, res.B/2)
	if open.Closed(1e-4) {
		t.Errorf("half-length walk closed: %v", open)
	}
}
