package walk

import (
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

const π = math.Pi

const (
	RadiusOfEarthMiles = 3958.8
	ArcOfEarthMiles    = RadiusOfEarthMiles * π

	// Tolerance on |Circumference(a+b) - b|.
	Tolerance = 0.000001

	initialIncrement = 0.1

	DefaultMaxIterations = 1000000
)

var ErrNoConvergence = errors.New("no convergence")

// Circumference of the circle of latitude at colatitude a on a sphere of
// radius r.
func Circumference(a, r float64) float64 {
	x := r * math.Sin(a)
	return float64(2 * π * x)
}

func latitude(a float64) float64 {
	k := 180.0
	k /= π
	return 90 - float64(k*a)
}

// LatStr formats colatitude a as a latitude north or south of the equator.
// Only an exact zero latitude is reported as the equator.
func LatStr(a float64) string {
	lat := latitude(a)
	if lat > 0 {
		return fmt.Sprintf("%3.5f degrees N", lat)
	}
	if lat < 0 {
		return fmt.Sprintf("%3.5f degrees S", -lat)
	}
	return "Equator!"
}

// Step is one iteration of the search, observed before b is moved.
type Step struct {
	Iteration int
	B         float64
	Delta     float64
	// PrevIncrement was in effect before the step, Increment after it.
	PrevIncrement float64
	Increment     float64
	Overshoot bool
}

type Result struct {
	A float64
	B float64
	// X and Circ come from the last evaluation of the residual.
	X          float64
	Circ       float64
	Iterations int
}

// Line renders the result with every length scaled by r.
func (res Result) Line(r float64) string {
	a, b, x, circ := res.A, res.B, res.X, res.Circ
	return fmt.Sprintf("a=%2.5f (%s) --> b=%2.5f to %s (%2.12frads) "+
		"(x=%2.5f, circ_x=%2.5f, total distance=%2.5f)"+
		"(c-x=%2.5f)",
		a*r,
		LatStr(a),
		b*r,
		LatStr(a+b),
		a+b,
		x*r,
		circ*r,
		(b+circ)*r,
		(π-a-b-x)*r)
}

// Path traces the walk for this result on the unit sphere.
func (res Result) Path() Path {
	return Trace(res.A, res.B)
}

// Solver finds b for a given a. The zero value runs without an iteration cap.
type Solver struct {
	// MaxIterations bounds the search, 0 means no bound.
	MaxIterations int
	Observe       func(Step)
}

func NewSolver() Solver {
	return Solver{MaxIterations: DefaultMaxIterations}
}

// Solve walks b up from 0 by increment while the residual is positive. On an
// overshoot it steps back, divides the increment by ten and steps forward
// again.
func (s Solver) Solve(a float64) (Result, error) {
	start := time.Now()

	res := Result{A: a, Circ: Circumference(a, 1)}
	increment := initialIncrement
	b := 0.0
	delta := res.Circ - b

	for math.Abs(delta) >= Tolerance {
		if s.MaxIterations > 0 && res.Iterations >= s.MaxIterations {
			res.B = b
			return res, fmt.Errorf("a=%f after %d iterations (delta=%g): %w", a, res.Iterations, delta, ErrNoConvergence)
		}
		res.Iterations++

		res.X = math.Sin(a + b)
		res.Circ = Circumference(a+b, 1)
		delta = res.Circ - b

		step := Step{Iteration: res.Iterations, B: b, Delta: delta, PrevIncrement: increment}
		if delta > 0 {
			b += increment
		}
		if delta < 0 {
			b -= increment
			increment = increment / 10
			b += increment
			step.Overshoot = true
		}
		step.Increment = increment
		if s.Observe != nil {
			s.Observe(step)
		}
	}
	res.B = b

	log.WithFields(log.Fields{
		"a":          a,
		"b":          b,
		"iterations": res.Iterations,
		"took":       time.Since(start),
	}).Debug("Solved")

	return res, nil
}
