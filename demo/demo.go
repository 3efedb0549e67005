package demo

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/earthwalker/walk"
)

const π = math.Pi

// HillsboroLat is the latitude of Hillsboro, Oregon.
const HillsboroLat = 45.5

// Name selects a demonstration.
type Name string

const (
	Default       Name = "default"
	FindTop       Name = "find-top"
	FindBottom    Name = "find-bottom"
	Hillsboro     Name = "hillsboro"
	Sweep         Name = "sweep"
	Circumference Name = "circumference"
	Circles       Name = "circles"
	Solve         Name = "solve"
)

var Names = []Name{Default, FindTop, FindBottom, Hillsboro, Sweep, Circumference, Circles, Solve}

var ErrUnknownDemo = errors.New("unknown demo")

func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, name := range Names {
		if n == name {
			return n, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownDemo)
}

type Notifier interface {
	Send(message string) error
}

// Runner writes the output of the demonstrations to Out. Lengths are scaled
// by Radius.
type Runner struct {
	Out      io.Writer
	Solver   walk.Solver
	Radius   float64
	Notifier Notifier
	// A is the colatitude solved by the solve demo.
	A float64
}

func NewRunner(out io.Writer) *Runner {
	return &Runner{
		Out:    out,
		Solver: walk.NewSolver(),
		Radius: walk.RadiusOfEarthMiles,
		A:      1,
	}
}

func (r *Runner) Run(name Name) error {
	log.WithField("demo", name).Debug("Run")

	var err error
	switch name {
	case Default:
		if _, err = r.FindTop(); err == nil {
			err = r.Hillsboro()
		}
	case FindTop:
		_, err = r.FindTop()
	case FindBottom:
		_, err = r.FindBottom()
	case Hillsboro:
		err = r.Hillsboro()
	case Sweep:
		err = r.Sweep()
	case Circumference:
		r.CircumferenceTable()
	case Circles:
		r.Circles()
	case Solve:
		_, err = r.Solve(r.A)
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownDemo)
	}
	return err
}

func (r *Runner) solve(a, scale float64) (float64, error) {
	res, err := r.Solver.Solve(a)
	if err != nil {
		return res.B, err
	}
	fmt.Fprintln(r.Out, res.Line(scale))

	if log.IsLevelEnabled(log.DebugLevel) {
		p := res.Path()
		south, north := p.Headings()
		log.WithFields(log.Fields{
			"a":     a,
			"end":   p.End,
			"south": south,
			"north": north,
			"gap":   p.Gap(r.Radius),
		}).Debug("Walk traced")
	}
	return res.B, nil
}

// Solve prints the walk starting at colatitude a.
func (r *Runner) Solve(a float64) (float64, error) {
	return r.solve(a, r.Radius)
}

// Sweep prints the walks from the north pole down to the south pole every
// 0.1 radian.
func (r *Runner) Sweep() error {
	for a := 0.0; a < π; a += 0.1 {
		if _, err := r.solve(a, r.Radius); err != nil {
			return err
		}
	}
	return nil
}

// FindTop approaches the northern-most circle walked west, i.e. the smallest
// a+b, by starting ever closer to the north pole. It ends around 64.57°S.
func (r *Runner) FindTop() (float64, error) {
	var b float64
	for a := 0.00001; a > 0; a -= 0.0000001 {
		var err error
		if b, err = r.solve(a, r.Radius); err != nil {
			return b, err
		}
	}
	return b, nil
}

// FindBottom starts ever closer to the south pole. There is no bottom limit
// other than the pole itself.
func (r *Runner) FindBottom() (float64, error) {
	var b float64
	a := π
	a -= 0.0001
	for a < π {
		var err error
		if b, err = r.solve(a, r.Radius); err != nil {
			return b, err
		}
		a += 0.000001
	}
	return b, nil
}

func colatitude(lat float64) float64 {
	return (90 - lat) * π / 180
}

// Hillsboro tells the walk starting from Hillsboro.
func (r *Runner) Hillsboro() error {
	a := colatitude(HillsboroLat)
	b, err := r.solve(a, 1)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Starting in Hillsboro at %s (%6.3fmi from north pole), walk south "+
		"for %6.3f miles to %s (%6.3f miles from south pole) "+
		"(a=%2.9f --> b=%2.9f)",
		walk.LatStr(a),
		a*r.Radius,
		b*r.Radius,
		walk.LatStr(a+b),
		(π-b-a)*r.Radius,
		a, b)
	fmt.Fprintln(r.Out, msg)

	if r.Notifier != nil {
		if err := r.Notifier.Send(msg); err != nil {
			log.WithError(err).Warn("Unable to notify the Hillsboro walk")
		}
	}
	return nil
}

// CircumferenceTable prints the circumference on the unit sphere every 0.2
// radian.
func (r *Runner) CircumferenceTable() {
	for a := 0.0; a <= π; a += 0.2 {
		fmt.Fprintf(r.Out, "a=%3.9f, x=%3.9f\n", a, walk.Circumference(a, 1))
	}
}

// Circles prints the length of a few circles of latitude.
func (r *Runner) Circles() {
	circEq := walk.Circumference(π/2, 1)
	circ45n := walk.Circumference(π/4, 1)
	circ45s := walk.Circumference(3*π/4, 1)

	fmt.Fprintf(r.Out, "circ_eq  in miles=%3.3f\n", circEq*r.Radius)
	fmt.Fprintf(r.Out, "circ_45n in miles=%3.3f\n", circ45n*r.Radius)
	fmt.Fprintf(r.Out, "circ_45s in miles=%3.3f\n", circ45s*r.Radius)
	fmt.Fprintf(r.Out, "pole to pole in miles=%3.3f\n", π*r.Radius)
}
