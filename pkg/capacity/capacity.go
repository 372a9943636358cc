// Package capacity interpolates the locally available spindle power and torque
// from a machine's speed/power/torque curve.
//
// A Table is an immutable, sorted snapshot. Reloading a curve builds a new Table,
// so concurrent evaluations never observe a partially updated one.
package capacity

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Point is one sample of the machine curve.
type Point struct {
	N      float64 `json:"n" yaml:"n"`           // rpm
	Power  float64 `json:"power" yaml:"power"`   // kW
	Torque float64 `json:"torque" yaml:"torque"` // Nm
}

// Table is a machine curve ordered by strictly increasing N.
// The zero Table is empty; Local then always falls back to the global maxima.
type Table struct {
	points []Point
}

// NewTable copies, sorts and validates pts.
func NewTable(pts []Point) (Table, error) {
	if len(pts) == 0 {
		return Table{}, fmt.Errorf("%w: no points", ErrInvalidTable)
	}

	sorted := slices.Clone(pts)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		switch {
		case a.N < b.N:
			return -1
		case a.N > b.N:
			return 1
		default:
			return 0
		}
	})

	for i, p := range sorted {
		if !finite(p.N) || !finite(p.Power) || !finite(p.Torque) {
			return Table{}, fmt.Errorf("%w: non-finite value at n=%g", ErrInvalidTable, p.N)
		}
		if p.Power < 0 || p.Torque < 0 {
			return Table{}, fmt.Errorf("%w: negative power/torque at n=%g", ErrInvalidTable, p.N)
		}
		if i > 0 && sorted[i-1].N == p.N {
			return Table{}, fmt.Errorf("%w: duplicate speed %g", ErrInvalidTable, p.N)
		}
	}
	return Table{points: sorted}, nil
}

// Len returns the number of samples.
func (t Table) Len() int { return len(t.points) }

// Points returns a copy of the samples in speed order.
func (t Table) Points() []Point { return slices.Clone(t.points) }

// Span returns the lowest and highest sampled speed. ok is false for an empty table.
func (t Table) Span() (lo, hi float64, ok bool) {
	if len(t.points) == 0 {
		return 0, 0, false
	}
	return t.points[0].N, t.points[len(t.points)-1].N, true
}

// Bracket describes how a speed maps onto the table.
type Bracket struct {
	// InRange is false when n lies on or outside the sampled span; the global
	// maxima apply and the other fields are zero.
	InRange bool    `json:"in_range"`
	Lower   Point   `json:"lower"`
	Upper   Point   `json:"upper"`
	Alpha   float64 `json:"alpha"`
}

// Bracket finds the two samples enclosing n and the interpolation fraction.
func (t Table) Bracket(n float64) Bracket {
	k := len(t.points)
	if k == 0 || math.IsNaN(n) || n <= t.points[0].N || n >= t.points[k-1].N {
		return Bracket{}
	}

	// first sample with N >= n; 1 <= i <= k-1 given the range check above
	i := sort.Search(k, func(i int) bool { return t.points[i].N >= n })
	lo, hi := t.points[i-1], t.points[i]
	return Bracket{
		InRange: true,
		Lower:   lo,
		Upper:   hi,
		Alpha:   (n - lo.N) / (hi.N - lo.N),
	}
}

// Local returns the power and torque available at n.
//
// Inside the sampled span the two bracketing samples are linearly interpolated.
// On or outside the span, or for an empty table, maxPower and maxTorque are
// returned unchanged.
func Local(n float64, t Table, maxPower, maxTorque float64) (power, torque float64) {
	b := t.Bracket(n)
	if !b.InRange {
		return maxPower, maxTorque
	}
	return b.Power(), b.Torque()
}

// Power interpolates the bracket's power.
func (b Bracket) Power() float64 {
	return b.Lower.Power + b.Alpha*(b.Upper.Power-b.Lower.Power)
}

// Torque interpolates the bracket's torque.
func (b Bracket) Torque() float64 {
	return b.Lower.Torque + b.Alpha*(b.Upper.Torque-b.Lower.Torque)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
