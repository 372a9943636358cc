// Package condition selects and runs the formula set for an operation and
// checks the outcome against the machine's local capacity.
//
// Evaluate is pure: it neither logs nor keeps state, and domain errors from
// pkg/cutting are returned unmodified.
package condition

import (
	"github.com/ja7ad/cutcond/pkg/capacity"
	"github.com/ja7ad/cutcond/pkg/catalog"
	"github.com/ja7ad/cutcond/pkg/cutting"
	"github.com/ja7ad/cutcond/pkg/types"
	"github.com/ja7ad/cutcond/pkg/util"
)

// Fixed values of the drilling and boring branches.
const (
	StandardKc1 = 400.0
	StandardM0  = 0.25

	DrillingY0 = 20.0
	DrillingKr = types.Degrees(90)

	BoringY0 = 6.0 // when the tool does not catalogue one
	BoringKr = types.Degrees(90)

	// GroovingY0 applies to insert-width overrides without their own y0.
	GroovingY0 = 20.0
)

// Evaluate computes the cutting conditions of p for tool and checks them
// against m. Non-positive fields of lim take their DefaultLimits value.
func Evaluate(p Params, tool catalog.Tool, m Machine, lim Limits) (Result, error) {
	lim = lim.withDefaults()

	n, err := cutting.RotationSpeed(p.Vc, p.D)
	if err != nil {
		return Result{}, err
	}

	var r Result
	switch op := Classify(tool.Operation); op {
	case Drilling:
		r, err = drilling(p, n)
	case Boring:
		r, err = boring(p, tool, n)
	default:
		r, err = other(p, tool, n)
	}
	if err != nil {
		return Result{}, err
	}
	r.N = n

	check(&r, p.D, m, lim)
	return r, nil
}

func drilling(p Params, n float64) (Result, error) {
	hex := cutting.HexCoordinate(p.Fn, DrillingKr)
	kc, err := cutting.DrillingCoefficient(StandardKc1, hex, StandardM0, DrillingY0)
	if err != nil {
		return Result{}, err
	}
	fa := cutting.AxialForceDrilling(StandardKc1, p.Fn, p.D)
	pc := cutting.DrillingPower(fa, p.Vc)
	mc, err := cutting.CuttingTorque(pc, n)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Operation: Drilling,
		Hex:       hex,
		Kc:        kc,
		Fa:        fa,
		Pc:        pc,
		Mc:        mc,
		La:        types.NoLength,
		Ap:        p.Ap,
		Kr:        DrillingKr,
		M0:        StandardM0,
		Y0:        DrillingY0,
		Kc1:       StandardKc1,
	}, nil
}

// boring takes hex as entered: the bar geometry sets the chip thickness.
func boring(p Params, tool catalog.Tool, n float64) (Result, error) {
	y0 := tool.Y0Or(BoringY0)
	kc, err := cutting.SpecificCuttingCoefficient(StandardKc1, p.Hex, StandardM0, y0)
	if err != nil {
		return Result{}, err
	}
	return general(Result{
		Operation: Boring,
		Hex:       p.Hex,
		Kc:        kc,
		La:        cutting.EngagementLength(p.Ap, BoringKr),
		Ap:        p.Ap,
		Kr:        BoringKr,
		M0:        StandardM0,
		Y0:        y0,
		Kc1:       StandardKc1,
	}, p, n)
}

func other(p Params, tool catalog.Tool, n float64) (Result, error) {
	ap, y0 := p.Ap, tool.Y0Or(p.Y0)
	if tool.UsesInsertWidth() {
		ap = tool.Override.InsertWidthMM
		y0 = GroovingY0
		if tool.Override.Y0 != nil {
			y0 = *tool.Override.Y0
		}
	}

	hex := cutting.HexCoordinate(p.Fn, p.Kr)
	kc, err := cutting.SpecificCuttingCoefficient(p.Kc1, hex, p.M0, y0)
	if err != nil {
		return Result{}, err
	}
	return general(Result{
		Operation: Other,
		Hex:       hex,
		Kc:        kc,
		La:        cutting.EngagementLength(ap, p.Kr),
		Ap:        ap,
		Kr:        p.Kr,
		M0:        p.M0,
		Y0:        y0,
		Kc1:       p.Kc1,
	}, p, n)
}

// general fills the tangential force, power and torque from r.Kc and r.Ap.
func general(r Result, p Params, n float64) (Result, error) {
	r.Fc = cutting.CuttingForce(r.Kc, r.Ap, p.Fn)
	r.Pc = cutting.CuttingPower(r.Fc, p.Vc)
	mc, err := cutting.CuttingTorque(r.Pc, n)
	if err != nil {
		return Result{}, err
	}
	r.Mc = mc
	return r, nil
}

func check(r *Result, d float64, m Machine, lim Limits) {
	r.Capacity = m.Table.Bracket(r.N)
	r.LocalPower, r.LocalTorque = capacity.Local(r.N, m.Table, m.MaxPower, m.MaxTorque)
	r.PowerUsage = util.SafeDiv(r.Pc, r.LocalPower)
	r.TorqueUsage = util.SafeDiv(r.Mc, r.LocalTorque)
	r.EngagementLimit = lim.EngagementRatio * d

	r.Flags = Flags{
		PowerExceeded:   r.Pc > r.LocalPower,
		TorqueExceeded:  r.Mc > r.LocalTorque,
		PowerNearLimit:  r.Pc > lim.PowerWarning*r.LocalPower,
		TorqueNearLimit: r.Mc > lim.TorqueWarning*r.LocalTorque,
	}
	if la, ok := r.La.Value(); ok && r.La.Finite() {
		r.Flags.EngagementExceeded = la > r.EngagementLimit
	}
}
