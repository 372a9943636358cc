package condition

import (
	"fmt"

	"github.com/ja7ad/cutcond/pkg/catalog"
	"github.com/ja7ad/cutcond/pkg/types"
)

// Form defaults used when the catalogue is silent.
const (
	DefaultDiameter = 50.0 // mm
	DefaultKr       = 95.0 // degrees
)

// Recommended returns the tool's recommended parameters, the values an input
// form starts from.
func Recommended(tool catalog.Tool) Params {
	p := Params{
		Vc:  tool.Vc.Rec,
		Fn:  tool.Fn.Rec,
		D:   tool.DiameterOr(DefaultDiameter),
		Kr:  types.Degrees(tool.KrOr(DefaultKr)),
		M0:  StandardM0,
		Y0:  tool.Y0Or(0),
		Kc1: tool.Kc1Or(StandardKc1),
	}
	if tool.Ap != nil {
		p.Ap = tool.Ap.Rec
	}
	if tool.Hex != nil {
		p.Hex = tool.Hex.Rec
	}
	if tool.UsesInsertWidth() {
		p.Ap = tool.Override.InsertWidthMM
	}
	return p
}

// RangeWarnings lists entered values that fall outside the tool's catalogued
// windows. They are advisories; Evaluate does not consult them.
func RangeWarnings(p Params, tool catalog.Tool) []string {
	var out []string
	add := func(name, unit string, v float64, r catalog.Range) {
		if !r.Contains(v) {
			out = append(out, fmt.Sprintf("%s=%g %s outside recommended [%g, %g]", name, v, unit, r.Min, r.Max))
		}
	}

	add("vc", "m/min", p.Vc, tool.Vc)
	add("fn", "mm/rev", p.Fn, tool.Fn)
	if tool.Ap != nil && !tool.UsesInsertWidth() {
		add("ap", "mm", p.Ap, *tool.Ap)
	}
	if tool.Hex != nil && Classify(tool.Operation) == Boring {
		add("hex", "mm", p.Hex, *tool.Hex)
	}
	return out
}
