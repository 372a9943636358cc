package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the required fields and the shape of the optional ones.
func (t Tool) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: tool %q: %s", ErrInvalidCatalog, t.ID, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(t.Operation) == "" {
		return bad("operation is required")
	}
	if err := checkRange(t.Fn, true); err != nil {
		return bad("fn: %v", err)
	}
	if err := checkRange(t.Vc, true); err != nil {
		return bad("vc: %v", err)
	}
	if t.Ap != nil {
		if err := checkRange(*t.Ap, false); err != nil {
			return bad("ap: %v", err)
		}
	}
	if t.Hex != nil {
		if err := checkRange(*t.Hex, true); err != nil {
			return bad("hex: %v", err)
		}
	}
	if t.Y0 != nil && !percent(*t.Y0) {
		return bad("y0 must be in [0,100], got %g", *t.Y0)
	}
	if t.Kc1 != nil && !(*t.Kc1 > 0) {
		return bad("kc1 must be > 0, got %g", *t.Kc1)
	}
	if t.Kr != nil && !(*t.Kr >= 0 && *t.Kr <= 180) {
		return bad("kr must be in [0,180], got %g", *t.Kr)
	}
	if t.DiameterMM != nil && !(*t.DiameterMM > 0) {
		return bad("diameter_mm must be > 0, got %g", *t.DiameterMM)
	}

	if o := t.Override; o != nil {
		switch o.ApSource {
		case ApFromInsertWidth:
			if !(o.InsertWidthMM > 0) {
				return bad("override: insert_width_mm must be > 0, got %g", o.InsertWidthMM)
			}
		case "":
		default:
			return bad("override: unknown ap_source %q", o.ApSource)
		}
		if o.Y0 != nil && !percent(*o.Y0) {
			return bad("override: y0 must be in [0,100], got %g", *o.Y0)
		}
	}
	return nil
}

func checkRange(r Range, positive bool) error {
	for _, v := range []float64{r.Min, r.Max, r.Rec} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite bound")
		}
	}
	if positive && !(r.Min > 0) {
		return fmt.Errorf("min must be > 0, got %g", r.Min)
	}
	if r.Min < 0 {
		return fmt.Errorf("min must be >= 0, got %g", r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("min %g exceeds max %g", r.Min, r.Max)
	}
	if !r.Contains(r.Rec) {
		return fmt.Errorf("rec %g outside [%g,%g]", r.Rec, r.Min, r.Max)
	}
	return nil
}

func percent(v float64) bool { return v >= 0 && v <= 100 }
