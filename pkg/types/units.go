package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Degrees is an angle in degrees, the unit every entering angle is exchanged in.
type Degrees float64

// Radians converts the angle for the math package.
func (d Degrees) Radians() float64 { return float64(d) * math.Pi / 180 }

// Sin returns the sine of the angle. Whole multiples of 180° yield exactly 0
// rather than the rounding residue of math.Sin(math.Pi).
func (d Degrees) Sin() float64 {
	if math.Mod(float64(d), 180) == 0 {
		return 0
	}
	return math.Sin(d.Radians())
}

func (d Degrees) String() string { return fmt.Sprintf("%g°", float64(d)) }

// Length is an optional length in millimetres. The zero value is "no length".
type Length struct {
	mm    float64
	valid bool
}

// MM returns a defined length.
func MM(v float64) Length { return Length{mm: v, valid: true} }

// NoLength is the undefined length.
var NoLength = Length{}

// InfiniteLength is the degenerate length of a cut parallel to the edge.
func InfiniteLength() Length { return Length{mm: math.Inf(1), valid: true} }

// Value returns the length and whether it is defined.
func (l Length) Value() (float64, bool) { return l.mm, l.valid }

// Defined reports whether the length carries a value (finite or not).
func (l Length) Defined() bool { return l.valid }

// IsInf reports whether the length is the infinite sentinel.
func (l Length) IsInf() bool { return l.valid && math.IsInf(l.mm, 1) }

// Finite reports whether the length is defined and finite.
func (l Length) Finite() bool { return l.valid && !math.IsInf(l.mm, 0) }

// Humanized formats the length for display.
func (l Length) Humanized() string {
	switch {
	case !l.valid:
		return "—"
	case l.IsInf():
		return "∞"
	default:
		return fmt.Sprintf("%.2f mm", l.mm)
	}
}

func (l Length) String() string { return l.Humanized() }

// MarshalJSON encodes an undefined length as null and the infinite one as "inf".
func (l Length) MarshalJSON() ([]byte, error) {
	switch {
	case !l.valid:
		return []byte("null"), nil
	case l.IsInf():
		return []byte(`"inf"`), nil
	default:
		return json.Marshal(l.mm)
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (l *Length) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		*l = NoLength
		return nil
	case `"inf"`:
		*l = InfiniteLength()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("types: length: %w", err)
	}
	*l = MM(v)
	return nil
}
