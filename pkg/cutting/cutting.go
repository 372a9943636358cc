// Package cutting holds the closed-form cutting-condition formulas.
//
// Units:
//   - Vc: m/min, D/ap/hex/fn: mm (fn per revolution), kr: degrees
//   - kc/kc1: N/mm², forces: N, power: kW, torque: Nm, n: rpm
//
// Every function is pure. Nothing is rounded here.
package cutting

import (
	"math"

	"github.com/ja7ad/cutcond/pkg/types"
)

const (
	// powerDivisor converts N·m/min to kW.
	powerDivisor = 60000
	// drillingPowerDivisor is the axial force convention used for drilling.
	drillingPowerDivisor = 240000
	// torqueFactor is 1000·60/2, the kW·rpm→Nm factor before dividing by π.
	torqueFactor = 30000
	// drillingBase is the numerator of the drilling chip-thickness term.
	drillingBase = 2
)

// RotationSpeed returns the spindle speed n = 1000·Vc / (π·D).
func RotationSpeed(vc, d float64) (float64, error) {
	if !(d > 0) {
		return 0, &DomainError{Op: "rotation speed", Quantity: "D", Value: d}
	}
	return 1000 * vc / (math.Pi * d), nil
}

// HexCoordinate returns the chip thickness hex = fn·sin(kr).
func HexCoordinate(fn float64, kr types.Degrees) float64 {
	return fn * kr.Sin()
}

// EngagementLength returns La = ap / sin(kr).
//
// A depth of cut ap ≤ 0 has no engagement and yields types.NoLength. An edge
// parallel to the surface (sin(kr) = 0) yields types.InfiniteLength.
func EngagementLength(ap float64, kr types.Degrees) types.Length {
	if !(ap > 0) {
		return types.NoLength
	}
	s := kr.Sin()
	if s == 0 {
		return types.InfiniteLength()
	}
	return types.MM(ap / s)
}

// SpecificCuttingCoefficient returns kc = kc1 · hex^(−m0) · (1 − Y0/100).
func SpecificCuttingCoefficient(kc1, hex, m0, y0 float64) (float64, error) {
	if !(hex > 0) {
		return 0, &DomainError{Op: "specific cutting coefficient", Quantity: "hex", Value: hex}
	}
	return kc1 * math.Pow(hex, -m0) * (1 - y0/100), nil
}

// DrillingCoefficient returns kc = kc1 · (2/hex)^m0 · (1 − Y0/100).
func DrillingCoefficient(kc1, hex, m0, y0 float64) (float64, error) {
	if !(hex > 0) {
		return 0, &DomainError{Op: "drilling coefficient", Quantity: "hex", Value: hex}
	}
	return kc1 * math.Pow(drillingBase/hex, m0) * (1 - y0/100), nil
}

// CuttingForce returns the tangential force Fc = kc·ap·fn.
func CuttingForce(kc, ap, fn float64) float64 {
	return kc * ap * fn
}

// AxialForceDrilling returns the drilling thrust Fa = kc1·fn·D.
func AxialForceDrilling(kc1, fn, d float64) float64 {
	return kc1 * fn * d
}

// CuttingPower returns Pc = F·Vc / 60000.
func CuttingPower(f, vc float64) float64 {
	return f * vc / powerDivisor
}

// DrillingPower returns Pc = Fa·Vc / 240000.
func DrillingPower(fa, vc float64) float64 {
	return fa * vc / drillingPowerDivisor
}

// CuttingTorque returns Mc = 30000·Pc / (n·π).
func CuttingTorque(pc, n float64) (float64, error) {
	if !(n > 0) {
		return 0, &DomainError{Op: "cutting torque", Quantity: "n", Value: n}
	}
	return torqueFactor * pc / (n * math.Pi), nil
}
