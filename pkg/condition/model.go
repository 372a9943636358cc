package condition

import (
	"github.com/ja7ad/cutcond/pkg/capacity"
	"github.com/ja7ad/cutcond/pkg/types"
)

// Params are the cutting inputs of one evaluation.
// Units:
//   - Vc: m/min
//   - D, Fn, Ap, Hex: mm (Fn per revolution)
//   - Kr: degrees
//   - M0: dimensionless chip-thickness exponent
//   - Y0: correction percentage [0..100]
//   - Kc1: N/mm²
type Params struct {
	Vc  float64       `json:"vc" yaml:"vc"`
	D   float64       `json:"d" yaml:"d"`
	Fn  float64       `json:"fn" yaml:"fn"`
	Ap  float64       `json:"ap" yaml:"ap"`
	Hex float64       `json:"hex" yaml:"hex"`
	Kr  types.Degrees `json:"kr" yaml:"kr"`
	M0  float64       `json:"m0" yaml:"m0"`
	Y0  float64       `json:"y0" yaml:"y0"`
	Kc1 float64       `json:"kc1" yaml:"kc1"`
}

// Machine is the capacity envelope evaluations are checked against.
type Machine struct {
	Table     capacity.Table
	MaxPower  float64 // kW, used outside the table's span
	MaxTorque float64 // Nm, used outside the table's span
}

// Limits are the advisory thresholds.
//   - PowerWarning/TorqueWarning: fraction of local capacity flagged as near the limit
//   - EngagementRatio: La above EngagementRatio·D is flagged
type Limits struct {
	PowerWarning    float64
	TorqueWarning   float64
	EngagementRatio float64
}

// DefaultLimits returns the stock thresholds (80 %, 80 %, 0.7·D).
func DefaultLimits() Limits {
	return Limits{
		PowerWarning:    0.8,
		TorqueWarning:   0.8,
		EngagementRatio: 0.7,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if !(l.PowerWarning > 0) {
		l.PowerWarning = def.PowerWarning
	}
	if !(l.TorqueWarning > 0) {
		l.TorqueWarning = def.TorqueWarning
	}
	if !(l.EngagementRatio > 0) {
		l.EngagementRatio = def.EngagementRatio
	}
	return l
}

// Flags are the advisory threshold results. None of them is an error.
type Flags struct {
	PowerExceeded      bool `json:"power_exceeded"`
	TorqueExceeded     bool `json:"torque_exceeded"`
	EngagementExceeded bool `json:"engagement_exceeded"`
	PowerNearLimit     bool `json:"power_near_limit"`
	TorqueNearLimit    bool `json:"torque_near_limit"`
}

// Exceeded reports whether any hard limit is exceeded.
func (f Flags) Exceeded() bool {
	return f.PowerExceeded || f.TorqueExceeded || f.EngagementExceeded
}

// Result is the outcome of one evaluation.
//
// Fc is zero for drilling and Fa is zero otherwise. The effective inputs
// (after the selector's fixed values and tool overrides) are echoed back.
type Result struct {
	Operation Operation `json:"operation"`

	N   float64      `json:"n_rpm"`
	Hex float64      `json:"hex_mm"`
	Kc  float64      `json:"kc"`
	Fc  float64      `json:"fc_n"`
	Fa  float64      `json:"fa_n"`
	Pc  float64      `json:"pc_kw"`
	Mc  float64      `json:"mc_nm"`
	La  types.Length `json:"la_mm"`

	Ap  float64       `json:"ap_mm"`
	Kr  types.Degrees `json:"kr"`
	M0  float64       `json:"m0"`
	Y0  float64       `json:"y0"`
	Kc1 float64       `json:"kc1"`

	LocalPower  float64          `json:"local_power_kw"`
	LocalTorque float64          `json:"local_torque_nm"`
	PowerUsage  float64          `json:"power_usage"`
	TorqueUsage float64          `json:"torque_usage"`
	Capacity    capacity.Bracket `json:"capacity"`
	// EngagementLimit is EngagementRatio·D in mm.
	EngagementLimit float64 `json:"engagement_limit_mm"`

	Flags Flags `json:"flags"`
}
