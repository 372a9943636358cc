package catalog

// ApSource names where the depth of cut comes from when an override applies.
type ApSource string

// ApFromInsertWidth makes the insert's physical width stand in for ap
// (grooving inserts cut their full width).
const ApFromInsertWidth ApSource = "insert_width"

// Range is a min/max window with a recommended value.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
	Rec float64 `json:"rec" yaml:"rec"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Override is per-insert policy applied by the operation selector.
type Override struct {
	ApSource      ApSource `json:"ap_source" yaml:"ap_source"`
	InsertWidthMM float64  `json:"insert_width_mm" yaml:"insert_width_mm"`
	// Y0 forces the correction percentage; nil keeps the selector default.
	Y0 *float64 `json:"y0,omitempty" yaml:"y0,omitempty"`
}

// Tool is one catalogued cutting insert.
//
// Operation, Material, Fn and Vc are required. The remaining fields are
// optional and nil when absent.
type Tool struct {
	ID        string `json:"-" yaml:"-"`
	Operation string `json:"operation" yaml:"operation"`
	Material  string `json:"material" yaml:"material"`

	Fn  Range  `json:"fn" yaml:"fn"` // mm/rev
	Vc  Range  `json:"vc" yaml:"vc"` // m/min
	Ap  *Range `json:"ap,omitempty" yaml:"ap,omitempty"`
	Hex *Range `json:"hex,omitempty" yaml:"hex,omitempty"`

	Y0         *float64 `json:"y0,omitempty" yaml:"y0,omitempty"`
	Kc1        *float64 `json:"kc1,omitempty" yaml:"kc1,omitempty"`
	Kr         *float64 `json:"kr,omitempty" yaml:"kr,omitempty"`
	DiameterMM *float64 `json:"diameter_mm,omitempty" yaml:"diameter_mm,omitempty"`

	Override *Override `json:"override,omitempty" yaml:"override,omitempty"`
}

// UsesInsertWidth reports whether ap is replaced by the insert width.
func (t Tool) UsesInsertWidth() bool {
	return t.Override != nil && t.Override.ApSource == ApFromInsertWidth
}

// Y0Or returns the catalogued correction percentage or def.
func (t Tool) Y0Or(def float64) float64 {
	if t.Y0 != nil {
		return *t.Y0
	}
	return def
}

// Kc1Or returns the catalogued kc1 or def.
func (t Tool) Kc1Or(def float64) float64 {
	if t.Kc1 != nil {
		return *t.Kc1
	}
	return def
}

// KrOr returns the catalogued entering angle or def.
func (t Tool) KrOr(def float64) float64 {
	if t.Kr != nil {
		return *t.Kr
	}
	return def
}

// DiameterOr returns the catalogued default diameter or def.
func (t Tool) DiameterOr(def float64) float64 {
	if t.DiameterMM != nil {
		return *t.DiameterMM
	}
	return def
}
