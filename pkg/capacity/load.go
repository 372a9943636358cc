package capacity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// record mirrors the exported "n/power/torque" rows. Pointers detect missing fields.
type record struct {
	N      *float64 `json:"n"`
	Power  *float64 `json:"power"`
	Torque *float64 `json:"torque"`
}

// Decode reads a JSON array of {"n","power","torque"} records.
func Decode(r io.Reader) (Table, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return Table{}, fmt.Errorf("%w: decode: %v", ErrInvalidTable, err)
	}

	pts := make([]Point, 0, len(recs))
	for i, rec := range recs {
		if rec.N == nil || rec.Power == nil || rec.Torque == nil {
			return Table{}, fmt.Errorf("%w: record %d must contain n, power and torque", ErrInvalidTable, i)
		}
		pts = append(pts, Point{N: *rec.N, Power: *rec.Power, Torque: *rec.Torque})
	}
	return NewTable(pts)
}

// Load reads a capacity table from a JSON file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("capacity: open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	t, err := Decode(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
