package catalog

import "errors"

var (
	// ErrInvalidCatalog indicates a catalogue entry that fails schema validation.
	ErrInvalidCatalog = errors.New("catalog: invalid catalogue")

	// ErrUnknownTool indicates a lookup of an insert id that is not catalogued.
	ErrUnknownTool = errors.New("catalog: unknown tool")
)
