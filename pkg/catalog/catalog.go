// Package catalog loads and validates the cutting-insert catalogue.
//
// The catalogue is a mapping from insert id to Tool, stored as JSON or YAML.
// Validation happens once at load time; a loaded Catalog is read-only.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the catalogue encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf picks a format from a file extension (.yaml/.yml, otherwise JSON).
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Catalog is an immutable set of tools keyed by insert id.
type Catalog struct {
	tools map[string]Tool
}

// New validates tools and builds a Catalog. Map keys become Tool.ID.
func New(tools map[string]Tool) (*Catalog, error) {
	if len(tools) == 0 {
		return nil, fmt.Errorf("%w: no tools", ErrInvalidCatalog)
	}
	c := &Catalog{tools: make(map[string]Tool, len(tools))}
	for id, t := range tools {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: empty tool id", ErrInvalidCatalog)
		}
		t.ID = id
		if err := t.Validate(); err != nil {
			return nil, err
		}
		c.tools[id] = t
	}
	return c, nil
}

// Decode reads a catalogue in the given format.
func Decode(r io.Reader, format Format) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}

	tools := map[string]Tool{}
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&tools)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&tools)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	return New(tools)
}

// Load reads a catalogue file, choosing the format by extension.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Lookup returns the tool with the given insert id.
func (c *Catalog) Lookup(id string) (Tool, error) {
	t, ok := c.tools[id]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}
	return t, nil
}

// IDs returns the insert ids in lexical order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.tools))
	for id := range c.tools {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of tools.
func (c *Catalog) Len() int { return len(c.tools) }
