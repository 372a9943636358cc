package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func validTool() Tool {
	return Tool{
		Operation: "Tournage",
		Material:  "P",
		Fn:        Range{Min: 0.1, Max: 0.4, Rec: 0.2},
		Vc:        Range{Min: 100, Max: 400, Rec: 250},
	}
}

func TestLoad_JSON(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "conditions.json"))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{
		"CCMT 09 T3 04-PM 4325",
		"CNMG 12 04 08-PM 4325",
		"N123G2-0300-0001-CF 1125",
		"R840-1000-30-A0A 1220",
	}, c.IDs())

	g, err := c.Lookup("N123G2-0300-0001-CF 1125")
	require.NoError(t, err)
	assert.Equal(t, "N123G2-0300-0001-CF 1125", g.ID)
	assert.True(t, g.UsesInsertWidth())
	assert.Equal(t, 3.0, g.Override.InsertWidthMM)
	require.NotNil(t, g.Override.Y0)
	assert.Equal(t, 20.0, *g.Override.Y0)

	b, err := c.Lookup("CCMT 09 T3 04-PM 4325")
	require.NoError(t, err)
	assert.False(t, b.UsesInsertWidth())
	assert.Equal(t, 6.0, b.Y0Or(6))
	assert.Equal(t, 95.0, b.KrOr(0))
	require.NotNil(t, b.Hex)
	assert.Equal(t, 0.25, b.Hex.Rec)

	d, err := c.Lookup("R840-1000-30-A0A 1220")
	require.NoError(t, err)
	assert.Equal(t, 10.0, d.DiameterOr(50))
	assert.Equal(t, 400.0, d.Kc1Or(400))
}

func TestLoad_YAMLMatchesJSON(t *testing.T) {
	y, err := Load(filepath.Join("testdata", "conditions.yaml"))
	require.NoError(t, err)
	j, err := Load(filepath.Join("testdata", "conditions.json"))
	require.NoError(t, err)

	for _, id := range y.IDs() {
		yt, err := y.Lookup(id)
		require.NoError(t, err)
		jt, err := j.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, jt, yt, id)
	}
}

func TestLookup_Unknown(t *testing.T) {
	c, err := New(map[string]Tool{"A": validTool()})
	require.NoError(t, err)
	_, err = c.Lookup("B")
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestDecode_RejectsUnknownJSONFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"A":{"operation":"x","fn":{"min":0.1,"max":0.2,"rec":0.1},"vc":{"min":1,"max":2,"rec":1},"bogus":1}}`), JSON)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestDecode_RejectsUnknownYAMLFields(t *testing.T) {
	doc := `
N123G2:
  operation: Tronçonnage et gorge
  material: P - Acier
  fn: {min: 0.05, max: 0.2, rec: 0.1}
  vc: {min: 80, max: 200, rec: 140}
  overide: {ap_source: insert_width, insert_width_mm: 3}
`
	_, err := Decode(strings.NewReader(doc), YAML)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	c, err := Decode(strings.NewReader(strings.Replace(doc, "overide", "override", 1)), YAML)
	require.NoError(t, err)
	tool, err := c.Lookup("N123G2")
	require.NoError(t, err)
	assert.True(t, tool.UsesInsertWidth())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Tool){
		"no operation":      func(t *Tool) { t.Operation = " " },
		"fn min zero":       func(t *Tool) { t.Fn.Min = 0 },
		"vc rec above max":  func(t *Tool) { t.Vc.Rec = 500 },
		"ap min above max":  func(t *Tool) { t.Ap = &Range{Min: 3, Max: 2, Rec: 2} },
		"hex zero":          func(t *Tool) { t.Hex = &Range{Min: 0, Max: 0.4, Rec: 0.2} },
		"y0 above 100":      func(t *Tool) { t.Y0 = ptr(120) },
		"kr above 180":      func(t *Tool) { t.Kr = ptr(200) },
		"kc1 zero":          func(t *Tool) { t.Kc1 = ptr(0) },
		"diameter negative": func(t *Tool) { t.DiameterMM = ptr(-1) },
		"override no width": func(t *Tool) { t.Override = &Override{ApSource: ApFromInsertWidth} },
		"override source":   func(t *Tool) { t.Override = &Override{ApSource: "magic"} },
		"override y0":       func(t *Tool) { t.Override = &Override{Y0: ptr(-1)} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tool := validTool()
			mutate(&tool)
			assert.ErrorIs(t, tool.Validate(), ErrInvalidCatalog)
		})
	}

	tool := validTool()
	tool.Ap = &Range{Min: 0, Max: 4, Rec: 0}
	assert.NoError(t, tool.Validate(), "ap may start at zero")
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	_, err = New(map[string]Tool{"": validTool()})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, YAML, FormatOf("a.yaml"))
	assert.Equal(t, YAML, FormatOf("a.YML"))
	assert.Equal(t, JSON, FormatOf("a.json"))
	assert.Equal(t, JSON, FormatOf("a"))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 0.12, Max: 0.4, Rec: 0.25}
	assert.True(t, r.Contains(0.12))
	assert.True(t, r.Contains(0.4))
	assert.False(t, r.Contains(0.41))
	assert.False(t, r.Contains(0.11))
}
