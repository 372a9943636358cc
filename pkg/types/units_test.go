package types

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegrees_Sin_Boundaries(t *testing.T) {
	cases := []struct {
		in   Degrees
		want float64
	}{
		{0, 0},
		{30, 0.5},
		{45, math.Sqrt2 / 2},
		{90, 1},
		{95, math.Sin(95 * math.Pi / 180)},
		{180, 0}, // exact zero, not 1.2e-16
		{360, 0},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%v", i, float64(tc.in)), func(t *testing.T) {
			require.InDelta(t, tc.want, tc.in.Sin(), 1e-12)
		})
	}
	assert.Equal(t, 0.0, Degrees(180).Sin())
}

func TestDegrees_Radians(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Degrees(90).Radians(), 1e-15)
	assert.InDelta(t, math.Pi, Degrees(180).Radians(), 1e-15)
	assert.Equal(t, "95°", Degrees(95).String())
}

func TestLength_States(t *testing.T) {
	v, ok := NoLength.Value()
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)
	assert.False(t, NoLength.Finite())

	inf := InfiniteLength()
	assert.True(t, inf.Defined())
	assert.True(t, inf.IsInf())
	assert.False(t, inf.Finite())

	l := MM(40.15)
	assert.True(t, l.Finite())
	assert.False(t, l.IsInf())
	assert.Equal(t, "40.15 mm", l.Humanized())
	assert.Equal(t, "—", NoLength.Humanized())
	assert.Equal(t, "∞", inf.Humanized())
}

func TestLength_JSON(t *testing.T) {
	type wrap struct {
		La Length `json:"la"`
	}
	for _, in := range []Length{NoLength, InfiniteLength(), MM(2.5)} {
		b, err := json.Marshal(wrap{La: in})
		require.NoError(t, err)

		var out wrap
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in, out.La, "round trip of %s", b)
	}

	b, err := json.Marshal(wrap{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"la":null}`, string(b))
}
