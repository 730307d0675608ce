package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNearEarthObject(t *testing.T) {
	neo, err := NewNearEarthObject(Zip(
		[]string{"a0000433", "433", `  "Eros" `, "16.84", "N", "ignored"},
		[]string{"id", "pdes", "name", "diameter", "pha", "spkid"},
	))
	require.NoError(t, err)

	assert.Equal(t, "a0000433", neo.ID)
	assert.Equal(t, "433", neo.Designation)
	require.NotNil(t, neo.Name)
	assert.Equal(t, "Eros", *neo.Name)
	assert.InDelta(t, 16.84, neo.Diameter, 1e-9)
	assert.False(t, neo.Hazardous)
	assert.Empty(t, neo.ApproachIndexes())
}

func TestNearEarthObjectNameNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want *string
	}{
		{raw: `  "Eros" `, want: strPtr("Eros")},
		{raw: `"  Halley  "`, want: strPtr("Halley")},
		{raw: "\t\"Apophis\"\n", want: strPtr("Apophis")},
		{raw: ` " " `, want: nil},
		{raw: "", want: nil},
		{raw: `""`, want: nil},
		{raw: "   ", want: nil},
	}

	for _, tt := range tests {
		neo, err := NewNearEarthObject([]Field{{Value: tt.raw, Name: NEONameField}})
		require.NoError(t, err)
		assert.Equal(t, tt.want, neo.Name, "raw name %q", tt.raw)
	}
}

func TestNearEarthObjectHazardFlag(t *testing.T) {
	for raw, want := range map[string]bool{"Y": true, "y": true, "": false, "N": false, "yes": false} {
		neo, err := NewNearEarthObject([]Field{{Value: raw, Name: NEOHazardField}})
		require.NoError(t, err)
		assert.Equal(t, want, neo.Hazardous, "raw flag %q", raw)
	}

	neo, err := NewNearEarthObject([]Field{{Value: "1", Name: NEOPrimaryDesignationField}})
	require.NoError(t, err)
	assert.False(t, neo.Hazardous)
}

func TestNearEarthObjectDiameter(t *testing.T) {
	neo, err := NewNearEarthObject([]Field{{Value: "", Name: NEODiameterField}})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(neo.Diameter))

	neo, err = NewNearEarthObject([]Field{{Value: "433", Name: NEOPrimaryDesignationField}})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(neo.Diameter))

	_, err = NewNearEarthObject([]Field{{Value: "big", Name: NEODiameterField}})
	assert.ErrorIs(t, err, ErrParse)

	neo, err = NewNearEarthObject([]Field{{Value: "NaN", Name: NEODiameterField}})
	require.NoError(t, err)
	assert.False(t, neo.Serialize().DiameterKm.IsKnown())

	_, err = NewNearEarthObject([]Field{{Value: "inf", Name: NEODiameterField}})
	assert.ErrorIs(t, err, ErrParse)
}

func TestNearEarthObjectPaddedQuotedNameIsIndexable(t *testing.T) {
	neo, err := NewNearEarthObject([]Field{{Value: "  \"Eros\" ", Name: NEONameField}})
	require.NoError(t, err)
	require.NotNil(t, neo.Name)
	assert.Equal(t, "Eros", *neo.Name)
	assert.Equal(t, "Eros", neo.NameOrEmpty())
}

func TestNearEarthObjectSerialize(t *testing.T) {
	neo, err := NewNearEarthObject(Zip([]string{"2020 AB", "", ""}, []string{"pdes", "name", "diameter"}))
	require.NoError(t, err)

	view := neo.Serialize()
	assert.Equal(t, "2020 AB", view.Designation)
	assert.Nil(t, view.Name)
	assert.False(t, view.DiameterKm.IsKnown())
	assert.Equal(t, "2020 AB", neo.Fullname())
}

func TestZip(t *testing.T) {
	fields := Zip([]string{"a", "b", "c"}, []string{"x", "y"})
	assert.Equal(t, []Field{{Value: "a", Name: "x"}, {Value: "b", Name: "y"}}, fields)
}

func strPtr(s string) *string {
	return &s
}
