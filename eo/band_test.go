package eo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFromDocument_DescriptionFromKnownCommonName(t *testing.T) {
	// Tested code
	band := BandFromDocument(map[string]interface{}{"common_name": "nir08"})

	// Asserts
	assert.Equal(t, "Common name: nir08, Range: 0.75 to 0.9", band.Description)
	assert.Equal(t, "Common name: nir08, Range: 0.75 to 0.9", band.ToDocument()["description"])
}

func TestBandFromDocument_DescriptionFromUnknownCommonName(t *testing.T) {
	// Tested code
	band := BandFromDocument(map[string]interface{}{"common_name": "xyz"})

	// Asserts
	assert.Equal(t, "Common name: xyz", band.ToDocument()["description"])
}

func TestBandFromDocument_NoCommonNameNoDescription(t *testing.T) {
	// Tested code
	band := BandFromDocument(map[string]interface{}{"name": "B1"})

	// Asserts
	assert.Empty(t, band.Description)
	assert.Equal(t, map[string]interface{}{"name": "B1"}, band.ToDocument())
}

func TestBandFromDocument_ExplicitDescriptionKept(t *testing.T) {
	// Tested code
	band := BandFromDocument(map[string]interface{}{"common_name": "red", "description": "Band 4 - Red"})

	// Asserts
	assert.Equal(t, "Band 4 - Red", band.Description)
}

func TestBandFromDocument_AllFields(t *testing.T) {
	// Mock
	fragment := map[string]interface{}{
		"name":              "B5",
		"common_name":       "nir",
		"gsd":               30.0,
		"center_wavelength": 0.86,
		"full_width_max":    0.03,
		"description":       "Near infrared",
		"accuracy":          0.5,
	}

	// Tested code
	band := BandFromDocument(fragment)

	// Asserts
	assert.Equal(t, Band{
		Name:             "B5",
		CommonName:       "nir",
		GSD:              30,
		CenterWavelength: 0.86,
		FullWidthMax:     0.03,
		Description:      "Near infrared",
		Accuracy:         0.5,
	}, band)
	assert.Equal(t, fragment, band.ToDocument())
}

func TestBandFromDocument_PartialAndMistypedFragments(t *testing.T) {
	// Tested code
	empty := BandFromDocument(map[string]interface{}{})
	mistyped := BandFromDocument(map[string]interface{}{"gsd": []string{"not", "a", "number"}})

	// Asserts
	assert.Equal(t, Band{}, empty)
	assert.Empty(t, empty.ToDocument())
	assert.Zero(t, mistyped.GSD)
}

func TestBand_ToDocumentOmitsAbsentFields(t *testing.T) {
	// Mock
	band := Band{Name: "B10", GSD: 100}

	// Tested code
	doc := band.ToDocument()

	// Asserts
	assert.Equal(t, map[string]interface{}{"name": "B10", "gsd": 100.0}, doc)
	_, hasDescription := doc["description"]
	assert.False(t, hasDescription)
}

func TestBandDescription_Table(t *testing.T) {
	assert.Equal(t, "Common name: coastal, Range: 0.4 to 0.45", BandDescription("coastal"))
	assert.Equal(t, "Common name: nir, Range: 0.75 to 1.0", BandDescription("nir"))
	assert.Equal(t, "Common name: lwir11, Range: 10.5 to 11.5", BandDescription("lwir11"))
	assert.Equal(t, "Common name: swir22, Range: 2.1 to 2.3", BandDescription("swir22"))
	assert.Equal(t, "", BandDescription(""))
}

func TestBandRange(t *testing.T) {
	r, ok := BandRange("yellow")
	assert.True(t, ok)
	assert.Equal(t, WavelengthRange{0.58, 0.62}, r)

	_, ok = BandRange("ultraviolet")
	assert.False(t, ok)
}

func TestCommonNames(t *testing.T) {
	names := CommonNames()

	assert.Len(t, names, 16)
	assert.Equal(t, "coastal", names[0])
	assert.Equal(t, "lwir12", names[15])
	for _, name := range names {
		_, ok := BandRange(name)
		assert.True(t, ok, "missing range for "+name)
	}
}

func TestNewBand(t *testing.T) {
	assert.Equal(t, "Common name: blue, Range: 0.45 to 0.5", NewBand("B2", "blue", "").Description)
	assert.Equal(t, "custom", NewBand("B2", "blue", "custom").Description)
}
