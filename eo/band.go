package eo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Band describes one spectral band of a sensor. Zero values mean absent.
type Band struct {
	Name             string
	CommonName       string
	GSD              float64
	CenterWavelength float64
	FullWidthMax     float64
	Description      string
	Accuracy         float64
}

// WavelengthRange is a band's spectral range in micrometers
type WavelengthRange struct {
	Min float64
	Max float64
}

func (r WavelengthRange) String() string {
	return fmt.Sprintf("%s to %s", formatWavelength(r.Min), formatWavelength(r.Max))
}

// formatWavelength prints a wavelength the way the reference table is
// written: shortest form, but always with a fractional part (1.0, not 1)
func formatWavelength(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type commonBand struct {
	name        string
	wavelengths WavelengthRange
}

var commonBands = []commonBand{
	{"coastal", WavelengthRange{0.40, 0.45}},
	{"blue", WavelengthRange{0.45, 0.50}},
	{"green", WavelengthRange{0.50, 0.60}},
	{"red", WavelengthRange{0.60, 0.70}},
	{"yellow", WavelengthRange{0.58, 0.62}},
	{"pan", WavelengthRange{0.50, 0.70}},
	{"rededge", WavelengthRange{0.70, 0.75}},
	{"nir", WavelengthRange{0.75, 1.00}},
	{"nir08", WavelengthRange{0.75, 0.90}},
	{"nir09", WavelengthRange{0.85, 1.05}},
	{"cirrus", WavelengthRange{1.35, 1.40}},
	{"swir16", WavelengthRange{1.55, 1.75}},
	{"swir22", WavelengthRange{2.10, 2.30}},
	{"lwir", WavelengthRange{10.5, 12.5}},
	{"lwir11", WavelengthRange{10.5, 11.5}},
	{"lwir12", WavelengthRange{11.5, 12.5}},
}

// CommonNames lists the recognized band common names in table order
func CommonNames() []string {
	names := make([]string, len(commonBands))
	for i, band := range commonBands {
		names[i] = band.name
	}
	return names
}

// BandRange looks up the wavelength range of a band common name
func BandRange(commonName string) (WavelengthRange, bool) {
	for _, band := range commonBands {
		if band.name == commonName {
			return band.wavelengths, true
		}
	}
	return WavelengthRange{}, false
}

// BandDescription generates a description from a common name. An empty common
// name has no description; an unrecognized one is described without a range.
func BandDescription(commonName string) string {
	if commonName == "" {
		return ""
	}
	r, ok := BandRange(commonName)
	if !ok {
		return fmt.Sprintf("Common name: %s", commonName)
	}
	return fmt.Sprintf("Common name: %s, Range: %s", commonName, r)
}

// NewBand creates a band, generating the description from the common name
// when none is given
func NewBand(name, commonName, description string) Band {
	b := Band{
		Name:        name,
		CommonName:  commonName,
		Description: description,
	}
	b.applyDefaults()
	return b
}

func (b *Band) applyDefaults() {
	if b.Description == "" {
		b.Description = BandDescription(b.CommonName)
	}
}

// BandFromDocument reads a band fragment. Every field is optional and values
// of the wrong type are read as absent.
func BandFromDocument(fragment map[string]interface{}) Band {
	b := Band{
		Name:             cast.ToString(fragment["name"]),
		CommonName:       cast.ToString(fragment["common_name"]),
		GSD:              cast.ToFloat64(fragment["gsd"]),
		CenterWavelength: cast.ToFloat64(fragment["center_wavelength"]),
		FullWidthMax:     cast.ToFloat64(fragment["full_width_max"]),
		Description:      cast.ToString(fragment["description"]),
		Accuracy:         cast.ToFloat64(fragment["accuracy"]),
	}
	b.applyDefaults()
	return b
}

// ToDocument writes only the fields that are present
func (b Band) ToDocument() map[string]interface{} {
	d := map[string]interface{}{}
	if b.Name != "" {
		d["name"] = b.Name
	}
	if b.CommonName != "" {
		d["common_name"] = b.CommonName
	}
	if b.GSD != 0 {
		d["gsd"] = b.GSD
	}
	if b.CenterWavelength != 0 {
		d["center_wavelength"] = b.CenterWavelength
	}
	if b.FullWidthMax != 0 {
		d["full_width_max"] = b.FullWidthMax
	}
	if b.Description != "" {
		d["description"] = b.Description
	}
	if b.Accuracy != 0 {
		d["accuracy"] = b.Accuracy
	}
	return d
}
