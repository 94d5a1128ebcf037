package model

import (
	"errors"

	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/geojson-go/geojson"
)

// SunGeometry is a mixin containing the illumination angles of a scene
type SunGeometry struct {
	Azimuth   float64
	Elevation float64
}

// NewSunGeometry reads the sun angles of an EO item; it returns nil unless
// both angles are set to numbers
func NewSunGeometry(item *eo.Item) *SunGeometry {
	azimuth, hasAzimuth := item.Number(eo.FieldSunAzimuth)
	elevation, hasElevation := item.Number(eo.FieldSunElevation)
	if !hasAzimuth || !hasElevation {
		return nil
	}
	return &SunGeometry{Azimuth: azimuth, Elevation: elevation}
}

// Apply implements the GeoJSONFeatureMixin interface
func (sg SunGeometry) Apply(feature *geojson.Feature) error {
	feature.Properties["sunAzimuth"] = sg.Azimuth
	feature.Properties["sunElevation"] = sg.Elevation
	return nil
}

// BandAssets is a mixin mapping band names to the href of the single-band
// asset that holds them
type BandAssets map[string]string

// NewBandAssets collects every single-band EO asset of the item, keyed by the
// band's common name, or its name when it has none
func NewBandAssets(item *eo.Item) (BandAssets, error) {
	if item == nil {
		return nil, errors.New("No item to collect band assets from")
	}
	bands := BandAssets{}
	for _, asset := range item.EOAssets() {
		if len(asset.Bands) != 1 {
			continue
		}
		resolved, err := asset.ResolveBands()
		if err != nil {
			return nil, err
		}
		name := resolved[0].CommonName
		if name == "" {
			name = resolved[0].Name
		}
		if name != "" {
			bands[name] = asset.Href
		}
	}
	return bands, nil
}

// Apply implements the GeoJSONFeatureMixin interface
func (ba BandAssets) Apply(feature *geojson.Feature) error {
	bands := make(map[string]string, len(ba))
	for name, href := range ba {
		bands[name] = href
	}
	feature.Properties["bands"] = bands
	return nil
}
