package model

import (
	"time"

	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/stac"
	"github.com/venicegeo/geojson-go/geojson"
)

// SceneSummary holds the fields common to all single scene summaries
type SceneSummary struct {
	ID           string
	Geometry     interface{}
	CloudCover   float64
	Resolution   float64
	AcquiredDate time.Time
	Platform     string
	Instrument   string
	FileFormat   SceneFileFormat
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (ss SceneSummary) GeoJSONFeature() (*geojson.Feature, error) {
	properties := map[string]interface{}{
		"cloudCover":   ss.CloudCover,
		"resolution":   ss.Resolution,
		"acquiredDate": stac.FormatDatetime(ss.AcquiredDate),
		"platform":     ss.Platform,
		"instrument":   ss.Instrument,
	}
	if ss.FileFormat != UnknownFormat {
		properties["fileFormat"] = string(ss.FileFormat)
	}
	f := geojson.NewFeature(ss.Geometry, ss.ID, properties)
	if ss.Geometry != nil {
		f.Bbox = f.ForceBbox()
	}
	return f, nil
}

// EOSceneResult is a scene summary plus the optional mixins an EO item can supply
type EOSceneResult struct {
	SceneSummary
	*SunGeometry
	BandAssets
}

// NewEOSceneResult summarizes an EO item. A missing or non-numeric cloud cover
// reads as 0.
// The file format is taken from the first single-band asset found.
func NewEOSceneResult(item *eo.Item) (*EOSceneResult, error) {
	bands, err := NewBandAssets(item)
	if err != nil {
		return nil, err
	}

	summary := SceneSummary{
		ID:           item.ID,
		Geometry:     item.Geometry,
		AcquiredDate: item.Datetime,
	}
	summary.Resolution, _ = item.Number(eo.FieldGSD)
	summary.CloudCover, _ = item.Number(eo.FieldCloudCover)
	summary.Platform, _ = item.Text(eo.FieldPlatform)
	summary.Instrument, _ = item.Text(eo.FieldInstrument)
	eoAssets := item.EOAssets()
	for _, key := range item.SortedAssetKeys() {
		if asset, ok := eoAssets[key]; ok && len(asset.Bands) == 1 {
			summary.FileFormat = FileFormatFromMediaType(asset.MediaType)
			break
		}
	}

	return &EOSceneResult{
		SceneSummary: summary,
		SunGeometry:  NewSunGeometry(item),
		BandAssets:   bands,
	}, nil
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result EOSceneResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.SceneSummary.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if result.SunGeometry != nil {
		if err = result.SunGeometry.Apply(feature); err != nil {
			return nil, err
		}
	}

	if len(result.BandAssets) > 0 {
		if err = result.BandAssets.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// MultiSceneSummary is a container for multiple scene summaries
type MultiSceneSummary struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiSceneSummary) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
