package model

import (
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// SceneFileFormat is an enum type for recognized asset file types
type SceneFileFormat string

// GeoTIFF corresponds to .TIF files with geospatial info
const GeoTIFF SceneFileFormat = "geotiff"

// JPEG2000 corresponds to .JP2 files
const JPEG2000 SceneFileFormat = "jpeg2000"

// UnknownFormat is used for media types that are neither of the above
const UnknownFormat SceneFileFormat = ""

// FileFormatFromMediaType maps an asset media type onto a SceneFileFormat
func FileFormatFromMediaType(mediaType string) SceneFileFormat {
	mediaType = strings.ToLower(mediaType)
	switch {
	case strings.HasPrefix(mediaType, "image/tiff"), strings.HasPrefix(mediaType, "image/vnd.stac.geotiff"):
		return GeoTIFF
	case strings.HasPrefix(mediaType, "image/jp2"):
		return JPEG2000
	}
	return UnknownFormat
}

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeatureMixin is an interface for data that can be used to augment an existing GeoJSON feature
type GeoJSONFeatureMixin interface {
	Apply(*geojson.Feature) error
}
