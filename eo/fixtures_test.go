package eo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-eo-catalog/stac"
)

const mockLandsatItemJSON = `{
	"type": "Feature",
	"id": "LC80060522017107LGN00",
	"collection": "landsat-8-l1",
	"stac_extensions": ["eo"],
	"geometry": {
		"type": "Polygon",
		"coordinates": [[[30, 10], [40, 40], [20, 40], [10, 20], [30, 10]]]
	},
	"bbox": [10, 10, 40, 40],
	"properties": {
		"datetime": "2017-04-17T15:12:30.123Z",
		"landsat:path": 6,
		"eo:gsd": 15,
		"eo:platform": "landsat-8",
		"eo:instrument": "OLI_TIRS",
		"eo:constellation": "landsat",
		"eo:epsg": 32618,
		"eo:cloud_cover": 12.5,
		"eo:sun_azimuth": 101.4,
		"eo:sun_elevation": 58.2,
		"eo:bands": [
			{"name": "B1", "common_name": "coastal", "gsd": 30, "center_wavelength": 0.44},
			{"name": "B2", "common_name": "blue", "gsd": 30, "center_wavelength": 0.48},
			{"name": "B3", "common_name": "green", "gsd": 30, "center_wavelength": 0.56},
			{"name": "B4", "common_name": "red", "gsd": 30, "center_wavelength": 0.65},
			{"name": "B5", "common_name": "nir", "gsd": 30, "center_wavelength": 0.86},
			{"name": "B8", "common_name": "pan", "gsd": 15, "center_wavelength": 0.59}
		]
	},
	"links": [
		{"rel": "self", "href": "https://example.localdomain/items/LC80060522017107LGN00.json"},
		{"rel": "collection", "href": "https://example.localdomain/collection.json", "type": "application/json"}
	],
	"assets": {
		"B1": {"href": "https://example.localdomain/LC80060522017107LGN00_B1.TIF", "type": "image/tiff", "eo:bands": [0]},
		"B4": {"href": "https://example.localdomain/LC80060522017107LGN00_B4.TIF", "type": "image/tiff", "eo:bands": [3]},
		"visual": {"href": "https://example.localdomain/LC80060522017107LGN00_visual.TIF", "title": "True color", "eo:bands": [3, 2, 1]},
		"thumbnail": {"href": "https://example.localdomain/LC80060522017107LGN00_thumb_large.jpg", "type": "image/jpeg"}
	}
}`

func decodeDocument(t *testing.T, raw string) map[string]interface{} {
	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

// normalize passes a document through JSON so values compare as decoded JSON
func normalize(t *testing.T, doc map[string]interface{}) map[string]interface{} {
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return decodeDocument(t, string(data))
}

func mockGenericItem(t *testing.T) *stac.Item {
	item, err := stac.ItemFromDocument(decodeDocument(t, mockLandsatItemJSON))
	require.NoError(t, err)
	return item
}

func mockEOItem(t *testing.T) *Item {
	item, err := ItemFromGeneric(mockGenericItem(t))
	require.NoError(t, err)
	return item
}

func properties(doc map[string]interface{}) map[string]interface{} {
	return doc["properties"].(map[string]interface{})
}
