package eo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-eo-catalog/stac"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestItemFromGeneric_Fields(t *testing.T) {
	// Tested code
	item, err := ItemFromGeneric(mockGenericItem(t))

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, "LC80060522017107LGN00", item.ID)
	assert.Equal(t, "landsat-8-l1", item.Collection)
	assert.Equal(t, 15.0, item.GSD)
	assert.Equal(t, "landsat-8", item.Platform)
	assert.Equal(t, "OLI_TIRS", item.Instrument)
	require.Len(t, item.Bands, 6)
	assert.Equal(t, "B1", item.Bands[0].Name)
	assert.Equal(t, "Common name: coastal, Range: 0.4 to 0.45", item.Bands[0].Description)
	assert.Equal(t, map[string]interface{}{
		FieldConstellation: "landsat",
		FieldEPSG:          32618.0,
		FieldCloudCover:    12.5,
		FieldSunAzimuth:    101.4,
		FieldSunElevation:  58.2,
	}, item.Optional)
	epsg, ok := item.Number(FieldEPSG)
	assert.True(t, ok)
	assert.Equal(t, 32618.0, epsg)
	_, ok = item.Number(FieldOffNadir)
	assert.False(t, ok)
	platform, ok := item.Text(FieldPlatform)
	assert.True(t, ok)
	assert.Equal(t, "landsat-8", platform)
	assert.Len(t, item.Links, 2)
	assert.Equal(t, []string{"eo"}, item.Extensions)
	assert.Equal(t, time.Date(2017, 4, 17, 15, 12, 30, 123000000, time.UTC), item.Datetime.UTC())
}

func TestItemFromGeneric_AssetUpgrade(t *testing.T) {
	// Tested code
	item, err := ItemFromGeneric(mockGenericItem(t))

	// Asserts
	require.NoError(t, err)
	require.Len(t, item.Assets, 4)
	assert.IsType(t, &stac.Asset{}, item.Assets["thumbnail"])

	eoAssets := item.EOAssets()
	assert.Len(t, eoAssets, 3)
	for _, key := range []string{"B1", "B4", "visual"} {
		require.Contains(t, eoAssets, key)
		assert.Same(t, item, eoAssets[key].Owner(), "owner of "+key)
	}
	assert.Equal(t, []int{0}, eoAssets["B1"].Bands)
	assert.Equal(t, []int{3, 2, 1}, eoAssets["visual"].Bands)
	_, hasThumbnail := eoAssets["thumbnail"]
	assert.False(t, hasThumbnail)
}

func TestItemFromGeneric_DoesNotModifySource(t *testing.T) {
	// Mock
	generic := mockGenericItem(t)

	// Tested code
	_, err := ItemFromGeneric(generic)

	// Asserts
	require.NoError(t, err)
	assert.IsType(t, &stac.Asset{}, generic.Assets["B1"])
	assert.IsType(t, &stac.Asset{}, generic.Assets["visual"])
}

func TestItemFromGeneric_MissingRequiredFields(t *testing.T) {
	for _, field := range RequiredFields {
		key := Key(field)
		t.Run(key, func(t *testing.T) {
			// Mock
			generic := mockGenericItem(t)
			delete(generic.Properties, key)

			// Tested code
			item, err := ItemFromGeneric(generic)

			// Asserts
			assert.Nil(t, item)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingField))
			assert.Equal(t, fmt.Sprintf("Missing required field '%s' in properties", key), err.Error())
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, key, schemaErr.Key)
		})
	}
}

func TestItemFromGeneric_RequiredValuesKeptAsRead(t *testing.T) {
	// Mock
	generic := mockGenericItem(t)
	generic.Properties["eo:gsd"] = nil
	generic.Properties["eo:instrument"] = 8.0

	// Tested code
	item, err := ItemFromGeneric(generic)

	// Asserts
	require.NoError(t, err)
	assert.Nil(t, item.GSD)
	_, ok := item.Number(FieldGSD)
	assert.False(t, ok)
	doc := item.ToDocument()
	assert.Contains(t, properties(doc), "eo:gsd")
	assert.Nil(t, doc["eo:gsd"])
	assert.Equal(t, 8.0, doc["eo:instrument"])
}

func TestItemFromGeneric_MissingOptionalFields(t *testing.T) {
	// Mock
	generic := mockGenericItem(t)
	for _, field := range Fields {
		if !isRequired(field) {
			delete(generic.Properties, Key(field))
		}
	}

	// Tested code
	item, err := ItemFromGeneric(generic)

	// Asserts
	require.NoError(t, err)
	assert.Empty(t, item.Optional)
	doc := item.ToDocument()
	assert.NotContains(t, doc, "eo:cloud_cover")
	assert.NotContains(t, properties(doc), "eo:cloud_cover")
}

func TestItemFromGeneric_MalformedBands(t *testing.T) {
	// Mock
	notList := mockGenericItem(t)
	notList.Properties["eo:bands"] = "B1"
	notObjects := mockGenericItem(t)
	notObjects.Properties["eo:bands"] = []interface{}{"B1", "B2"}

	// Tested code
	item, err := ItemFromGeneric(notList)
	_, objectsErr := ItemFromGeneric(notObjects)

	// Asserts
	assert.Nil(t, item)
	assert.True(t, errors.Is(err, ErrInvalidField))
	assert.Contains(t, err.Error(), "eo:bands")
	assert.True(t, errors.Is(objectsErr, ErrInvalidField))
}

func TestItemFromGeneric_NullBands(t *testing.T) {
	// Mock
	generic := mockGenericItem(t)
	generic.Properties["eo:bands"] = nil
	generic.Assets = nil

	// Tested code
	item, err := ItemFromGeneric(generic)

	// Asserts
	require.NoError(t, err)
	assert.Nil(t, item.Bands)
	doc := item.ToDocument()
	assert.Contains(t, doc, "eo:bands")
	assert.Nil(t, doc["eo:bands"])
}

func TestItem_OptionalValuesRoundTrip(t *testing.T) {
	values := map[string]interface{}{
		"eo:epsg":          "EPSG:32618",
		"eo:off_nadir":     "n/a",
		"eo:cloud_cover":   "12",
		"eo:azimuth":       32618.7,
		"eo:sun_elevation": nil,
	}
	for key, value := range values {
		t.Run(key, func(t *testing.T) {
			// Mock
			source := decodeDocument(t, mockLandsatItemJSON)
			properties(source)[key] = value

			// Tested code
			item, err := ItemFromDocument(source)
			require.NoError(t, err)
			doc := normalize(t, item.ToDocument())

			// Asserts
			require.Contains(t, properties(doc), key)
			assert.Equal(t, value, properties(doc)[key])
			require.Contains(t, doc, key)
			assert.Equal(t, value, doc[key])
		})
	}
}

func TestItemFromGeneric_ClonesEOAssetsOfSource(t *testing.T) {
	// Mock
	other := mockEOItem(t)

	// Tested code
	derived, err := ItemFromGeneric(&other.Item)

	// Asserts
	require.NoError(t, err)
	for key, asset := range other.EOAssets() {
		assert.Same(t, other, asset.Owner(), "owner of source "+key)
		assert.Same(t, derived, derived.EOAssets()[key].Owner(), "owner of derived "+key)
		assert.NotSame(t, asset, derived.EOAssets()[key])
	}
}

func TestItemFromDocument(t *testing.T) {
	// Tested code
	item, err := ItemFromDocument(decodeDocument(t, mockLandsatItemJSON))

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, "landsat-8", item.Platform)
	assert.Len(t, item.EOAssets(), 3)
}

func TestItemFromDocument_InvalidDocument(t *testing.T) {
	_, err := ItemFromDocument(map[string]interface{}{"type": "FeatureCollection"})
	assert.Error(t, err)
}

type mockSource struct {
	item *stac.Item
	err  error
}

func (s mockSource) Load(ctx context.Context, locator string) (*stac.Item, error) {
	return s.item, s.err
}

func TestLoadItem(t *testing.T) {
	// Tested code
	item, err := LoadItem(context.Background(), mockSource{item: mockGenericItem(t)}, "item.json")
	_, loadErr := LoadItem(context.Background(), mockSource{err: errors.New("boom")}, "item.json")

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, "OLI_TIRS", item.Instrument)
	assert.EqualError(t, loadErr, "boom")
}

func TestItem_AddAsset(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	generic := stac.NewAsset("https://example.localdomain/B1.TIF", "", "",
		map[string]interface{}{"eo:bands": []int{0, 1}})

	// Tested code
	returned := item.AddAsset("B1", generic)

	// Asserts
	assert.Same(t, item, returned)
	asset, ok := item.EOAssets()["B1"]
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, asset.Bands)
	assert.Same(t, item, asset.Owner())
	assert.Equal(t, "https://example.localdomain/B1.TIF", asset.Href)
}

func TestItem_AddAssetGenericPassesThrough(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	generic := stac.NewAsset("https://example.localdomain/MTL.txt", "Metadata", "text/plain", nil)

	// Tested code
	item.AddAsset("metadata", generic)

	// Asserts
	assert.Same(t, generic, item.Assets["metadata"])
	_, ok := item.EOAssets()["metadata"]
	assert.False(t, ok)
}

func TestItem_AddAssetChainsAndOverwrites(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	first := NewAsset("https://example.localdomain/first.TIF", []int{0}, "", "", nil)
	second := NewAsset("https://example.localdomain/second.TIF", []int{1}, "", "", nil)

	// Tested code
	item.AddAsset("X", first).AddAsset("X", second)

	// Asserts
	assert.Same(t, second, item.Assets["X"])
	assert.Same(t, item, second.Owner())
}

func TestItem_AddAssetReattachesForeignEOAsset(t *testing.T) {
	// Mock
	source := mockEOItem(t)
	target := mockEOItem(t)
	asset := source.EOAssets()["B4"]

	// Tested code
	target.AddAsset("B4", asset)

	// Asserts
	assert.Same(t, target, asset.Owner())
}

func TestItem_CloneOwnership(t *testing.T) {
	// Mock
	item := mockEOItem(t)

	// Tested code
	clone := item.Clone()

	// Asserts
	assert.NotSame(t, item, clone)
	require.Len(t, clone.EOAssets(), 3)
	for key, asset := range clone.EOAssets() {
		assert.Same(t, clone, asset.Owner(), "owner of cloned "+key)
		assert.NotSame(t, item.EOAssets()[key], asset)
	}
	for _, asset := range item.EOAssets() {
		assert.Same(t, item, asset.Owner())
	}
	assert.Equal(t, normalize(t, item.ToDocument()), normalize(t, clone.ToDocument()))
	assert.Equal(t, item.Bands, clone.Bands)
	assert.Equal(t, item.Optional, clone.Optional)
}

func TestItem_CloneIsIndependent(t *testing.T) {
	// Mock
	item := mockEOItem(t)

	// Tested code
	clone := item.Clone()
	clone.Bands[0].Name = "changed"
	clone.Properties["landsat:path"] = 99
	clone.Optional[FieldCloudCover] = 99.0
	clone.AddAsset("extra", NewAsset("https://example.localdomain/extra.TIF", []int{0}, "", "", nil))

	// Asserts
	assert.Equal(t, "B1", item.Bands[0].Name)
	assert.Equal(t, 6.0, item.Properties["landsat:path"])
	assert.Equal(t, 12.5, item.Optional[FieldCloudCover])
	assert.Len(t, item.Assets, 4)
}

func TestItem_CloneReflectsInMemoryFields(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	item.Platform = "landsat-9"
	delete(item.Optional, FieldCloudCover)

	// Tested code
	clone := item.Clone()

	// Asserts
	assert.Equal(t, "landsat-9", clone.Platform)
	assert.NotContains(t, clone.Optional, FieldCloudCover)
}

func TestItem_ToDocumentRoundTrip(t *testing.T) {
	// Mock
	source := decodeDocument(t, mockLandsatItemJSON)
	item, err := ItemFromDocument(source)
	require.NoError(t, err)

	// Tested code
	doc := normalize(t, item.ToDocument())

	// Asserts
	sourceProperties := properties(source)
	docProperties := properties(doc)
	for _, field := range Fields {
		key := Key(field)
		if field == FieldBands {
			continue
		}
		value, present := sourceProperties[key]
		if !present {
			assert.NotContains(t, docProperties, key)
			assert.NotContains(t, doc, key)
			continue
		}
		assert.Equal(t, value, docProperties[key], key)
		assert.Equal(t, value, doc[key], "top-level "+key)
	}

	sourceBands := sourceProperties["eo:bands"].([]interface{})
	docBands := docProperties["eo:bands"].([]interface{})
	require.Len(t, docBands, len(sourceBands))
	for i := range sourceBands {
		expected := sourceBands[i].(map[string]interface{})
		actual := docBands[i].(map[string]interface{})
		for k, v := range expected {
			assert.Equal(t, v, actual[k])
		}
		assert.Equal(t, BandDescription(expected["common_name"].(string)), actual["description"])
	}
	assert.Equal(t, docProperties["eo:bands"], doc["eo:bands"])

	assert.Equal(t, "LC80060522017107LGN00", doc["id"])
	assert.Equal(t, "landsat-8-l1", doc["collection"])
	assert.Equal(t, 6.0, docProperties["landsat:path"])

	assets := doc["assets"].(map[string]interface{})
	visual := assets["visual"].(map[string]interface{})
	assert.Equal(t, []interface{}{3.0, 2.0, 1.0}, visual["eo:bands"])
	assert.Equal(t, "True color", visual["title"])
}

func TestItem_ToDocumentFullyStable(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	first := normalize(t, item.ToDocument())

	// Tested code
	again, err := ItemFromDocument(first)
	require.NoError(t, err)
	second := normalize(t, again.ToDocument())

	// Asserts
	assert.Equal(t, first, second)
}

func TestItem_ToDocumentReprojectsMutations(t *testing.T) {
	// Mock
	item := mockEOItem(t)
	item.GSD = 30.0
	delete(item.Optional, FieldSunElevation)
	item.Optional[FieldOffNadir] = 2.5

	// Tested code
	doc := item.ToDocument()

	// Asserts
	assert.Equal(t, 30.0, properties(doc)["eo:gsd"])
	assert.Equal(t, 30.0, doc["eo:gsd"])
	assert.NotContains(t, properties(doc), "eo:sun_elevation")
	assert.NotContains(t, doc, "eo:sun_elevation")
	assert.Equal(t, 2.5, doc["eo:off_nadir"])
	assert.Equal(t, 58.2, item.Properties["eo:sun_elevation"], "serialization must not write to the item")
}

func TestNewItem(t *testing.T) {
	// Mock
	polygon := geojson.NewPolygon([][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}})
	bands := []Band{NewBand("B1", "red", ""), NewBand("B2", "nir", "")}

	// Tested code
	first := NewItem("scene-1", polygon, geojson.BoundingBox{0, 0, 1, 1}, time.Unix(0, 0),
		nil, 3.0, "sentinel-2a", "msi", bands)
	second := NewItem("scene-2", polygon, nil, time.Unix(0, 0), nil, 3.0, "sentinel-2a", "msi", bands)
	first.AddAsset("B1", stac.NewAsset("https://example.localdomain/B1.jp2", "", "",
		map[string]interface{}{"eo:bands": []int{0}}))

	// Asserts
	assert.Equal(t, []string{"eo"}, first.Extensions)
	assert.Len(t, first.Assets, 1)
	assert.Empty(t, second.Assets, "asset mappings must not be shared between items")
	assert.Equal(t, 3.0, first.Properties["eo:gsd"])
	assert.Equal(t, "msi", first.Properties["eo:instrument"])

	clone := first.Clone()
	assert.Equal(t, first.Bands, clone.Bands)
	assert.Empty(t, first.Optional)
	resolved, err := clone.EOAssets()["B1"].ResolveBands()
	require.NoError(t, err)
	assert.Equal(t, "red", resolved[0].CommonName)
}

func TestNewItem_DoesNotModifyProperties(t *testing.T) {
	// Mock
	props := map[string]interface{}{"landsat:row": 52}

	// Tested code
	item := NewItem("scene-1", nil, nil, time.Unix(0, 0), props, 30.0, "landsat-8", "OLI_TIRS",
		[]Band{NewBand("B1", "coastal", "")})

	// Asserts
	assert.Equal(t, map[string]interface{}{"landsat:row": 52}, props)
	assert.Equal(t, 52, item.Properties["landsat:row"])
	assert.Equal(t, "landsat-8", item.Properties["eo:platform"])
}
