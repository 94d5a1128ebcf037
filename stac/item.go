// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stac

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cast"
	"github.com/venicegeo/geojson-go/geojson"
)

// Item is a generic catalog record describing one spatiotemporal scene. It is
// a GeoJSON Feature with catalog-specific members (links, assets, extensions).
type Item struct {
	ID         string
	Geometry   interface{}
	Bbox       geojson.BoundingBox
	Datetime   time.Time
	Properties map[string]interface{}
	Extensions []string
	Href       string
	Collection string
	Links      []Link
	Assets     map[string]AssetEntry
}

// NewItem creates an Item with no links and an empty asset mapping
func NewItem(id string, geometry interface{}, bbox geojson.BoundingBox, datetime time.Time,
	properties map[string]interface{}, extensions []string, href string, collection string) *Item {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return &Item{
		ID:         id,
		Geometry:   geometry,
		Bbox:       bbox,
		Datetime:   datetime,
		Properties: properties,
		Extensions: extensions,
		Href:       href,
		Collection: collection,
		Links:      []Link{},
		Assets:     map[string]AssetEntry{},
	}
}

// ItemFromDocument parses an item document
func ItemFromDocument(doc map[string]interface{}) (*Item, error) {
	if docType := stringAt(doc, "type"); docType != "" && docType != "Feature" {
		return nil, fmt.Errorf("Expected an item of type 'Feature' and got '%s'", docType)
	}

	id := stringAt(doc, "id")
	if id == "" {
		return nil, fmt.Errorf("Item is missing required field 'id'")
	}

	geometry, err := parseGeometry(doc["geometry"])
	if err != nil {
		return nil, fmt.Errorf("Item %s has an invalid geometry: %v", id, err)
	}

	bbox, err := parseBbox(doc["bbox"], geometry, id)
	if err != nil {
		return nil, fmt.Errorf("Item %s has an invalid bbox: %v", id, err)
	}

	properties, err := mapAt(doc, "properties")
	if err != nil {
		return nil, fmt.Errorf("Item %s has invalid properties: %v", id, err)
	}
	properties = CopyProperties(properties)

	var datetime time.Time
	if raw, ok := properties["datetime"]; ok {
		if raw != nil {
			if datetime, err = ParseDatetime(cast.ToString(raw)); err != nil {
				return nil, err
			}
		}
		delete(properties, "datetime")
	}

	var extensions []string
	if raw, ok := doc["stac_extensions"]; ok && raw != nil {
		if extensions, err = cast.ToStringSliceE(raw); err != nil {
			return nil, fmt.Errorf("Item %s has invalid stac_extensions: %v", id, err)
		}
	}

	item := NewItem(id, geometry, bbox, datetime, properties, extensions, "", stringAt(doc, "collection"))

	rawLinks, err := sliceAt(doc, "links")
	if err != nil {
		return nil, fmt.Errorf("Item %s has invalid links: %v", id, err)
	}
	for _, rawLink := range rawLinks {
		linkDoc, err := cast.ToStringMapE(rawLink)
		if err != nil {
			return nil, fmt.Errorf("Item %s has an invalid link: %v", id, err)
		}
		item.Links = append(item.Links, LinkFromDocument(linkDoc))
	}

	rawAssets, err := mapAt(doc, "assets")
	if err != nil {
		return nil, fmt.Errorf("Item %s has invalid assets: %v", id, err)
	}
	for key, rawAsset := range rawAssets {
		assetDoc, err := cast.ToStringMapE(rawAsset)
		if err != nil {
			return nil, fmt.Errorf("Item %s has an invalid asset '%s': %v", id, key, err)
		}
		asset, err := AssetFromDocument(assetDoc)
		if err != nil {
			return nil, fmt.Errorf("Item %s has an invalid asset '%s': %v", id, key, err)
		}
		item.Assets[key] = asset
	}

	return item, nil
}

// parseGeometry turns a decoded geometry object into a geojson-go geometry
func parseGeometry(raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return geojson.Parse(data)
}

// parseBbox reads the bbox member, deriving it from the geometry when absent
func parseBbox(raw interface{}, geometry interface{}, id string) (geojson.BoundingBox, error) {
	if raw == nil {
		if geometry == nil {
			return nil, nil
		}
		return geojson.NewFeature(geometry, id, nil).ForceBbox(), nil
	}
	elems, err := ToSlice(raw)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(elems))
	for n, elem := range elems {
		if values[n], err = cast.ToFloat64E(elem); err != nil {
			return nil, err
		}
	}
	if len(values) != 4 && len(values) != 6 {
		return nil, fmt.Errorf("expected 4 or 6 coordinates, got %d", len(values))
	}
	return geojson.BoundingBox(values), nil
}

// cloneGeometry returns an independent copy of a geometry
func cloneGeometry(geometry interface{}) interface{} {
	if geometry == nil {
		return nil
	}
	cloned, err := parseGeometry(geometry)
	if err != nil {
		return geometry
	}
	return cloned
}

// SortedAssetKeys returns the keys of the asset mapping in lexical order
func (i *Item) SortedAssetKeys() []string {
	keys := make([]string, 0, len(i.Assets))
	for key := range i.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the item. Each asset is copied with its own
// CloneEntry, so extension assets stay extension assets.
func (i *Item) Clone() *Item {
	var bbox geojson.BoundingBox
	if i.Bbox != nil {
		bbox = geojson.BoundingBox(append([]float64{}, i.Bbox...))
	}
	var extensions []string
	if i.Extensions != nil {
		extensions = append([]string{}, i.Extensions...)
	}

	c := NewItem(i.ID, cloneGeometry(i.Geometry), bbox, i.Datetime,
		CopyProperties(i.Properties), extensions, i.Href, i.Collection)
	c.Links = append(c.Links, i.Links...)
	for key, asset := range i.Assets {
		c.Assets[key] = asset.CloneEntry()
	}
	return c
}

// ToDocument serializes the item into its document form
func (i *Item) ToDocument() map[string]interface{} {
	properties := CopyProperties(i.Properties)
	properties["datetime"] = FormatDatetime(i.Datetime)

	links := make([]interface{}, len(i.Links))
	for n, link := range i.Links {
		links[n] = link.ToDocument()
	}

	assets := make(map[string]interface{}, len(i.Assets))
	for key, asset := range i.Assets {
		assets[key] = asset.ToDocument()
	}

	doc := map[string]interface{}{
		"type":       "Feature",
		"id":         i.ID,
		"geometry":   i.Geometry,
		"properties": properties,
		"links":      links,
		"assets":     assets,
	}
	if i.Bbox != nil {
		doc["bbox"] = append([]float64{}, i.Bbox...)
	}
	if len(i.Extensions) > 0 {
		doc["stac_extensions"] = append([]string{}, i.Extensions...)
	}
	if i.Collection != "" {
		doc["collection"] = i.Collection
	}
	return doc
}
