package eo

import (
	"context"
	"time"

	"github.com/spf13/cast"
	"github.com/venicegeo/bf-eo-catalog/stac"
	"github.com/venicegeo/geojson-go/geojson"
)

// Item is a catalog item carrying electro-optical sensor metadata. It owns its
// band list and its asset mapping; every *Asset in the mapping points back to it.
//
// EO values are kept exactly as read from the properties, so a document
// round-trips unchanged whatever the value types. Use Number and Text for
// typed reads.
type Item struct {
	stac.Item

	GSD        interface{}
	Platform   interface{}
	Instrument interface{}
	Bands      []Band

	// Optional holds the optional EO fields present on the item keyed by field
	// name (FieldCloudCover, FieldEPSG, ...). A field present with a null value
	// is kept; delete a key to unset the field.
	Optional map[string]interface{}
}

// Source loads generic items from a locator (a file path or URL)
type Source interface {
	Load(ctx context.Context, locator string) (*stac.Item, error)
}

// NewItem creates an EO item from explicit values. The item declares the eo
// extension, has an empty asset mapping and carries its EO fields in a copy of
// the given properties.
func NewItem(id string, geometry interface{}, bbox geojson.BoundingBox, datetime time.Time,
	properties map[string]interface{}, gsd float64, platform, instrument string, bands []Band) *Item {
	i := &Item{
		Item: *stac.NewItem(id, geometry, bbox, datetime, stac.CopyProperties(properties),
			[]string{Namespace}, "", ""),
		GSD:        gsd,
		Platform:   platform,
		Instrument: instrument,
		Bands:      bands,
		Optional:   map[string]interface{}{},
	}
	i.projectFields(i.Properties)
	return i
}

// Value returns the value of an EO field and whether the item has it
func (i *Item) Value(field string) (interface{}, bool) {
	switch field {
	case FieldGSD:
		return i.GSD, true
	case FieldPlatform:
		return i.Platform, true
	case FieldInstrument:
		return i.Instrument, true
	case FieldBands:
		return i.Bands, true
	}
	value, ok := i.Optional[field]
	return value, ok
}

// Number reads an EO field as a number. Numeric strings are converted; ok is
// false when the field is unset, null or not numeric.
func (i *Item) Number(field string) (float64, bool) {
	value, ok := i.Value(field)
	if !ok || value == nil {
		return 0, false
	}
	if _, isBool := value.(bool); isBool {
		return 0, false
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Text reads a scalar EO field as a string; ok is false when the field is
// unset, null or not a scalar.
func (i *Item) Text(field string) (string, bool) {
	value, ok := i.Value(field)
	if !ok || value == nil || field == FieldBands {
		return "", false
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return s, true
}

// fieldValues holds the EO fields collected from a property map
type fieldValues struct {
	gsd        interface{}
	platform   interface{}
	instrument interface{}
	bands      []Band
	optional   map[string]interface{}
}

func bandsField(key string, value interface{}) ([]Band, error) {
	if value == nil {
		return nil, nil
	}
	fragments, err := stac.ToSlice(value)
	if err != nil {
		return nil, invalidFieldError(key, value, err)
	}
	bands := make([]Band, len(fragments))
	for i, fragment := range fragments {
		fragmentMap, err := cast.ToStringMapE(fragment)
		if err != nil {
			return nil, invalidFieldError(key, value, err)
		}
		bands[i] = BandFromDocument(fragmentMap)
	}
	return bands, nil
}

// collectFields reads every EO field from a property map. A required field
// whose key is absent is an error; absent optional fields stay unset. Values
// are adopted as they are, only the band list is parsed.
func collectFields(properties map[string]interface{}) (*fieldValues, error) {
	values := &fieldValues{optional: map[string]interface{}{}}
	for _, field := range Fields {
		key := Key(field)
		value, ok := properties[key]
		if !ok {
			if isRequired(field) {
				return nil, missingFieldError(key)
			}
			continue
		}

		switch field {
		case FieldGSD:
			values.gsd = value
		case FieldPlatform:
			values.platform = value
		case FieldInstrument:
			values.instrument = value
		case FieldBands:
			bands, err := bandsField(key, value)
			if err != nil {
				return nil, err
			}
			values.bands = bands
		default:
			values.optional[field] = value
		}
	}
	return values, nil
}

// ItemFromGeneric derives an EO item from a generic item. Eligible generic
// assets are upgraded to *Asset and every EO asset is attached to the new
// item. Generic asset entries that need no upgrade are shared with the result;
// entries that are already *Asset are cloned, so the source keeps ownership of
// its own assets.
func ItemFromGeneric(item *stac.Item) (*Item, error) {
	properties := stac.CopyProperties(item.Properties)
	values, err := collectFields(properties)
	if err != nil {
		return nil, err
	}

	var extensions []string
	if item.Extensions != nil {
		extensions = append([]string{}, item.Extensions...)
	}
	e := &Item{
		Item: *stac.NewItem(item.ID, item.Geometry, item.Bbox, item.Datetime,
			properties, extensions, item.Href, item.Collection),
		GSD:        values.gsd,
		Platform:   values.platform,
		Instrument: values.instrument,
		Bands:      values.bands,
		Optional:   values.optional,
	}

	// The item is complete; only now attach links and assets to it.
	e.Links = append(e.Links, item.Links...)
	for key, entry := range item.Assets {
		if asset, ok := entry.(*Asset); ok {
			entry = asset.Clone()
		}
		e.attach(key, entry)
	}

	return e, nil
}

// ItemFromDocument parses an item document as an EO item
func ItemFromDocument(doc map[string]interface{}) (*Item, error) {
	item, err := stac.ItemFromDocument(doc)
	if err != nil {
		return nil, err
	}
	return ItemFromGeneric(item)
}

// LoadItem loads the item at the locator from a source and derives an EO item
func LoadItem(ctx context.Context, source Source, locator string) (*Item, error) {
	item, err := source.Load(ctx, locator)
	if err != nil {
		return nil, err
	}
	return ItemFromGeneric(item)
}

// attach upgrades an eligible asset, takes ownership of EO assets and stores
// the result under key
func (i *Item) attach(key string, entry stac.AssetEntry) {
	entry = upgradeAsset(entry)
	if asset, ok := entry.(*Asset); ok {
		asset.setOwner(i)
	}
	i.Assets[key] = entry
}

// EOAssets returns the EO assets of the item, keyed as in the asset mapping
func (i *Item) EOAssets() map[string]*Asset {
	assets := map[string]*Asset{}
	for key, entry := range i.Assets {
		if asset, ok := entry.(*Asset); ok {
			assets[key] = asset
		}
	}
	return assets
}

// AddAsset adds an asset under key, replacing any asset already there. An
// eligible generic asset is upgraded first. It returns the item for chaining.
func (i *Item) AddAsset(key string, asset stac.AssetEntry) *Item {
	if i.Assets == nil {
		i.Assets = map[string]stac.AssetEntry{}
	}
	i.attach(key, asset)
	return i
}

// projectFields writes the in-memory EO fields into a property map under
// their namespaced keys. Optional fields missing from Optional are removed
// from the map.
func (i *Item) projectFields(properties map[string]interface{}) {
	var bands []interface{}
	if i.Bands != nil {
		bands = make([]interface{}, len(i.Bands))
		for n, band := range i.Bands {
			bands[n] = band.ToDocument()
		}
	}
	properties[Key(FieldGSD)] = stac.CopyValue(i.GSD)
	properties[Key(FieldPlatform)] = stac.CopyValue(i.Platform)
	properties[Key(FieldInstrument)] = stac.CopyValue(i.Instrument)
	if bands == nil {
		properties[BandsKey] = nil
	} else {
		properties[BandsKey] = bands
	}

	for _, field := range Fields {
		if isRequired(field) {
			continue
		}
		if value, ok := i.Optional[field]; ok {
			properties[Key(field)] = stac.CopyValue(value)
		} else {
			delete(properties, Key(field))
		}
	}
}

// Clone returns a deep copy of the item. Every EO asset of the copy is owned
// by the copy.
func (i *Item) Clone() *Item {
	base := i.Item.Clone()
	i.projectFields(base.Properties)

	c, err := ItemFromGeneric(base)
	if err != nil {
		// projectFields wrote every required key and a list of band objects.
		panic(err)
	}
	return c
}

// ToDocument serializes the item. The EO fields are written to the properties
// and then every EO key found in the properties is also copied to the top
// level of the document, so EO fields appear both under "properties" and at
// the document root.
func (i *Item) ToDocument() map[string]interface{} {
	d := i.Item.ToDocument()
	properties := d["properties"].(map[string]interface{})
	i.projectFields(properties)

	for _, field := range Fields {
		if value, ok := properties[Key(field)]; ok {
			d[Key(field)] = value
		}
	}
	return d
}
