package stac

import (
	"fmt"
)

// AssetEntry is the capability set shared by every asset kind an item can
// hold in its asset mapping: the generic Asset and extension-specific assets
// that embed it
type AssetEntry interface {
	// Generic returns the generic part of the asset
	Generic() *Asset
	// CloneEntry returns an independent copy of the same kind
	CloneEntry() AssetEntry
	// ToDocument serializes the asset into its document form
	ToDocument() map[string]interface{}
}

// Asset is a reference to one data file associated with an Item
type Asset struct {
	Href       string
	Title      string
	MediaType  string
	Properties map[string]interface{}
}

// NewAsset creates an Asset; a nil property map is replaced by a fresh empty one
func NewAsset(href, title, mediaType string, properties map[string]interface{}) *Asset {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return &Asset{
		Href:       href,
		Title:      title,
		MediaType:  mediaType,
		Properties: properties,
	}
}

// AssetFromDocument parses an asset object. Every key besides href, title and
// type is kept as an asset property.
func AssetFromDocument(doc map[string]interface{}) (*Asset, error) {
	href := stringAt(doc, "href")
	if href == "" {
		return nil, fmt.Errorf("Asset is missing required field 'href'")
	}

	properties := map[string]interface{}{}
	for k, v := range doc {
		switch k {
		case "href", "title", "type":
			continue
		}
		properties[k] = CopyValue(v)
	}

	return NewAsset(href, stringAt(doc, "title"), stringAt(doc, "type"), properties), nil
}

// Generic implements AssetEntry
func (a *Asset) Generic() *Asset {
	return a
}

// Clone returns a deep copy of the asset
func (a *Asset) Clone() *Asset {
	return NewAsset(a.Href, a.Title, a.MediaType, CopyProperties(a.Properties))
}

// CloneEntry implements AssetEntry
func (a *Asset) CloneEntry() AssetEntry {
	return a.Clone()
}

// IsEO reports whether the asset references electro-optical bands
func (a *Asset) IsEO() bool {
	_, ok := a.Properties[EOBandsProperty]
	return ok
}

// ToDocument implements AssetEntry. Properties are flattened into the asset object.
func (a *Asset) ToDocument() map[string]interface{} {
	doc := CopyProperties(a.Properties)
	doc["href"] = a.Href
	if a.Title != "" {
		doc["title"] = a.Title
	}
	if a.MediaType != "" {
		doc["type"] = a.MediaType
	}
	return doc
}
