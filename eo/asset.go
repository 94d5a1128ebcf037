package eo

import (
	"github.com/spf13/cast"
	"github.com/venicegeo/bf-eo-catalog/stac"
)

// Asset is an asset whose file holds one or more of its item's bands.
// Bands are indices into the owning item's band list.
type Asset struct {
	stac.Asset
	Bands []int

	// owner is a non-owning reference to the item whose asset mapping holds
	// this asset. It is set by the item on insertion and cleared by Clone.
	owner *Item
}

// NewAsset creates an EO asset with no owner
func NewAsset(href string, bands []int, title, mediaType string, properties map[string]interface{}) *Asset {
	return &Asset{
		Asset: *stac.NewAsset(href, title, mediaType, properties),
		Bands: bands,
	}
}

// bandIndices reads the eo:bands asset property. A missing, null or malformed
// value yields no indices; the raw value stays in the asset properties.
func bandIndices(properties map[string]interface{}) []int {
	raw, ok := properties[BandsKey]
	if !ok || raw == nil {
		return nil
	}
	indices, err := cast.ToIntSliceE(raw)
	if err != nil {
		return nil
	}
	return indices
}

// AssetFromGeneric upgrades a generic asset. The generic asset is cloned, so
// the result shares nothing with it, and the result has no owner.
func AssetFromGeneric(asset *stac.Asset) *Asset {
	a := asset.Clone()
	return &Asset{
		Asset: *a,
		Bands: bandIndices(a.Properties),
	}
}

// AssetFromDocument parses an asset object as an EO asset
func AssetFromDocument(doc map[string]interface{}) (*Asset, error) {
	asset, err := stac.AssetFromDocument(doc)
	if err != nil {
		return nil, err
	}
	return AssetFromGeneric(asset), nil
}

// Owner returns the item holding this asset, or nil
func (a *Asset) Owner() *Item {
	return a.owner
}

func (a *Asset) setOwner(item *Item) {
	a.owner = item
}

// ResolveBands returns the owner's bands referenced by this asset, in the
// order of the asset's band indices
func (a *Asset) ResolveBands() ([]Band, error) {
	if a.owner == nil {
		return nil, unassociatedAssetError()
	}
	bands := make([]Band, len(a.Bands))
	for i, index := range a.Bands {
		if index < 0 || index >= len(a.owner.Bands) {
			return nil, bandIndexError(index, len(a.owner.Bands))
		}
		bands[i] = a.owner.Bands[index]
	}
	return bands, nil
}

// Clone returns a structurally equal copy with no owner
func (a *Asset) Clone() *Asset {
	var bands []int
	if a.Bands != nil {
		bands = append([]int{}, a.Bands...)
	}
	return &Asset{
		Asset: *a.Asset.Clone(),
		Bands: bands,
	}
}

// CloneEntry implements stac.AssetEntry
func (a *Asset) CloneEntry() stac.AssetEntry {
	return a.Clone()
}

// ToDocument implements stac.AssetEntry. The in-memory band indices replace
// whatever eo:bands value the properties hold.
func (a *Asset) ToDocument() map[string]interface{} {
	doc := a.Asset.ToDocument()
	if a.Bands != nil {
		doc[BandsKey] = append([]int{}, a.Bands...)
	}
	return doc
}

// upgradeAsset converts EO-eligible generic assets; every other entry is
// returned unchanged
func upgradeAsset(entry stac.AssetEntry) stac.AssetEntry {
	if generic, ok := entry.(*stac.Asset); ok && generic.IsEO() {
		return AssetFromGeneric(generic)
	}
	return entry
}
