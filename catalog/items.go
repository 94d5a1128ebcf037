package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/venicegeo/bf-eo-catalog/catalog/db"
	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/model"
)

var (
	errAssetNotFound = errors.New("asset not found")
	errNotEOAsset    = errors.New("asset does not reference any bands")
)

func getSummary(tx *sql.Tx, id string) (model.GeoJSONFeatureCreator, error) {
	item, err := db.GetItemByID(tx, id)
	if err != nil {
		return nil, err
	}
	return model.NewEOSceneResult(item)
}

func listSummaries(tx *sql.Tx, collection string) (model.GeoJSONFeatureCollectionCreator, error) {
	items, err := db.GetItems(tx, collection)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiSceneSummary{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(items)),
	}
	for i, item := range items {
		if multiResult.FeatureCreators[i], err = model.NewEOSceneResult(item); err != nil {
			return nil, err
		}
	}
	return multiResult, nil
}

func getAssetBands(tx *sql.Tx, id string, key string) ([]eo.Band, error) {
	item, err := db.GetItemByID(tx, id)
	if err != nil {
		return nil, err
	}

	entry, ok := item.Assets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errAssetNotFound, key)
	}
	asset, ok := entry.(*eo.Asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotEOAsset, key)
	}
	return asset.ResolveBands()
}

func bandsToDocuments(bands []eo.Band) []interface{} {
	docs := make([]interface{}, len(bands))
	for i, band := range bands {
		docs[i] = band.ToDocument()
	}
	return docs
}

func bandInfo(commonName string) (map[string]interface{}, bool) {
	wavelengths, ok := eo.BandRange(commonName)
	if !ok {
		return nil, false
	}
	return map[string]interface{}{
		"common_name": commonName,
		"description": eo.BandDescription(commonName),
		"min":         wavelengths.Min,
		"max":         wavelengths.Max,
	}, true
}
