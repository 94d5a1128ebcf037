package db

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// ItemRecord is one row of the eo_items table. The scalar columns are copies
// of EO attributes kept for filtering, zero when the item's value is not of the
// column type; Document is the authoritative form.
type ItemRecord struct {
	ID         string
	Collection string
	Platform   string
	Instrument string
	GSD        float64
	CloudCover sql.NullFloat64
	Acquired   pq.NullTime
	Document   []byte
}

// recordFromItem serializes an EO item into its table row.
func recordFromItem(item *eo.Item) (*ItemRecord, error) {
	document, err := json.Marshal(item.ToDocument())
	if err != nil {
		return nil, err
	}

	platform, _ := item.Text(eo.FieldPlatform)
	instrument, _ := item.Text(eo.FieldInstrument)
	gsd, _ := item.Number(eo.FieldGSD)
	record := ItemRecord{
		ID:         item.ID,
		Collection: item.Collection,
		Platform:   platform,
		Instrument: instrument,
		GSD:        gsd,
		Acquired:   pq.NullTime{Time: item.Datetime, Valid: !item.Datetime.IsZero()},
		Document:   document,
	}
	if cloudCover, ok := item.Number(eo.FieldCloudCover); ok {
		record.CloudCover = sql.NullFloat64{Float64: cloudCover, Valid: true}
	}
	return &record, nil
}

// itemFromDocumentBytes rehydrates an EO item from a stored document.
func itemFromDocumentBytes(document []byte) (*eo.Item, error) {
	doc := map[string]interface{}{}
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, err
	}
	return eo.ItemFromDocument(doc)
}
