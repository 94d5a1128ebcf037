package db

import (
	"database/sql"

	"github.com/venicegeo/bf-eo-catalog/eo"
)

const upsertItemStatement = `
		INSERT INTO eo_items (id, collection, platform, instrument, gsd, cloud_cover, acquired, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			collection = EXCLUDED.collection,
			platform = EXCLUDED.platform,
			instrument = EXCLUDED.instrument,
			gsd = EXCLUDED.gsd,
			cloud_cover = EXCLUDED.cloud_cover,
			acquired = EXCLUDED.acquired,
			document = EXCLUDED.document`

// PutItem inserts the item, replacing any stored item with the same ID.
func PutItem(tx *sql.Tx, item *eo.Item) error {
	record, err := recordFromItem(item)
	if err != nil {
		return err
	}

	_, err = tx.Exec(upsertItemStatement,
		record.ID,
		record.Collection,
		record.Platform,
		record.Instrument,
		record.GSD,
		record.CloudCover,
		record.Acquired,
		string(record.Document),
	)
	return err
}

// GetItemByID loads one item. sql.ErrNoRows is returned when it is unknown.
func GetItemByID(tx *sql.Tx, id string) (*eo.Item, error) {
	var document []byte

	rows, err := tx.Query(`
		SELECT document
		FROM eo_items
		WHERE id=$1
		LIMIT 1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	if err = rows.Scan(&document); err != nil {
		return nil, err
	}

	return itemFromDocumentBytes(document)
}

// GetItems loads every item of a collection, ordered by acquisition date.
// An empty collection name selects all items.
func GetItems(tx *sql.Tx, collection string) ([]*eo.Item, error) {
	rows, err := tx.Query(`
		SELECT document
		FROM eo_items
		WHERE ($1 = '' OR collection = $1)
		ORDER BY acquired DESC NULLS LAST, id`,
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*eo.Item{}
	for rows.Next() {
		var document []byte
		if err = rows.Scan(&document); err != nil {
			return nil, err
		}
		item, err := itemFromDocumentBytes(document)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListItemIDs lists the IDs of a collection's items in lexical order. An
// empty collection name lists all items.
func ListItemIDs(tx *sql.Tx, collection string) ([]string, error) {
	rows, err := tx.Query(`
		SELECT id
		FROM eo_items
		WHERE ($1 = '' OR collection = $1)
		ORDER BY id`,
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteItem removes one item. sql.ErrNoRows is returned when it is unknown.
func DeleteItem(tx *sql.Tx, id string) error {
	result, err := tx.Exec(`DELETE FROM eo_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
