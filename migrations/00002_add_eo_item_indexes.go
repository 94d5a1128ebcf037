package migration

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up00002, Down00002)
}

// Up00002 indexes the columns items are listed by
func Up00002(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX idx_eo_items_collection
		ON public.eo_items USING btree
		(collection);

		CREATE INDEX idx_eo_items_acquired
		ON public.eo_items USING btree
		(acquired DESC NULLS LAST);
		`)
	return err
}

// Down00002 undoes the db changes.
func Down00002(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS public.idx_eo_items_acquired;
		DROP INDEX IF EXISTS public.idx_eo_items_collection;
		`)
	return err
}
