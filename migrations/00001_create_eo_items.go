package migration

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up00001, Down00001)
}

// Up00001 adds the EO item table
func Up00001(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE public.eo_items
		(
			id text COLLATE pg_catalog."default" NOT NULL,
			collection text NOT NULL DEFAULT '',
			platform text NOT NULL,
			instrument text NOT NULL,
			gsd double precision NOT NULL,
			cloud_cover double precision,
			acquired timestamp with time zone,
			document jsonb NOT NULL,
			CONSTRAINT eo_items_pk_id PRIMARY KEY (id)
		)
		WITH (
			OIDS = FALSE
		);
		`)
	return err
}

// Down00001 undoes the db changes.
func Down00001(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS public.eo_items;`)
	return err
}
