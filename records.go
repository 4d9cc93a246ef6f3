package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/susji/lilscatter/scatter"
)

func records_load_file(path string) ([]scatter.Record, error) {
	log.Info().Str("path", path).Msg("reading records")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := scatter.ParseRecords(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load records from %q: %w", path, err)
	}
	log.Info().Int("records", len(records)).Msg("records parsed")
	return records, nil
}

// records_cache loads the data file into a fresh record cache. Any error
// is fatal for the caller; nothing is served from a partial load.
func records_cache(ctx context.Context, path string) (*sql.DB, error) {
	records, err := records_load_file(path)
	if err != nil {
		return nil, err
	}
	db, err := db_init()
	if err != nil {
		return nil, err
	}
	if err := db_migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := db_records_insert(ctx, db, records); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
