package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/susji/lilscatter/scatter"
)

const DB_RECORDS_TABLE = "lilscatter_records"

// db_init opens the record cache. It lives in memory only, so the pool
// is pinned to one connection to keep every query on the same database.
func db_init() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	var db_version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&db_version); err != nil {
		log.Warn().Err(err).Msg("unable to get sqlite version")
	} else {
		log.Info().Str("version", db_version).Msg("database ready")
	}
	return db, nil
}

func db_column_list() string {
	cols := []string{scatter.HeaderGeography, scatter.HeaderAbbr}
	for _, c := range scatter.Columns {
		cols = append(cols, string(c))
	}
	return strings.Join(cols, ", ")
}

func db_migrate(ctx context.Context, db *sql.DB) error {
	defs := []string{
		"id INTEGER PRIMARY KEY",
		scatter.HeaderGeography + " TEXT NOT NULL",
		scatter.HeaderAbbr + " TEXT NOT NULL",
	}
	for _, c := range scatter.Columns {
		defs = append(defs, string(c)+" DOUBLE PRECISION NOT NULL")
	}
	q := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n    %s);",
		DB_RECORDS_TABLE, strings.Join(defs, ",\n    "))
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}

func db_records_insert(ctx context.Context, db *sql.DB, records []scatter.Record) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 2+len(scatter.Columns)), ", ")
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		DB_RECORDS_TABLE, db_column_list(), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := range records {
		args := []interface{}{records[i].Geography, records[i].Abbr}
		for _, c := range scatter.Columns {
			args = append(args, records[i].Value(c))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("record insert failed for %s: %w", records[i].Geography, err)
		}
	}
	return tx.Commit()
}

// db_records_get returns the cached records in load order.
func db_records_get(ctx context.Context, db *sql.DB) ([]scatter.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id ASC",
		db_column_list(), DB_RECORDS_TABLE)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("unable to select records")
		return nil, err
	}
	defer rows.Close()
	records := []scatter.Record{}
	for rows.Next() {
		r := scatter.Record{}
		if err := rows.Scan(
			&r.Geography, &r.Abbr,
			&r.AllTeethRemoved, &r.BachelorOrHigher, &r.White,
			&r.SkinCancer, &r.FoodStamp, &r.Smoke); err != nil {
			return nil, fmt.Errorf("record scan failed: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
