// Package data implements the Postgres-backed repositories.
package data

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
)

// Data holds the shared database handle.
type Data struct {
	db  *sql.DB
	log *log.Helper
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS subscribers (
		email TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'subscriber',
		regions TEXT[] NOT NULL DEFAULT '{}',
		topics TEXT[] NOT NULL DEFAULT '{}',
		is_subscribed BOOLEAN NOT NULL DEFAULT TRUE,
		consent_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS scan_log (
		id SERIAL PRIMARY KEY,
		query TEXT NOT NULL,
		results JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS briefings (
		region TEXT PRIMARY KEY,
		news JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// NewData opens the database, ensures the schema exists and returns the
// shared handle with its cleanup function.
func NewData(driver, source string, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	d := &Data{db: db, log: helper}
	cleanup := func() {
		helper.Info("closing the data resources")
		if err := db.Close(); err != nil {
			helper.Errorf("close database: %v", err)
		}
	}
	return d, cleanup, nil
}
