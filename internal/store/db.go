package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// InitSchema creates all tables. Every statement is idempotent so this is
// safe to run on each startup.
//
// Invoices are stored document-style: the line items live in a single JSON
// column so an invoice round-trips as one record. The UNIQUE index on
// invoice_number is the last-resort guard against the numbering race
// under concurrent creation.
func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT 'Tax Invoice',
		issue_date DATETIME NOT NULL,
		due_date DATETIME,
		business_name TEXT NOT NULL,
		abn TEXT NOT NULL,
		business_address TEXT NOT NULL DEFAULT '',
		client_id TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL,
		client_address TEXT NOT NULL DEFAULT '',
		client_email TEXT NOT NULL DEFAULT '',
		items TEXT NOT NULL,
		tax_rate REAL NOT NULL DEFAULT 0.10,
		subtotal REAL NOT NULL DEFAULT 0,
		tax_amount REAL NOT NULL DEFAULT 0,
		total REAL NOT NULL DEFAULT 0,
		payment_terms TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS performances (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		venue TEXT NOT NULL DEFAULT '',
		date DATETIME NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'upcoming',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS testimonials (
		id TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		quote TEXT NOT NULL,
		event TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS contact_leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
