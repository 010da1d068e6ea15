package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed a couple of demo records so a fresh install has something to price
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Inventory: one row per physical record
CREATE TABLE IF NOT EXISTS records(
  id TEXT PRIMARY KEY,
  artist TEXT NOT NULL,
  title TEXT NOT NULL,
  label TEXT NOT NULL DEFAULT '',
  catno TEXT NOT NULL DEFAULT '',
  format TEXT NOT NULL DEFAULT 'LP' CHECK (format IN ('LP','EP','SINGLE','BOX')),
  media_grade TEXT NOT NULL CHECK (media_grade IN ('M','NM','VG+','VG','G+','G','F','P')),
  sleeve_grade TEXT NOT NULL DEFAULT '',
  discogs_release_id INTEGER NOT NULL DEFAULT 0,
  store_price NUMERIC NOT NULL DEFAULT 0 CHECK (store_price >= 0),
  ebay_sell_at NUMERIC NOT NULL DEFAULT 0 CHECK (ebay_sell_at >= 0),
  price_source TEXT NOT NULL DEFAULT 'no_prices',
  status TEXT NOT NULL DEFAULT 'CHECKED_IN' CHECK (status IN ('CHECKED_IN','PRICED','SOLD')),
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_records_artist     ON records(LOWER(artist));
CREATE INDEX IF NOT EXISTS idx_records_title      ON records(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_records_status     ON records(status);
CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at);

-- Pricing refresh history: append-only, one row per refresh run
CREATE TABLE IF NOT EXISTS price_snapshots(
  id TEXT PRIMARY KEY,
  record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
  source_kind TEXT NOT NULL,
  median NUMERIC,
  lowest NUMERIC,
  highest NUMERIC,
  source_count INTEGER NOT NULL DEFAULT 0,
  sample_size INTEGER NOT NULL DEFAULT 0,
  ebay_lowest NUMERIC,
  ebay_shipping NUMERIC,
  store_price NUMERIC NOT NULL DEFAULT 0,
  ebay_sell_at NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_record ON price_snapshots(record_id, created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM records`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo records")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO records(id,artist,title,label,catno,format,media_grade,sleeve_grade,discogs_release_id) VALUES
	  ('rec-blue-train','John Coltrane','Blue Train','Blue Note','BLP 1577','LP','VG+','VG',7011),
	  ('rec-rumours','Fleetwood Mac','Rumours','Warner Bros.','BSK 3010','LP','NM','VG+',469569),
	  ('rec-loveless','My Bloody Valentine','Loveless','Creation','CRELP 060','LP','VG','G+',0)`)
	return tx.Commit()
}
