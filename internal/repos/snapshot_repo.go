package repos

import (
	"crateworth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SnapshotRepo struct{ db *sqlx.DB }

func NewSnapshotRepo(db *sqlx.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

const snapshotCols = `
  id, record_id, source_kind, median, lowest, highest, source_count,
  sample_size, ebay_lowest, ebay_shipping, store_price, ebay_sell_at,
  created_at`

// Insert appends a refresh run. Snapshots are never updated in place.
func (r *SnapshotRepo) Insert(s domain.PriceSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO price_snapshots(id, record_id, source_kind, median, lowest,
		  highest, source_count, sample_size, ebay_lowest, ebay_shipping,
		  store_price, ebay_sell_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.RecordID, s.SourceKind, s.Median, s.Lowest, s.Highest,
		s.SourceCount, s.SampleSize, s.EbayLowest, s.EbayShipping,
		s.StorePrice, s.EbaySellAt)
	return err
}

// Latest returns the most recent snapshot for a record, sql.ErrNoRows when
// the record has never been priced.
func (r *SnapshotRepo) Latest(recordID string) (domain.PriceSnapshot, error) {
	var s domain.PriceSnapshot
	err := r.db.Get(&s, `
		SELECT `+snapshotCols+` FROM price_snapshots
		WHERE record_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, recordID)
	return s, err
}

func (r *SnapshotRepo) History(recordID string, limit int) ([]domain.PriceSnapshot, error) {
	var out []domain.PriceSnapshot
	err := r.db.Select(&out, `
		SELECT `+snapshotCols+` FROM price_snapshots
		WHERE record_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, recordID, limit)
	return out, err
}
