package repos

import (
	"crateworth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RecordRepo struct{ db *sqlx.DB }

func NewRecordRepo(db *sqlx.DB) *RecordRepo { return &RecordRepo{db: db} }

const recordCols = `
  id, artist, title, label, catno, format, media_grade, sleeve_grade,
  discogs_release_id, store_price, ebay_sell_at, price_source, status, notes,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *RecordRepo) Get(id string) (domain.Record, error) {
	var rec domain.Record
	err := r.db.Get(&rec, `SELECT `+recordCols+` FROM records WHERE id = ?`, id)
	return rec, err
}

func (r *RecordRepo) List(status string, limit, offset int) ([]domain.Record, error) {
	var out []domain.Record
	if status != "" {
		err := r.db.Select(&out, `
			SELECT `+recordCols+` FROM records
			WHERE status = ?
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?`, status, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `
		SELECT `+recordCols+` FROM records
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *RecordRepo) Search(q string, limit, offset int) ([]domain.Record, error) {
	var out []domain.Record
	like := "%" + q + "%"
	err := r.db.Select(&out, `
		SELECT `+recordCols+` FROM records
		WHERE LOWER(artist) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?)
		   OR LOWER(label) LIKE LOWER(?) OR LOWER(catno) LIKE LOWER(?)
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, like, like, like, like, limit, offset)
	return out, err
}

func (r *RecordRepo) Insert(rec domain.Record) error {
	_, err := r.db.Exec(`
		INSERT INTO records(id, artist, title, label, catno, format,
		  media_grade, sleeve_grade, discogs_release_id, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'CHECKED_IN')`,
		rec.ID, rec.Artist, rec.Title, rec.Label, rec.CatNo, rec.Format,
		rec.MediaGrade, rec.SleeveGrade, rec.DiscogsReleaseID, rec.Notes)
	return err
}

func (r *RecordRepo) Update(rec domain.Record) error {
	_, err := r.db.Exec(`
		UPDATE records SET
		  artist = ?, title = ?, label = ?, catno = ?, format = ?,
		  media_grade = ?, sleeve_grade = ?, discogs_release_id = ?, notes = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.Artist, rec.Title, rec.Label, rec.CatNo, rec.Format,
		rec.MediaGrade, rec.SleeveGrade, rec.DiscogsReleaseID, rec.Notes, rec.ID)
	return err
}

// UpdatePricing writes the posted prices computed by a refresh run and
// promotes the record to PRICED unless it has already been sold.
func (r *RecordRepo) UpdatePricing(id string, storePrice, ebaySellAt float64, priceSource string) error {
	_, err := r.db.Exec(`
		UPDATE records SET
		  store_price = ?, ebay_sell_at = ?, price_source = ?,
		  status = CASE WHEN status = 'SOLD' THEN status ELSE 'PRICED' END,
		  updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, storePrice, ebaySellAt, priceSource, id)
	return err
}

// SetPriceSource records the outcome of a refresh that found no data,
// without touching posted prices or status.
func (r *RecordRepo) SetPriceSource(id, priceSource string) error {
	_, err := r.db.Exec(`
		UPDATE records SET price_source = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, priceSource, id)
	return err
}

// SetDiscogsRelease links a record to the Discogs release found for it.
func (r *RecordRepo) SetDiscogsRelease(id string, releaseID int64) error {
	_, err := r.db.Exec(`
		UPDATE records SET discogs_release_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, releaseID, id)
	return err
}

func (r *RecordRepo) MarkSold(id string) error {
	_, err := r.db.Exec(`
		UPDATE records SET status = 'SOLD', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	return err
}

func (r *RecordRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	return err
}

// Unsold returns every record that still needs pricing attention, for the
// bulk refresh job.
func (r *RecordRepo) Unsold() ([]domain.Record, error) {
	var out []domain.Record
	err := r.db.Select(&out, `
		SELECT `+recordCols+` FROM records
		WHERE status != 'SOLD'
		ORDER BY created_at ASC`)
	return out, err
}

func (r *RecordRepo) Stats() (domain.StoreStats, error) {
	var s domain.StoreStats
	err := r.db.Get(&s, `
		SELECT
		  COUNT(*) AS total,
		  COALESCE(SUM(CASE WHEN status = 'CHECKED_IN' THEN 1 ELSE 0 END), 0) AS checked_in,
		  COALESCE(SUM(CASE WHEN status = 'PRICED' THEN 1 ELSE 0 END), 0) AS priced,
		  COALESCE(SUM(CASE WHEN status = 'SOLD' THEN 1 ELSE 0 END), 0) AS sold,
		  COALESCE(SUM(CASE WHEN status != 'SOLD' THEN store_price ELSE 0 END), 0) AS inventory_value
		FROM records`)
	return s, err
}
