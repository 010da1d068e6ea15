package domain

// Record is one item of store inventory: a single physical record.
type Record struct {
	ID               string  `db:"id" json:"id"`
	Artist           string  `db:"artist" json:"artist"`
	Title            string  `db:"title" json:"title"`
	Label            string  `db:"label" json:"label"`
	CatNo            string  `db:"catno" json:"catno"`
	Format           string  `db:"format" json:"format"` // LP | EP | SINGLE | BOX
	MediaGrade       string  `db:"media_grade" json:"media_grade"`
	SleeveGrade      string  `db:"sleeve_grade" json:"sleeve_grade"`
	DiscogsReleaseID int64   `db:"discogs_release_id" json:"discogs_release_id"`
	StorePrice       float64 `db:"store_price" json:"store_price"`
	EbaySellAt       float64 `db:"ebay_sell_at" json:"ebay_sell_at"`
	PriceSource      string  `db:"price_source" json:"price_source"`
	Status           string  `db:"status" json:"status"` // CHECKED_IN | PRICED | SOLD
	Notes            string  `db:"notes" json:"notes"`
	CreatedAt        string  `db:"created_at" json:"created_at"`
	UpdatedAt        string  `db:"updated_at" json:"updated_at"`
}

// PriceSnapshot is one pricing refresh run for a record: the aggregation
// that came out of the fallback chain plus the computed posted prices.
// Snapshots are append-only; a new run supersedes the old row, never
// updates it.
type PriceSnapshot struct {
	ID           string   `db:"id" json:"id"`
	RecordID     string   `db:"record_id" json:"record_id"`
	SourceKind   string   `db:"source_kind" json:"source_kind"`
	Median       *float64 `db:"median" json:"median,omitempty"`
	Lowest       *float64 `db:"lowest" json:"lowest,omitempty"`
	Highest      *float64 `db:"highest" json:"highest,omitempty"`
	SourceCount  int      `db:"source_count" json:"source_count"`
	SampleSize   int      `db:"sample_size" json:"sample_size"`
	EbayLowest   *float64 `db:"ebay_lowest" json:"ebay_lowest,omitempty"`
	EbayShipping *float64 `db:"ebay_shipping" json:"ebay_shipping,omitempty"`
	StorePrice   float64  `db:"store_price" json:"store_price"`
	EbaySellAt   float64  `db:"ebay_sell_at" json:"ebay_sell_at"`
	CreatedAt    string   `db:"created_at" json:"created_at"`
}

// StoreStats is the basic-statistics view: inventory counts by status and
// the summed posted value of unsold stock.
type StoreStats struct {
	Total          int     `db:"total" json:"total"`
	CheckedIn      int     `db:"checked_in" json:"checked_in"`
	Priced         int     `db:"priced" json:"priced"`
	Sold           int     `db:"sold" json:"sold"`
	InventoryValue float64 `db:"inventory_value" json:"inventory_value"`
}
