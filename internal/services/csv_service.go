package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"crateworth/internal/domain"
	"crateworth/internal/pricing"
	"crateworth/internal/repos"
	"crateworth/internal/validate"
)

// CSVService imports and exports inventory as CSV, the exchange format the
// store uses with its spreadsheet-based bookkeeping.
type CSVService struct {
	Records *repos.RecordRepo
	Record  *RecordService
}

func NewCSVService(records *repos.RecordRepo, recordSvc *RecordService) *CSVService {
	return &CSVService{Records: records, Record: recordSvc}
}

var csvHeader = []string{
	"artist", "title", "label", "catno", "format", "media_grade",
	"sleeve_grade", "discogs_release_id", "store_price", "ebay_sell_at",
	"status", "notes",
}

func (s *CSVService) Export(w io.Writer) error {
	recs, err := s.Records.List("", 10000, 0)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Artist, r.Title, r.Label, r.CatNo, r.Format, r.MediaGrade,
			r.SleeveGrade, strconv.FormatInt(r.DiscogsReleaseID, 10),
			pricing.FormatPrice(r.StorePrice), pricing.FormatPrice(r.EbaySellAt),
			r.Status, r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads rows in the export layout and checks each one in. Posted
// prices and status in the file are ignored: imported records start
// unpriced. The first bad row aborts the import with its line number.
func (s *CSVService) Import(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) < 6 || header[0] != "artist" || header[1] != "title" {
		return 0, fmt.Errorf("csv: unexpected header %v", header)
	}

	imported := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("csv: row %d: %w", line, err)
		}
		if len(row) < 6 {
			return imported, fmt.Errorf("csv: row %d: want at least 6 fields, got %d", line, len(row))
		}

		grade, ok := validate.Grade(row[5])
		if !ok {
			return imported, fmt.Errorf("csv: row %d: bad media grade %q", line, row[5])
		}
		format, ok := validate.Format(row[4])
		if !ok {
			return imported, fmt.Errorf("csv: row %d: bad format %q", line, row[4])
		}

		rec := domain.Record{
			Artist:     row[0],
			Title:      row[1],
			Label:      row[2],
			CatNo:      row[3],
			Format:     format,
			MediaGrade: grade,
		}
		if len(row) > 6 {
			if g, ok := validate.Grade(row[6]); ok {
				rec.SleeveGrade = g
			}
		}
		if len(row) > 7 {
			if id, ok := validate.ReleaseID(row[7]); ok {
				rec.DiscogsReleaseID = id
			}
		}
		if len(row) > 11 {
			rec.Notes = row[11]
		}

		if _, err := s.Record.CheckIn(rec); err != nil {
			return imported, fmt.Errorf("csv: row %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}
