package services

import (
	"errors"

	"github.com/google/uuid"

	"crateworth/internal/domain"
	"crateworth/internal/repos"
)

type RecordService struct {
	Records *repos.RecordRepo
}

func NewRecordService(records *repos.RecordRepo) *RecordService {
	return &RecordService{Records: records}
}

// CheckIn registers a newly acquired record. Enum validation happens at the
// handler; this fills defaults and assigns the id.
func (s *RecordService) CheckIn(rec domain.Record) (domain.Record, error) {
	if rec.Artist == "" || rec.Title == "" {
		return domain.Record{}, errors.New("artist and title are required")
	}
	if rec.Format == "" {
		rec.Format = "LP"
	}
	if rec.SleeveGrade == "" {
		rec.SleeveGrade = rec.MediaGrade
	}
	rec.ID = uuid.NewString()
	if err := s.Records.Insert(rec); err != nil {
		return domain.Record{}, err
	}
	return s.Records.Get(rec.ID)
}

func (s *RecordService) Get(id string) (domain.Record, error) {
	return s.Records.Get(id)
}

func (s *RecordService) Update(rec domain.Record) (domain.Record, error) {
	if rec.Artist == "" || rec.Title == "" {
		return domain.Record{}, errors.New("artist and title are required")
	}
	if err := s.Records.Update(rec); err != nil {
		return domain.Record{}, err
	}
	return s.Records.Get(rec.ID)
}

func (s *RecordService) Sell(id string) (domain.Record, error) {
	if err := s.Records.MarkSold(id); err != nil {
		return domain.Record{}, err
	}
	return s.Records.Get(id)
}

func (s *RecordService) Delete(id string) error {
	return s.Records.Delete(id)
}

func (s *RecordService) List(status string, page, pageSize int) ([]domain.Record, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	return s.Records.List(status, pageSize, offset)
}

func (s *RecordService) Search(q string, page, pageSize int) ([]domain.Record, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	return s.Records.Search(q, pageSize, offset)
}
