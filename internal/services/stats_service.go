package services

import (
	"crateworth/internal/domain"
	"crateworth/internal/repos"
)

type StatsService struct {
	Records *repos.RecordRepo
}

func NewStatsService(records *repos.RecordRepo) *StatsService {
	return &StatsService{Records: records}
}

func (s *StatsService) Store() (domain.StoreStats, error) {
	return s.Records.Stats()
}
