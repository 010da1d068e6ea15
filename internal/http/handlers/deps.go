package handlers

import (
	"github.com/jmoiron/sqlx"

	"crateworth/internal/config"
	"crateworth/internal/repos"
	"crateworth/internal/services"
)

type Deps struct {
	RecordHandler  *RecordHandler
	PricingHandler *PricingHandler
	StatsHandler   *StatsHandler
	CSVHandler     *CSVHandler

	Pricing *services.PricingService
}

func NewDeps(db *sqlx.DB, cfg config.Config, dg services.DiscogsSource, eb services.EbaySource) *Deps {
	recordRepo := repos.NewRecordRepo(db)
	snapRepo := repos.NewSnapshotRepo(db)

	recordSvc := services.NewRecordService(recordRepo)
	pricingSvc := services.NewPricingService(recordRepo, snapRepo, dg, eb,
		cfg.FlatShippingCost, cfg.MinStorePrice)
	statsSvc := services.NewStatsService(recordRepo)
	csvSvc := services.NewCSVService(recordRepo, recordSvc)

	return &Deps{
		RecordHandler:  &RecordHandler{Records: recordSvc},
		PricingHandler: &PricingHandler{Pricing: pricingSvc, Snapshots: snapRepo},
		StatsHandler:   &StatsHandler{Stats: statsSvc},
		CSVHandler:     &CSVHandler{CSV: csvSvc},
		Pricing:        pricingSvc,
	}
}
