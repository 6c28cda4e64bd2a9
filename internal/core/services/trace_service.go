package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
)

// TraceStage is one configurable step of the custody chain projection: a
// pure function from a batch and its ledger history to a trace point.
// Stages run in pipeline order, origin first.
type TraceStage struct {
	Kind  domain.TraceStageKind
	Build func(batch domain.Batch, entries []domain.LedgerEntry) domain.TracePoint
}

type traceService struct {
	batchRepo  portsrepo.BatchReader
	ledgerRepo portsrepo.LedgerReader
	stages     []TraceStage
}

// NewTraceService creates the custody chain projection over the given stage
// pipeline. Pass DefaultTraceStages() for the standard three-stop chain.
func NewTraceService(batchRepo portsrepo.BatchReader, ledgerRepo portsrepo.LedgerReader, stages []TraceStage) portssvc.TraceSvc {
	return &traceService{batchRepo: batchRepo, ledgerRepo: ledgerRepo, stages: stages}
}

var _ portssvc.TraceSvc = (*traceService)(nil)

// TraceBatch rebuilds the custody chain fresh from the batch and its ledger
// entries. Timestamps are forced monotonically increasing across stages.
func (s *traceService) TraceBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.TracePoint, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load batch %s for trace: %w", batchID, err)
	}
	entries, err := s.ledgerRepo.ListEntriesForBatch(ctx, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger entries for trace: %w", err)
	}

	points := make([]domain.TracePoint, 0, len(s.stages))
	var prev time.Time
	for i, stage := range s.stages {
		point := stage.Build(*batch, entries)
		point.Sequence = i + 1
		point.Kind = stage.Kind
		if !point.Date.After(prev) {
			point.Date = prev.Add(time.Hour)
		}
		prev = point.Date
		points = append(points, point)
	}
	return batch, points, nil
}

// The downstream stops below are demo placeholders: fixed partners at fixed
// locations, dated by offsetting the harvest date when no verification date
// exists yet.
var (
	distributionStop = domain.Location{Lat: 28.7041, Lng: 77.1025, Address: "Distribution Center, Delhi, India"}
	retailStop       = domain.Location{Lat: 19.0760, Lng: 72.8777, Address: "Retail Outlet, Mumbai, Maharashtra"}
)

// DefaultTraceStages returns the standard origin -> distribution -> retail
// pipeline.
func DefaultTraceStages() []TraceStage {
	return []TraceStage{
		{
			Kind: domain.StageFarm,
			Build: func(batch domain.Batch, _ []domain.LedgerEntry) domain.TracePoint {
				location := domain.Location{}
				if batch.Location != nil {
					location = *batch.Location
				}
				return domain.TracePoint{
					Name:        batch.FarmerName,
					Location:    location,
					Date:        batch.HarvestDate,
					Description: fmt.Sprintf("Harvested %g%s of %s", batch.Quantity, batch.Unit, batch.HerbType),
				}
			},
		},
		{
			Kind: domain.StageDistributor,
			Build: func(batch domain.Batch, _ []domain.LedgerEntry) domain.TracePoint {
				date := batch.HarvestDate.Add(2 * 24 * time.Hour)
				if batch.VerificationDate != nil {
					date = *batch.VerificationDate
				}
				return domain.TracePoint{
					Name:        "Green Valley Distributors",
					Location:    distributionStop,
					Date:        date,
					Description: "Quality verification and lab testing completed",
				}
			},
		},
		{
			Kind: domain.StageRetailer,
			Build: func(batch domain.Batch, _ []domain.LedgerEntry) domain.TracePoint {
				return domain.TracePoint{
					Name:        "Ayurvedic Health Store",
					Location:    retailStop,
					Date:        batch.HarvestDate.Add(5 * 24 * time.Hour),
					Description: "Ready for consumer purchase",
				}
			},
		},
	}
}
