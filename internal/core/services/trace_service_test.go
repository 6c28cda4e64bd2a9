package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/core/services"
)

type TraceServiceTestSuite struct {
	suite.Suite
	mockBatchRepo  *MockBatchRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.TraceSvc
}

func (suite *TraceServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewTraceService(suite.mockBatchRepo, suite.mockLedgerRepo, services.DefaultTraceStages())
}

func tracedBatch() *domain.Batch {
	return &domain.Batch{
		BatchID:     "AYUR-20240115-001",
		FarmerID:    "USR-001",
		FarmerName:  "Raj Kumar",
		HerbType:    "Tulsi (Holy Basil)",
		Quantity:    25,
		Unit:        domain.UnitKg,
		HarvestDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Location:    &domain.Location{Lat: 10.85, Lng: 76.27, Address: "Kerala, India"},
		Status:      domain.BatchVerified,
	}
}

func (suite *TraceServiceTestSuite) TestTraceBatch_ThreeStagesInOrder() {
	ctx := context.Background()
	batch := tracedBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesForBatch", ctx, batch.BatchID).Return([]domain.LedgerEntry{}, nil).Once()

	traced, points, err := suite.service.TraceBatch(ctx, batch.BatchID)

	suite.Require().NoError(err)
	suite.Equal(batch.BatchID, traced.BatchID)
	suite.Require().Len(points, 3)

	suite.Equal(domain.StageFarm, points[0].Kind)
	suite.Equal("Raj Kumar", points[0].Name)
	suite.Equal(batch.HarvestDate, points[0].Date)
	suite.Equal("Kerala, India", points[0].Location.Address)

	suite.Equal(domain.StageDistributor, points[1].Kind)
	suite.Equal("Green Valley Distributors", points[1].Name)

	suite.Equal(domain.StageRetailer, points[2].Kind)
	suite.Equal("Ayurvedic Health Store", points[2].Name)

	// Sequence numbers and timestamps both increase monotonically
	for i := range points {
		suite.Equal(i+1, points[i].Sequence)
		if i > 0 {
			suite.True(points[i].Date.After(points[i-1].Date))
		}
	}
}

func (suite *TraceServiceTestSuite) TestTraceBatch_UsesVerificationDateWhenPresent() {
	ctx := context.Background()
	batch := tracedBatch()
	verified := time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC)
	batch.VerificationDate = &verified

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesForBatch", ctx, batch.BatchID).Return([]domain.LedgerEntry{}, nil).Once()

	_, points, err := suite.service.TraceBatch(ctx, batch.BatchID)

	suite.Require().NoError(err)
	suite.Require().Len(points, 3)
	suite.Equal(verified, points[1].Date)
}

func (suite *TraceServiceTestSuite) TestTraceBatch_PendingBatchStillTraces() {
	ctx := context.Background()
	batch := tracedBatch()
	batch.Status = domain.BatchPending

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesForBatch", ctx, batch.BatchID).Return([]domain.LedgerEntry{}, nil).Once()

	_, points, err := suite.service.TraceBatch(ctx, batch.BatchID)

	suite.Require().NoError(err)
	// The projected downstream stops appear regardless of batch status
	suite.Len(points, 3)
	suite.Equal(batch.HarvestDate.Add(2*24*time.Hour), points[1].Date)
	suite.Equal(batch.HarvestDate.Add(5*24*time.Hour), points[2].Date)
}

func (suite *TraceServiceTestSuite) TestTraceBatch_UnknownBatch() {
	ctx := context.Background()

	suite.mockBatchRepo.On("FindBatchByID", ctx, "AYUR-20240101-999").Return(nil, apperrors.ErrNotFound).Once()

	batch, points, err := suite.service.TraceBatch(ctx, "AYUR-20240101-999")

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.Nil(points)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTraceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TraceServiceTestSuite))
}
