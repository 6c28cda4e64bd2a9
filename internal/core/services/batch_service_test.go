package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/core/services"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
)

// --- Mock BatchRepository ---
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	var batch *domain.Batch
	if args.Get(0) != nil {
		batch = args.Get(0).(*domain.Batch)
	}
	return batch, args.Error(1)
}

func (m *MockBatchRepository) ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error) {
	args := m.Called(ctx, farmerID)
	var batches []domain.Batch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.Batch)
	}
	return batches, args.Error(1)
}

func (m *MockBatchRepository) ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	args := m.Called(ctx, status)
	var batches []domain.Batch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.Batch)
	}
	return batches, args.Error(1)
}

// --- Mock LedgerWriterSvc ---
type MockLedgerWriter struct {
	mock.Mock
}

func (m *MockLedgerWriter) RecordEvent(ctx context.Context, batchID, from, to, action, anchorRef string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, batchID, from, to, action, anchorRef)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

// --- Mock PaymentWriterSvc ---
type MockPaymentWriter struct {
	mock.Mock
}

func (m *MockPaymentWriter) CreateForBatch(ctx context.Context, batchID string, amount decimal.Decimal, currency string, creatorUserID string) (*domain.Payment, error) {
	args := m.Called(ctx, batchID, amount, currency, creatorUserID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentWriter) MarkPaid(ctx context.Context, paymentID string, actorUserID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, actorUserID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

// --- Mock LedgerAnchorer ---
type MockAnchorer struct {
	mock.Mock
}

func (m *MockAnchorer) Anchor(ctx context.Context, action string) (string, error) {
	args := m.Called(ctx, action)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type BatchServiceTestSuite struct {
	suite.Suite
	mockBatchRepo *MockBatchRepository
	mockLedger    *MockLedgerWriter
	mockPayment   *MockPaymentWriter
	mockAnchorer  *MockAnchorer
	service       portssvc.BatchSvcFacade

	farmer      domain.User
	distributor domain.User
}

func (suite *BatchServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.mockLedger = new(MockLedgerWriter)
	suite.mockPayment = new(MockPaymentWriter)
	suite.mockAnchorer = new(MockAnchorer)
	suite.service = services.NewBatchService(
		suite.mockBatchRepo,
		suite.mockLedger,
		suite.mockPayment,
		suite.mockAnchorer,
		"AYUR",
		"INR",
	)
	suite.farmer = domain.User{UserID: "USR-001", Name: "Raj Kumar", Role: domain.RoleFarmer}
	suite.distributor = domain.User{UserID: "USR-002", Name: "Priya Sharma", Role: domain.RoleDistributor}
}

func validRegisterRequest() dto.RegisterBatchRequest {
	return dto.RegisterBatchRequest{
		HerbType:    "Turmeric",
		Quantity:    40,
		Unit:        "kg",
		HarvestDate: "2024-01-18",
		Location:    &dto.LocationRequest{Lat: 10.8505, Lng: 76.2711, Address: "Kerala, India"},
	}
}

// --- RegisterBatch Tests ---

func (suite *BatchServiceTestSuite) TestRegisterBatch_Success() {
	ctx := context.Background()
	req := validRegisterRequest()
	anchorRef := "0x4a8b12cd34ef56ab78cd90ef12ab34cd"

	suite.mockAnchorer.On("Anchor", ctx, domain.ActionBatchCreated).Return(anchorRef, nil).Once()
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.MatchedBy(func(b domain.Batch) bool {
		return b.HerbType == "Turmeric" && b.Status == domain.BatchPending && b.FarmerID == suite.farmer.UserID
	})).Return(nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, mock.AnythingOfType("string"), suite.farmer.Name, domain.LedgerCounterparty, domain.ActionBatchCreated, anchorRef).
		Return(&domain.LedgerEntry{EntryID: "TX-1"}, nil).Once()
	suite.mockPayment.On("CreateForBatch", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("decimal.Decimal"), "INR", suite.farmer.UserID).
		Return(&domain.Payment{PaymentID: "PAY-1"}, nil).Once()

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().NoError(err)
	suite.Require().NotNil(batch)
	suite.Regexp(regexp.MustCompile(`^AYUR-20240118-\d{3}$`), batch.BatchID)
	suite.Equal(domain.BatchPending, batch.Status)
	suite.Equal(domain.PaymentPending, batch.PaymentStatus)
	suite.Equal(anchorRef, batch.AnchorRef)
	suite.Equal(suite.farmer.Name, batch.FarmerName)
	suite.Require().NotNil(batch.UnitPrice)
	suite.True(batch.UnitPrice.GreaterThanOrEqual(decimal.NewFromInt(500)))
	suite.True(batch.UnitPrice.LessThan(decimal.NewFromInt(1500)))

	suite.mockBatchRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockPayment.AssertExpectations(suite.T())
	suite.mockAnchorer.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_ExifFallbackLocation() {
	ctx := context.Background()
	req := validRegisterRequest()
	req.Location = nil
	req.ExifLocation = &dto.CoordinatesRequest{Lat: 10.8505, Lng: 76.2711}

	suite.mockAnchorer.On("Anchor", ctx, domain.ActionBatchCreated).Return("0xabc", nil).Once()
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.Batch")).Return(nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.LedgerEntry{}, nil).Once()
	suite.mockPayment.On("CreateForBatch", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Payment{}, nil).Once()

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().NoError(err)
	suite.Require().NotNil(batch.Location)
	suite.Equal("Farm Location, 10.8505, 76.2711", batch.Location.Address)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_NonFarmerForbidden() {
	ctx := context.Background()
	req := validRegisterRequest()

	batch, err := suite.service.RegisterBatch(ctx, req, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_UnknownHerbType() {
	ctx := context.Background()
	req := validRegisterRequest()
	req.HerbType = "Lavender"

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_FutureHarvestDate() {
	ctx := context.Background()
	req := validRegisterRequest()
	req.HarvestDate = time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_MissingLocation() {
	ctx := context.Background()
	req := validRegisterRequest()
	req.Location = nil
	req.ExifLocation = nil

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Nothing may be written when validation fails
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAnchorer.AssertNotCalled(suite.T(), "Anchor", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_NonPositiveUnitPrice() {
	ctx := context.Background()
	req := validRegisterRequest()
	price := decimal.NewFromInt(-5)
	req.UnitPrice = &price

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// A rejected submission leaves no batch, ledger entry or payment behind
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPayment.AssertNotCalled(suite.T(), "CreateForBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAnchorer.AssertNotCalled(suite.T(), "Anchor", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestRegisterBatch_RetriesOnDuplicateID() {
	ctx := context.Background()
	req := validRegisterRequest()

	suite.mockAnchorer.On("Anchor", ctx, domain.ActionBatchCreated).Return("0xabc", nil).Once()
	// First save collides on the random suffix, second succeeds
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.Batch")).Return(apperrors.ErrDuplicate).Once()
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.Batch")).Return(nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.LedgerEntry{}, nil).Once()
	suite.mockPayment.On("CreateForBatch", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Payment{}, nil).Once()

	batch, err := suite.service.RegisterBatch(ctx, req, suite.farmer)

	suite.Require().NoError(err)
	suite.Require().NotNil(batch)
	suite.mockBatchRepo.AssertNumberOfCalls(suite.T(), "SaveBatch", 2)
}

// --- GetBatchByID Tests ---

func (suite *BatchServiceTestSuite) TestGetBatchByID_NotFound() {
	ctx := context.Background()
	batchID := "AYUR-20240101-999"

	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(nil, apperrors.ErrNotFound).Once()

	batch, err := suite.service.GetBatchByID(ctx, batchID)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestGetBatchByID_MalformedID() {
	ctx := context.Background()

	batch, err := suite.service.GetBatchByID(ctx, "not-a-batch-id")

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "FindBatchByID", mock.Anything, mock.Anything)
}

// --- TransitionBatch Tests ---

func pendingBatch() *domain.Batch {
	return &domain.Batch{
		BatchID:       "AYUR-20240120-002",
		FarmerID:      "USR-001",
		FarmerName:    "Raj Kumar",
		HerbType:      "Ashwagandha",
		Quantity:      25,
		Unit:          domain.UnitKg,
		HarvestDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Status:        domain.BatchPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_VerifySuccess() {
	ctx := context.Background()
	batch := pendingBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockAnchorer.On("Anchor", ctx, domain.ActionBatchVerified).Return("0xdef", nil).Once()
	suite.mockBatchRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(b domain.Batch) bool {
		return b.Status == domain.BatchVerified && b.VerifiedBy == suite.distributor.Name && b.VerificationDate != nil
	})).Return(nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, batch.BatchID, suite.distributor.Name, domain.LedgerCounterparty, domain.ActionBatchVerified, "0xdef").
		Return(&domain.LedgerEntry{}, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "verified", LabReport: "Grade A"}, suite.distributor)

	suite.Require().NoError(err)
	suite.Equal(domain.BatchVerified, updated.Status)
	suite.Equal("Grade A", updated.LabReport)
	suite.mockBatchRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_RejectStoresReason() {
	ctx := context.Background()
	batch := pendingBatch()
	reason := "Quality does not meet grade A standards"

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockAnchorer.On("Anchor", ctx, domain.ActionBatchRejected).Return("0xdef", nil).Once()
	suite.mockBatchRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(b domain.Batch) bool {
		return b.Status == domain.BatchRejected && b.RejectionReason == reason
	})).Return(nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, batch.BatchID, suite.distributor.Name, domain.LedgerCounterparty, domain.ActionBatchRejected, "0xdef").
		Return(&domain.LedgerEntry{}, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "rejected", Reason: reason}, suite.distributor)

	suite.Require().NoError(err)
	suite.Equal(domain.BatchRejected, updated.Status)
	suite.Equal(reason, updated.RejectionReason)
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_RejectRequiresReason() {
	ctx := context.Background()
	batch := pendingBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "rejected"}, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_UnknownTargetStatus() {
	ctx := context.Background()
	batch := pendingBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "shipped"}, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Arbitrary statuses must never reach the store or the ledger
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_NonPositiveUnitPrice() {
	ctx := context.Background()
	batch := pendingBatch()
	price := decimal.Zero

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "verified", UnitPrice: &price}, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_TerminalBatch() {
	ctx := context.Background()
	batch := pendingBatch()
	batch.Status = domain.BatchVerified

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()

	updated, err := suite.service.TransitionBatch(ctx, batch.BatchID, dto.TransitionBatchRequest{Status: "rejected", Reason: "late"}, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidStatus)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestTransitionBatch_NonDistributorForbidden() {
	ctx := context.Background()

	updated, err := suite.service.TransitionBatch(ctx, "AYUR-20240120-002", dto.TransitionBatchRequest{Status: "verified"}, suite.farmer)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- AttachLabReport Tests ---

func (suite *BatchServiceTestSuite) TestAttachLabReport_PendingBatchRejected() {
	ctx := context.Background()
	batch := pendingBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()

	updated, err := suite.service.AttachLabReport(ctx, batch.BatchID, "Moisture 8%", suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestAttachLabReport_Success() {
	ctx := context.Background()
	batch := pendingBatch()
	batch.Status = domain.BatchVerified

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockBatchRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(b domain.Batch) bool {
		return b.LabReport == "Moisture 8%"
	})).Return(nil).Once()

	updated, err := suite.service.AttachLabReport(ctx, batch.BatchID, "Moisture 8%", suite.distributor)

	suite.Require().NoError(err)
	suite.Equal("Moisture 8%", updated.LabReport)
}

// --- TransferBatch Tests ---

func (suite *BatchServiceTestSuite) TestTransferBatch_RecordsLedgerOnly() {
	ctx := context.Background()
	batch := pendingBatch()
	batch.Status = domain.BatchVerified

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockAnchorer.On("Anchor", ctx, "Transferred to Retailer").Return("0x123", nil).Once()
	suite.mockLedger.On("RecordEvent", ctx, batch.BatchID, suite.distributor.Name, "Ayurvedic Health Store", "Transferred to Retailer", "0x123").
		Return(&domain.LedgerEntry{}, nil).Once()

	updated, err := suite.service.TransferBatch(ctx, batch.BatchID, dto.TransferBatchRequest{RecipientName: "Ayurvedic Health Store", RecipientRole: "retailer"}, suite.distributor)

	suite.Require().NoError(err)
	// Custody handoffs never change the batch status
	suite.Equal(domain.BatchVerified, updated.Status)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestTransferBatch_AnchorFailure() {
	ctx := context.Background()
	batch := pendingBatch()

	suite.mockBatchRepo.On("FindBatchByID", ctx, batch.BatchID).Return(batch, nil).Once()
	suite.mockAnchorer.On("Anchor", ctx, "Transferred to Consumer").Return("", assert.AnError).Once()

	updated, err := suite.service.TransferBatch(ctx, batch.BatchID, dto.TransferBatchRequest{RecipientName: "Amit Singh", RecipientRole: "consumer"}, suite.distributor)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BatchServiceTestSuite))
}
