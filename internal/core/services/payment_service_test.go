package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/core/services"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByBatchID(ctx context.Context, batchID string) (*domain.Payment, error) {
	args := m.Called(ctx, batchID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockBatchRepo   *MockBatchRepository
	service         portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockBatchRepo)
}

// --- CreateForBatch Tests ---

func (suite *PaymentServiceTestSuite) TestCreateForBatch_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(1250)

	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.BatchID == "AYUR-20240118-001" && p.Status == domain.PaymentPending && p.Amount.Equal(amount) && p.Currency == "INR"
	})).Return(nil).Once()

	payment, err := suite.service.CreateForBatch(ctx, "AYUR-20240118-001", amount, "INR", "USR-001")

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal(domain.PaymentPending, payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateForBatch_NonPositiveAmount() {
	ctx := context.Background()

	payment, err := suite.service.CreateForBatch(ctx, "AYUR-20240118-001", decimal.Zero, "INR", "USR-001")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreateForBatch_SecondPaymentRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(900)

	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(apperrors.ErrDuplicate).Once()

	payment, err := suite.service.CreateForBatch(ctx, "AYUR-20240118-001", amount, "INR", "USR-001")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- MarkPaid Tests ---

func (suite *PaymentServiceTestSuite) TestMarkPaid_Success() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID: "PAY-001",
		BatchID:   "AYUR-20240115-001",
		Amount:    decimal.NewFromInt(1800),
		Currency:  "INR",
		Status:    domain.PaymentPending,
	}
	batch := &domain.Batch{
		BatchID:       "AYUR-20240115-001",
		Status:        domain.BatchVerified,
		PaymentStatus: domain.PaymentPending,
		HarvestDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "PAY-001").Return(payment, nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", ctx, "AYUR-20240115-001").Return(batch, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentPaid
	})).Return(nil).Once()
	suite.mockBatchRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(b domain.Batch) bool {
		return b.PaymentStatus == domain.PaymentPaid
	})).Return(nil).Once()

	settled, err := suite.service.MarkPaid(ctx, "PAY-001", "USR-002")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, settled.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestMarkPaid_AlreadyPaidIsIdempotent() {
	ctx := context.Background()
	payment := &domain.Payment{PaymentID: "PAY-001", BatchID: "AYUR-20240115-001", Status: domain.PaymentPaid}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "PAY-001").Return(payment, nil).Once()

	settled, err := suite.service.MarkPaid(ctx, "PAY-001", "USR-002")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, settled.Status)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "UpdateBatch", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestMarkPaid_UnverifiedBatch() {
	ctx := context.Background()
	payment := &domain.Payment{PaymentID: "PAY-002", BatchID: "AYUR-20240120-002", Status: domain.PaymentPending}
	batch := &domain.Batch{BatchID: "AYUR-20240120-002", Status: domain.BatchPending}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "PAY-002").Return(payment, nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", ctx, "AYUR-20240120-002").Return(batch, nil).Once()

	settled, err := suite.service.MarkPaid(ctx, "PAY-002", "USR-002")

	suite.Require().Error(err)
	suite.Nil(settled)
	suite.ErrorIs(err, apperrors.ErrInvalidStatus)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestMarkPaid_PaymentNotFound() {
	ctx := context.Background()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "PAY-999").Return(nil, apperrors.ErrNotFound).Once()

	settled, err := suite.service.MarkPaid(ctx, "PAY-999", "USR-002")

	suite.Require().Error(err)
	suite.Nil(settled)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListPayments Tests ---

func (suite *PaymentServiceTestSuite) TestListPayments_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockPaymentRepo.On("ListPayments", ctx).Return(nil, nil).Once()

	payments, err := suite.service.ListPayments(ctx)

	suite.Require().NoError(err)
	suite.NotNil(payments)
	suite.Empty(payments)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
