package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive = fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	ErrBatchNotVerified  = fmt.Errorf("%w: payment requires a verified batch", apperrors.ErrInvalidStatus)
)

type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	batchRepo   portsrepo.BatchRepositoryFacade
}

// NewPaymentService creates the settlement tracking service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, batchRepo portsrepo.BatchRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo, batchRepo: batchRepo}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreateForBatch opens the settlement record for a batch. Payments are
// one-to-one with batches; a second create returns ErrDuplicate.
func (s *paymentService) CreateForBatch(ctx context.Context, batchID string, amount decimal.Decimal, currency string, creatorUserID string) (*domain.Payment, error) {
	if batchID == "" {
		return nil, fmt.Errorf("%w: batch id is required", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID: "PAY-" + uuid.NewString(),
		BatchID:   batchID,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.PaymentPending,
		Date:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment for batch %s: %w", batchID, err)
	}
	return &payment, nil
}

// MarkPaid settles a payment. The underlying batch must be verified; the
// batch's own payment status is advanced in step.
func (s *paymentService) MarkPaid(ctx context.Context, paymentID string, actorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment %s: %w", paymentID, err)
	}
	if payment.Status == domain.PaymentPaid {
		return payment, nil
	}

	batch, err := s.batchRepo.FindBatchByID(ctx, payment.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s for payment: %w", payment.BatchID, err)
	}
	if batch.Status != domain.BatchVerified {
		return nil, ErrBatchNotVerified
	}

	now := time.Now().UTC()
	payment.Status = domain.PaymentPaid
	payment.Date = now
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actorUserID
	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}

	batch.PaymentStatus = domain.PaymentPaid
	batch.LastUpdatedAt = now
	batch.LastUpdatedBy = actorUserID
	if err := s.batchRepo.UpdateBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to update batch %s payment status: %w", batch.BatchID, err)
	}

	logger.Info("Payment settled",
		slog.String("payment_id", paymentID),
		slog.String("batch_id", payment.BatchID))
	return payment, nil
}

// GetPaymentByBatchID retrieves the payment tied to a batch.
func (s *paymentService) GetPaymentByBatchID(ctx context.Context, batchID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment for batch %s: %w", batchID, err)
	}
	return payment, nil
}

// ListPayments retrieves all payments, newest first.
func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
