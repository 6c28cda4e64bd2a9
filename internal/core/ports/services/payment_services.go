package services

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByBatchID retrieves the payment tied to a batch.
	GetPaymentByBatchID(ctx context.Context, batchID string) (*domain.Payment, error)

	// ListPayments retrieves all payments, newest first.
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreateForBatch opens the settlement record for a batch. At most one
	// payment may exist per batch; a second call returns
	// apperrors.ErrDuplicate.
	CreateForBatch(ctx context.Context, batchID string, amount decimal.Decimal, currency string, creatorUserID string) (*domain.Payment, error)

	// MarkPaid settles a payment. The underlying batch must be verified.
	MarkPaid(ctx context.Context, paymentID string, actorUserID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
