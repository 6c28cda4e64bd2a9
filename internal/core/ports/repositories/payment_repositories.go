package repositories

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its id.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentByBatchID retrieves the payment tied to a batch, if any.
	FindPaymentByBatchID(ctx context.Context, batchID string) (*domain.Payment, error)

	// ListPayments retrieves all payments, newest first.
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new payment. Returns apperrors.ErrDuplicate if a
	// payment already exists for the same batch.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment persists changes to an existing payment.
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
