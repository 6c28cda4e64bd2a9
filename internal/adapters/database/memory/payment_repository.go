package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment // keyed by payment id
	byBatch  map[string]string         // batch id -> payment id, enforces one per batch
}

// NewPaymentRepository creates an empty in-memory payment store.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]domain.Payment),
		byBatch:  make(map[string]string),
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PaymentRepository)(nil)

// SavePayment persists a new payment, enforcing one payment per batch.
func (r *PaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[payment.PaymentID]; exists {
		return apperrors.ErrDuplicate
	}
	if _, exists := r.byBatch[payment.BatchID]; exists {
		return apperrors.ErrDuplicate
	}
	r.payments[payment.PaymentID] = payment
	r.byBatch[payment.BatchID] = payment.PaymentID
	return nil
}

// UpdatePayment persists changes to an existing payment.
func (r *PaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[payment.PaymentID]; !exists {
		return apperrors.ErrNotFound
	}
	r.payments[payment.PaymentID] = payment
	return nil
}

// FindPaymentByID retrieves a payment by id.
func (r *PaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, exists := r.payments[paymentID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return &payment, nil
}

// FindPaymentByBatchID retrieves the payment tied to a batch.
func (r *PaymentRepository) FindPaymentByBatchID(ctx context.Context, batchID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paymentID, exists := r.byBatch[batchID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	payment := r.payments[paymentID]
	return &payment, nil
}

// ListPayments retrieves all payments, newest first.
func (r *PaymentRepository) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].PaymentID > result[j].PaymentID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}
