package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents the monetary settlement tied to a batch, one-to-one.
type Payment struct {
	PaymentID string          `json:"paymentID"` // Primary Key, e.g. PAY-<uuid>
	BatchID   string          `json:"batchID"`   // FK -> Batch.batchID, unique
	Amount    decimal.Decimal `json:"amount"`    // Positive
	Currency  string          `json:"currency"`  // ISO code, e.g. INR
	Status    PaymentStatus   `json:"status"`
	Date      time.Time       `json:"date"`
	AuditFields
}
