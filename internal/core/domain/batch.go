package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus indicates the lifecycle state of a harvest batch.
type BatchStatus string

const (
	BatchPending  BatchStatus = "pending"
	BatchVerified BatchStatus = "verified"
	BatchRejected BatchStatus = "rejected"
)

// IsTerminal reports whether no further status transition is allowed.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchVerified || s == BatchRejected
}

// IsValid reports whether the value is one of the known statuses.
func (s BatchStatus) IsValid() bool {
	return s == BatchPending || s == BatchVerified || s == BatchRejected
}

// QuantityUnit is the unit a harvest quantity is measured in.
type QuantityUnit string

const (
	UnitKg     QuantityUnit = "kg"
	UnitTons   QuantityUnit = "tons"
	UnitPounds QuantityUnit = "pounds"
)

// PaymentStatus mirrors the settlement state attached to a batch.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// HerbTypes is the known set of registrable herb categories.
var HerbTypes = []string{
	"Tulsi (Holy Basil)",
	"Ashwagandha",
	"Turmeric",
	"Neem",
	"Aloe Vera",
	"Brahmi",
	"Shankhpushpi",
	"Giloy",
	"Amla",
	"Arjuna",
}

// IsKnownHerbType reports whether the given herb type is registrable.
func IsKnownHerbType(herbType string) bool {
	for _, t := range HerbTypes {
		if t == herbType {
			return true
		}
	}
	return false
}

// Batch represents one registered harvest lot. The BatchID is generated at
// creation time (AYUR-YYYYMMDD-NNN) and immutable thereafter. A batch is
// never deleted, only transitioned: pending is the sole initial state,
// verified and rejected are terminal.
type Batch struct {
	BatchID     string       `json:"batchID"` // Primary Key, e.g. AYUR-20240118-042
	FarmerID    string       `json:"farmerID"`
	FarmerName  string       `json:"farmerName"`
	HerbType    string       `json:"herbType"`
	Quantity    float64      `json:"quantity"` // Positive
	Unit        QuantityUnit `json:"unit"`
	HarvestDate time.Time    `json:"harvestDate"` // Never in the future
	Location    *Location    `json:"location,omitempty"`
	Photo       string       `json:"photo,omitempty"` // Opaque reference supplied by the caller
	Notes       string       `json:"notes,omitempty"`
	Status      BatchStatus  `json:"status"`

	// Populated only after verification / rejection.
	VerifiedBy       string           `json:"verifiedBy,omitempty"`
	VerificationDate *time.Time       `json:"verificationDate,omitempty"`
	LabReport        string           `json:"labReport,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unitPrice,omitempty"`

	// AnchorRef is the opaque ledger-anchor reference recorded at creation.
	// Stored verbatim; never validated beyond non-emptiness.
	AnchorRef     string        `json:"anchorRef"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	AuditFields
}
