package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	"github.com/AyurTrace/herb_trace_app/internal/utils"
	"github.com/shopspring/decimal"
)

const seededBy = "seed"

// Seed loads the demo directory and sample supply chain data. The password
// is the single shared demo credential; it is bcrypt-hashed here so the rest
// of the system never sees a plaintext shortcut.
func Seed(ctx context.Context, repos *portsrepo.RepositoryContainer, demoPassword string) error {
	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     seededBy,
		LastUpdatedAt: now,
		LastUpdatedBy: seededBy,
	}

	users := []domain.User{
		{
			UserID:       "1",
			Name:         "Raj Kumar",
			Email:        "farmer@ayur.com",
			Role:         domain.RoleFarmer,
			Phone:        "+91 98765 43210",
			Verified:     true,
			Badges:       []string{"Verified Farmer", "Consistent Supplier", "Organic Certified"},
			PasswordHash: hash,
			AuditFields:  audit,
		},
		{
			UserID:       "2",
			Name:         "Priya Sharma",
			Email:        "distributor@ayur.com",
			Role:         domain.RoleDistributor,
			Phone:        "+91 87654 32109",
			Verified:     true,
			Badges:       []string{"Certified Distributor", "Quality Assured"},
			PasswordHash: hash,
			AuditFields:  audit,
		},
		{
			UserID:       "3",
			Name:         "Amit Singh",
			Email:        "consumer@ayur.com",
			Role:         domain.RoleConsumer,
			Phone:        "+91 76543 21098",
			Verified:     true,
			PasswordHash: hash,
			AuditFields:  audit,
		},
	}
	for _, u := range users {
		if err := repos.User.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	farmLocation := &domain.Location{Lat: 28.6139, Lng: 77.2090, Address: "Organic Farm, Gurgaon, Haryana"}
	verifiedAt := time.Date(2024, 1, 16, 10, 15, 0, 0, time.UTC)
	price800 := decimal.NewFromInt(800)
	price1200 := decimal.NewFromInt(1200)
	price600 := decimal.NewFromInt(600)

	batches := []domain.Batch{
		{
			BatchID:          "AYUR-20240115-001",
			FarmerID:         "1",
			FarmerName:       "Raj Kumar",
			HerbType:         "Tulsi (Holy Basil)",
			Quantity:         25,
			Unit:             domain.UnitKg,
			HarvestDate:      time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			Location:         farmLocation,
			Status:           domain.BatchVerified,
			VerifiedBy:       "Priya Sharma",
			VerificationDate: &verifiedAt,
			LabReport:        "Quality Grade: A+, Purity: 98.5%",
			UnitPrice:        &price800,
			AnchorRef:        "0x1a2b3c4d5e6f7890abcdef1234567890",
			PaymentStatus:    domain.PaymentPaid,
			AuditFields:      audit,
		},
		{
			BatchID:       "AYUR-20240120-002",
			FarmerID:      "1",
			FarmerName:    "Raj Kumar",
			HerbType:      "Ashwagandha",
			Quantity:      15,
			Unit:          domain.UnitKg,
			HarvestDate:   time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			Location:      farmLocation,
			Status:        domain.BatchPending,
			UnitPrice:     &price1200,
			AnchorRef:     "0x2b3c4d5e6f7890abcdef1234567890ab",
			PaymentStatus: domain.PaymentPending,
			AuditFields:   audit,
		},
		{
			BatchID:         "AYUR-20240118-003",
			FarmerID:        "1",
			FarmerName:      "Raj Kumar",
			HerbType:        "Turmeric",
			Quantity:        40,
			Unit:            domain.UnitKg,
			HarvestDate:     time.Date(2024, 1, 18, 7, 45, 0, 0, time.UTC),
			Location:        farmLocation,
			Status:          domain.BatchRejected,
			RejectionReason: "Quality does not meet grade A standards",
			UnitPrice:       &price600,
			AnchorRef:       "0x3c4d5e6f7890abcdef1234567890abcd",
			PaymentStatus:   domain.PaymentPending,
			AuditFields:     audit,
		},
	}
	for _, b := range batches {
		if err := repos.Batch.SaveBatch(ctx, b); err != nil {
			return fmt.Errorf("failed to seed batch %s: %w", b.BatchID, err)
		}
	}

	entries := []domain.LedgerEntry{
		{
			EntryID:   "TX-001",
			BatchID:   "AYUR-20240115-001",
			From:      "Raj Kumar",
			To:        domain.LedgerCounterparty,
			Action:    domain.ActionBatchCreated,
			Timestamp: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			AnchorRef: "0x1a2b3c4d5e6f7890abcdef1234567890",
		},
		{
			EntryID:   "TX-002",
			BatchID:   "AYUR-20240115-001",
			From:      "Priya Sharma",
			To:        domain.LedgerCounterparty,
			Action:    domain.ActionBatchVerified,
			Timestamp: verifiedAt,
			AnchorRef: "0x2b3c4d5e6f7890abcdef1234567890ab",
		},
	}
	for _, e := range entries {
		if err := repos.Ledger.AppendEntry(ctx, e); err != nil {
			return fmt.Errorf("failed to seed ledger entry %s: %w", e.EntryID, err)
		}
	}

	payments := []domain.Payment{
		{
			PaymentID:   "PAY-001",
			BatchID:     "AYUR-20240115-001",
			Amount:      price800,
			Currency:    "INR",
			Status:      domain.PaymentPaid,
			Date:        time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC),
			AuditFields: audit,
		},
		{
			PaymentID:   "PAY-002",
			BatchID:     "AYUR-20240120-002",
			Amount:      price1200,
			Currency:    "INR",
			Status:      domain.PaymentPending,
			Date:        time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			AuditFields: audit,
		},
	}
	for _, p := range payments {
		if err := repos.Payment.SavePayment(ctx, p); err != nil {
			return fmt.Errorf("failed to seed payment %s: %w", p.PaymentID, err)
		}
	}

	return nil
}
