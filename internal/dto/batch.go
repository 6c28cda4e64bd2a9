package dto

import (
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LocationRequest is a fully resolved location supplied by the caller
// (manual map pick or device GPS reading).
type LocationRequest struct {
	Lat     float64 `json:"lat" binding:"min=-90,max=90"`
	Lng     float64 `json:"lng" binding:"min=-180,max=180"`
	Address string  `json:"address"`
}

// CoordinatesRequest is a bare coordinate pair extracted from a photo
// geotag. The registry synthesizes an address for it when used.
type CoordinatesRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// RegisterBatchRequest defines the data needed to register a harvest batch.
// At least one of Location or ExifLocation must be present; Location wins
// when both are.
type RegisterBatchRequest struct {
	HerbType     string              `json:"herbType" binding:"required,herbtype"`
	Quantity     float64             `json:"quantity" binding:"required,gt=0"`
	Unit         string              `json:"unit" binding:"required,oneof=kg tons pounds"`
	HarvestDate  string              `json:"harvestDate" binding:"required,datetime=2006-01-02"`
	Location     *LocationRequest    `json:"location,omitempty"`
	ExifLocation *CoordinatesRequest `json:"exifLocation,omitempty"`
	Photo        string              `json:"photo,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	UnitPrice    *decimal.Decimal    `json:"unitPrice,omitempty"`
}

// TransitionBatchRequest defines the data needed to verify or reject a
// pending batch. Reason is required when Status is rejected.
type TransitionBatchRequest struct {
	Status    string           `json:"status" binding:"required,oneof=verified rejected"`
	Reason    string           `json:"reason,omitempty"`
	LabReport string           `json:"labReport,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// TransferBatchRequest defines the data needed to record a custody handoff.
type TransferBatchRequest struct {
	RecipientName string `json:"recipientName" binding:"required"`
	RecipientRole string `json:"recipientRole" binding:"required,oneof=distributor retailer consumer"`
}

// AttachLabReportRequest carries a free-text lab summary for a verified batch.
type AttachLabReportRequest struct {
	Summary string `json:"summary" binding:"required"`
}

// BatchResponse defines the data returned for a batch.
type BatchResponse struct {
	BatchID          string           `json:"batchID"`
	FarmerID         string           `json:"farmerID"`
	FarmerName       string           `json:"farmerName"`
	HerbType         string           `json:"herbType"`
	Quantity         float64          `json:"quantity"`
	Unit             string           `json:"unit"`
	HarvestDate      time.Time        `json:"harvestDate"`
	Location         *domain.Location `json:"location,omitempty"`
	Photo            string           `json:"photo,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Status           string           `json:"status"`
	VerifiedBy       string           `json:"verifiedBy,omitempty"`
	VerificationDate *time.Time       `json:"verificationDate,omitempty"`
	LabReport        string           `json:"labReport,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unitPrice,omitempty"`
	AnchorRef        string           `json:"anchorRef"`
	PaymentStatus    string           `json:"paymentStatus"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ToBatchResponse converts a domain.Batch to BatchResponse DTO
func ToBatchResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:          b.BatchID,
		FarmerID:         b.FarmerID,
		FarmerName:       b.FarmerName,
		HerbType:         b.HerbType,
		Quantity:         b.Quantity,
		Unit:             string(b.Unit),
		HarvestDate:      b.HarvestDate,
		Location:         b.Location,
		Photo:            b.Photo,
		Notes:            b.Notes,
		Status:           string(b.Status),
		VerifiedBy:       b.VerifiedBy,
		VerificationDate: b.VerificationDate,
		LabReport:        b.LabReport,
		RejectionReason:  b.RejectionReason,
		UnitPrice:        b.UnitPrice,
		AnchorRef:        b.AnchorRef,
		PaymentStatus:    string(b.PaymentStatus),
		CreatedAt:        b.CreatedAt,
	}
}

// ListBatchesResponse wraps the list of batches.
type ListBatchesResponse struct {
	Batches []BatchResponse `json:"batches"`
}

// ToListBatchesResponse converts a slice of domain.Batch to ListBatchesResponse DTO
func ToListBatchesResponse(batches []domain.Batch) ListBatchesResponse {
	res := make([]BatchResponse, len(batches))
	for i, b := range batches {
		res[i] = ToBatchResponse(&b)
	}
	return ListBatchesResponse{Batches: res}
}
