package dto

import (
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// TracePointResponse defines one stop in a batch's custody chain.
type TracePointResponse struct {
	Sequence    int             `json:"sequence"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Location    domain.Location `json:"location"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// TraceResponse is the full custody chain projection for a batch.
type TraceResponse struct {
	Batch  BatchResponse        `json:"batch"`
	Points []TracePointResponse `json:"points"`
}

// ToTraceResponse converts a batch and its trace points to TraceResponse DTO
func ToTraceResponse(batch *domain.Batch, points []domain.TracePoint) TraceResponse {
	res := make([]TracePointResponse, len(points))
	for i, p := range points {
		res[i] = TracePointResponse{
			Sequence:    p.Sequence,
			Kind:        string(p.Kind),
			Name:        p.Name,
			Location:    p.Location,
			Date:        p.Date,
			Description: p.Description,
		}
	}
	return TraceResponse{
		Batch:  ToBatchResponse(batch),
		Points: res,
	}
}
