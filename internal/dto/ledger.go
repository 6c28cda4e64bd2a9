package dto

import (
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID   string    `json:"entryID"`
	BatchID   string    `json:"batchID"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	AnchorRef string    `json:"anchorRef"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:   e.EntryID,
		BatchID:   e.BatchID,
		From:      e.From,
		To:        e.To,
		Action:    e.Action,
		Timestamp: e.Timestamp,
		AnchorRef: e.AnchorRef,
	}
}

// ListLedgerEntriesResponse wraps an ordered list of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToListLedgerEntriesResponse converts a slice of domain.LedgerEntry to its DTO
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry) ListLedgerEntriesResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(&e)
	}
	return ListLedgerEntriesResponse{Entries: res}
}
