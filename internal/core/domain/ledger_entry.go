package domain

import "time"

// Well known ledger action labels. The action field is free text; these are
// the labels the core itself writes.
const (
	ActionBatchCreated  = "Batch Created"
	ActionBatchVerified = "Batch Verified"
	ActionBatchRejected = "Batch Rejected"
)

// LedgerCounterparty is the "to" party recorded for anchor-only events.
const LedgerCounterparty = "Blockchain"

// LedgerEntry is one immutable event recorded against a batch. Once created
// it is never mutated or deleted; entries for a batch are ordered by
// timestamp ascending.
type LedgerEntry struct {
	EntryID   string    `json:"entryID"` // Primary Key, e.g. TX-<uuid>
	BatchID   string    `json:"batchID"` // FK -> Batch.batchID
	From      string    `json:"from"`    // Acting party display name
	To        string    `json:"to"`      // Counterparty display name
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	AnchorRef string    `json:"anchorRef"`
}
