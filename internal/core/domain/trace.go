package domain

import "time"

// TraceStageKind tags one stop in a batch's custody chain. It selects
// display iconography and fixes the ordering of the chain.
type TraceStageKind string

const (
	StageFarm        TraceStageKind = "farm"
	StageDistributor TraceStageKind = "distributor"
	StageRetailer    TraceStageKind = "retailer"
)

// TracePoint is one derived stop in a batch's custody chain. Trace points
// are ephemeral: always rebuilt from a Batch and its LedgerEntries, never
// stored independently.
type TracePoint struct {
	Sequence    int            `json:"sequence"`
	Kind        TraceStageKind `json:"kind"`
	Name        string         `json:"name"`
	Location    Location       `json:"location"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
}
