// Package anchor provides ledger-anchor implementations. The simulated
// anchorer stands in for a real blockchain client: it returns opaque
// 0x-prefixed hex references with no cryptographic properties.
package anchor

import (
	"context"
	"fmt"

	"github.com/AyurTrace/herb_trace_app/internal/core/ports"
	"github.com/AyurTrace/herb_trace_app/internal/utils"
)

type simulatedAnchorer struct{}

// NewSimulatedAnchorer creates a LedgerAnchorer that fabricates references
// locally instead of anchoring anything.
func NewSimulatedAnchorer() ports.LedgerAnchorer {
	return &simulatedAnchorer{}
}

// Anchor returns a 0x-prefixed 32-hex-character reference. The action
// description is accepted for interface compatibility but not recorded
// anywhere.
func (a *simulatedAnchorer) Anchor(ctx context.Context, action string) (string, error) {
	if action == "" {
		return "", fmt.Errorf("action description is required")
	}
	ref, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate anchor reference: %w", err)
	}
	return "0x" + ref, nil
}
