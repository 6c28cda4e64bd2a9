package ports

import "context"

// LedgerAnchorer records an action description on an external ledger and
// returns an opaque reference string. The core stores the reference verbatim
// and never validates its format beyond non-emptiness. The shipped
// implementation is a simulator; a real append-only log or distributed
// ledger client can be swapped in without touching the services.
type LedgerAnchorer interface {
	Anchor(ctx context.Context, action string) (string, error)
}
