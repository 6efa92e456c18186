package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and sinks return these
// (optionally wrapped) and the controller translates them into coded domain
// errors:
//   - ErrNotFound: the store holds no ledger state yet
//   - ErrCorrupt: persisted state failed to decode or violates an invariant
//   - ErrUnavailable: backing service temporarily unreachable
//   - ErrClosed: component used after Close
var (
	ErrNotFound    = errors.New("not found")
	ErrCorrupt     = errors.New("corrupt state")
	ErrUnavailable = errors.New("unavailable")
	ErrClosed      = errors.New("closed")
)
