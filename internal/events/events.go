// Package events publishes committed ledger mutations to downstream
// consumers. Delivery is best-effort: the store is the source of truth and a
// dropped event never rolls back a commit.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"ledgerd/pkg/domain"
)

type Type string

const (
	TypeMinted               Type = "minted"
	TypeBurned               Type = "burned"
	TypeTransferred          Type = "transferred"
	TypeRecovered            Type = "recovered"
	TypeSystemAccountAdded   Type = "system_account_added"
	TypeSystemAccountRemoved Type = "system_account_removed"
	TypeValidatorChanged     Type = "validator_changed"
	TypeAddressBanned        Type = "address_banned"
	TypeAddressUnbanned      Type = "address_unbanned"
	TypeOwnershipTransferred Type = "ownership_transferred"
)

// Event describes one committed mutation.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	Caller    domain.Address  `json:"caller"`
	From      *domain.Address `json:"from,omitempty"`
	To        *domain.Address `json:"to,omitempty"`
	Address   *domain.Address `json:"address,omitempty"`
	Amount    string          `json:"amount,omitempty"`
	Validator string          `json:"validator,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
}

// New stamps an event with a fresh ID and the current time.
func New(t Type, caller domain.Address) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		Caller:    caller,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) WithFrom(addr domain.Address) Event {
	e.From = &addr
	return e
}

func (e Event) WithTo(addr domain.Address) Event {
	e.To = &addr
	return e
}

func (e Event) WithAddress(addr domain.Address) Event {
	e.Address = &addr
	return e
}

func (e Event) WithAmount(v *uint256.Int) Event {
	e.Amount = domain.FormatAmount(v)
	return e
}

// Key is the partitioning key: the account whose state the event changes.
func (e Event) Key() []byte {
	switch {
	case e.To != nil:
		return e.To.Bytes()
	case e.From != nil:
		return e.From.Bytes()
	case e.Address != nil:
		return e.Address.Bytes()
	default:
		return e.Caller.Bytes()
	}
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Sink delivers batches of events. Implementations must be safe to call from
// a single dispatcher goroutine; they need not be safe for concurrent use.
type Sink interface {
	Publish(ctx context.Context, batch []Event) error
	Close() error
}

// Publisher accepts events from the controller without blocking.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}
