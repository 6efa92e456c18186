// Package compliance decides whether an address may send tokens. Validators
// are swappable at runtime; their state round-trips through Config so the
// store can persist whichever variant is active.
package compliance

import (
	"slices"
	"strings"
	"sync"

	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

type Kind string

const (
	KindBlacklist Kind = "blacklist"
	KindAllowAll  Kind = "allow_all"
)

// ParseKind accepts the wire names of the validator variants.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBlacklist, KindAllowAll:
		return k, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown validator kind %q", s)
	}
}

// Validator approves or denies an address.
type Validator interface {
	Approve(addr domain.Address) bool
	Kind() Kind
	Config() Config
}

// Config is the persisted form of a validator.
type Config struct {
	Kind   Kind             `json:"kind"`
	Banned []domain.Address `json:"banned,omitempty"`
}

// FromConfig rebuilds a validator. A blank kind means the default blacklist.
func FromConfig(cfg Config) (Validator, error) {
	switch cfg.Kind {
	case KindBlacklist, "":
		return NewBlacklist(cfg.Banned...), nil
	case KindAllowAll:
		if len(cfg.Banned) > 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "allow_all validator cannot carry banned addresses")
		}
		return AllowAll{}, nil
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown validator kind %q", cfg.Kind)
	}
}

// Blacklist denies a set of banned addresses and approves everyone else.
type Blacklist struct {
	mu     sync.RWMutex
	banned map[domain.Address]struct{}
}

func NewBlacklist(banned ...domain.Address) *Blacklist {
	b := &Blacklist{banned: make(map[domain.Address]struct{}, len(banned))}
	for _, addr := range banned {
		b.banned[addr] = struct{}{}
	}
	return b
}

func (b *Blacklist) Approve(addr domain.Address) bool {
	return !b.IsBanned(addr)
}

func (b *Blacklist) Kind() Kind { return KindBlacklist }

func (b *Blacklist) Config() Config {
	return Config{Kind: KindBlacklist, Banned: b.Banned()}
}

// Ban adds addr and reports whether it was newly banned.
func (b *Blacklist) Ban(addr domain.Address) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.banned[addr]; ok {
		return false
	}
	b.banned[addr] = struct{}{}
	return true
}

// Unban removes addr and reports whether it had been banned.
func (b *Blacklist) Unban(addr domain.Address) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.banned[addr]; !ok {
		return false
	}
	delete(b.banned, addr)
	return true
}

func (b *Blacklist) IsBanned(addr domain.Address) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.banned[addr]
	return ok
}

// Banned lists banned addresses in address order.
func (b *Blacklist) Banned() []domain.Address {
	b.mu.RLock()
	out := make([]domain.Address, 0, len(b.banned))
	for addr := range b.banned {
		out = append(out, addr)
	}
	b.mu.RUnlock()
	domain.SortAddresses(out)
	return out
}

// AllowAll approves every address.
type AllowAll struct{}

func (AllowAll) Approve(domain.Address) bool { return true }
func (AllowAll) Kind() Kind                   { return KindAllowAll }
func (AllowAll) Config() Config               { return Config{Kind: KindAllowAll} }

// Equal reports whether two configs describe the same validator.
func (c Config) Equal(other Config) bool {
	if c.normalizedKind() != other.normalizedKind() {
		return false
	}
	a := slices.Clone(c.Banned)
	b := slices.Clone(other.Banned)
	domain.SortAddresses(a)
	domain.SortAddresses(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

func (c Config) normalizedKind() Kind {
	if c.Kind == "" {
		return KindBlacklist
	}
	return c.Kind
}
