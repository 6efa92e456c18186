// Package models holds the persisted shapes of ledger state.
package models

import (
	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/pkg/domain"
)

// Snapshot is the full controller state as loaded at start-up.
type Snapshot struct {
	Balances       map[domain.Address]*uint256.Int
	TotalSupply    *uint256.Int
	Owner          domain.Address
	SystemAccounts []domain.Address
	Validator      compliance.Config
}

// Empty reports whether nothing has been persisted yet.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Owner == domain.ZeroAddress
}

// Commit is the change set of one operation. Stores apply it atomically.
type Commit struct {
	// Balances holds resulting values; a zero value deletes the row.
	Balances    map[domain.Address]*uint256.Int
	TotalSupply *uint256.Int
	Owner       *domain.Address

	AddSystem    []domain.Address
	RemoveSystem []domain.Address

	// Validator replaces the whole validator state when set.
	Validator *compliance.Config
	Ban       []domain.Address
	Unban     []domain.Address
}

// Empty reports whether the commit carries no change.
func (c *Commit) Empty() bool {
	return len(c.Balances) == 0 && c.TotalSupply == nil && c.Owner == nil &&
		len(c.AddSystem) == 0 && len(c.RemoveSystem) == 0 &&
		c.Validator == nil && len(c.Ban) == 0 && len(c.Unban) == 0
}

// Genesis is the first commit for an empty store.
func Genesis(owner domain.Address, system []domain.Address, validator compliance.Config) *Commit {
	return &Commit{
		TotalSupply: new(uint256.Int),
		Owner:       &owner,
		AddSystem:   system,
		Validator:   &validator,
	}
}

// SortedBalanceKeys returns the touched addresses in address order so stores
// write rows in a stable order.
func (c *Commit) SortedBalanceKeys() []domain.Address {
	out := make([]domain.Address, 0, len(c.Balances))
	for addr := range c.Balances {
		out = append(out, addr)
	}
	domain.SortAddresses(out)
	return out
}

// NewSnapshot returns an empty snapshot with initialized collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Balances:    make(map[domain.Address]*uint256.Int),
		TotalSupply: new(uint256.Int),
		Validator:   compliance.Config{Kind: compliance.KindBlacklist},
	}
}

// Clone deep-copies the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	for addr, v := range s.Balances {
		out.Balances[addr] = v.Clone()
	}
	if s.TotalSupply != nil {
		out.TotalSupply = s.TotalSupply.Clone()
	}
	out.Owner = s.Owner
	out.SystemAccounts = append([]domain.Address(nil), s.SystemAccounts...)
	out.Validator = compliance.Config{
		Kind:   s.Validator.Kind,
		Banned: append([]domain.Address(nil), s.Validator.Banned...),
	}
	return out
}

// Apply folds a commit into the snapshot. Stores without native
// transactions use it to compute the next state before swapping it in.
func (s *Snapshot) Apply(c *Commit) {
	for addr, v := range c.Balances {
		if v == nil || v.IsZero() {
			delete(s.Balances, addr)
			continue
		}
		s.Balances[addr] = v.Clone()
	}
	if c.TotalSupply != nil {
		s.TotalSupply = c.TotalSupply.Clone()
	}
	if c.Owner != nil {
		s.Owner = *c.Owner
	}
	s.SystemAccounts = applySet(s.SystemAccounts, c.AddSystem, c.RemoveSystem)
	if c.Validator != nil {
		s.Validator = compliance.Config{
			Kind:   c.Validator.Kind,
			Banned: append([]domain.Address(nil), c.Validator.Banned...),
		}
	}
	s.Validator.Banned = applySet(s.Validator.Banned, c.Ban, c.Unban)
}

func applySet(current, add, remove []domain.Address) []domain.Address {
	set := make(map[domain.Address]struct{}, len(current)+len(add))
	for _, a := range current {
		set[a] = struct{}{}
	}
	for _, a := range add {
		set[a] = struct{}{}
	}
	for _, a := range remove {
		delete(set, a)
	}
	out := make([]domain.Address, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	domain.SortAddresses(out)
	return out
}
