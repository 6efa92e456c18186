package controller

import (
	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/pkg/domain"
)

func (s *Service) BalanceOf(addr domain.Address) *uint256.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.BalanceOf(addr)
}

func (s *Service) TotalSupply() *uint256.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.TotalSupply()
}

func (s *Service) Owner() domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access.Owner()
}

func (s *Service) IsSystemAccount(addr domain.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access.IsSystemAccount(addr)
}

// SystemAccounts lists system accounts in address order.
func (s *Service) SystemAccounts() []domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access.SystemAccounts()
}

// Validator returns a copy of the active validator's configuration.
func (s *Service) Validator() compliance.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validator.Config()
}
