package controller

import (
	"context"

	"github.com/holiman/uint256"

	"ledgerd/internal/events"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

// Mint credits amount to the caller. Caller must be a system account.
func (s *Service) Mint(ctx context.Context, caller domain.Address, amount *uint256.Int) (*uint256.Int, error) {
	return s.mintTo(ctx, "mint", caller, caller, amount)
}

// MintTo credits amount to `to`. Caller must be a system account.
func (s *Service) MintTo(ctx context.Context, caller, to domain.Address, amount *uint256.Int) (*uint256.Int, error) {
	return s.mintTo(ctx, "mint_to", caller, to, amount)
}

func (s *Service) mintTo(ctx context.Context, op string, caller, to domain.Address, amount *uint256.Int) (balance *uint256.Int, err error) {
	ctx, done := s.observe(ctx, op, caller)
	defer func() { done(err) }()

	var supply *uint256.Int
	err = s.write(func() error {
		if err := s.access.RequireSystem(caller); err != nil {
			return err
		}
		d, err := s.ledger.PlanMint(to, amount)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, deltaCommit(d)); err != nil {
			return err
		}
		s.ledger.Apply(d)
		balance, supply = s.ledger.BalanceOf(to), s.ledger.TotalSupply()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordSupply(supply)
	s.logAudit(ctx, events.TypeMinted, caller,
		"to", to.Hex(),
		"amount", domain.FormatAmount(amount),
		"total_supply", domain.FormatAmount(supply),
	)
	s.publisher.Publish(ctx, events.New(events.TypeMinted, caller).WithTo(to).WithAmount(amount))
	return balance, nil
}

// Burn destroys amount from the caller's balance. Caller must be a system
// account.
func (s *Service) Burn(ctx context.Context, caller domain.Address, amount *uint256.Int) (*uint256.Int, error) {
	return s.burnFrom(ctx, "burn", caller, caller, amount)
}

// BurnFrom destroys amount from `from`. Caller must be a system account.
func (s *Service) BurnFrom(ctx context.Context, caller, from domain.Address, amount *uint256.Int) (*uint256.Int, error) {
	return s.burnFrom(ctx, "burn_from", caller, from, amount)
}

func (s *Service) burnFrom(ctx context.Context, op string, caller, from domain.Address, amount *uint256.Int) (balance *uint256.Int, err error) {
	ctx, done := s.observe(ctx, op, caller)
	defer func() { done(err) }()

	var supply *uint256.Int
	err = s.write(func() error {
		if err := s.access.RequireSystem(caller); err != nil {
			return err
		}
		d, err := s.ledger.PlanBurn(from, amount)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, deltaCommit(d)); err != nil {
			return err
		}
		s.ledger.Apply(d)
		balance, supply = s.ledger.BalanceOf(from), s.ledger.TotalSupply()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordSupply(supply)
	s.logAudit(ctx, events.TypeBurned, caller,
		"from", from.Hex(),
		"amount", domain.FormatAmount(amount),
		"total_supply", domain.FormatAmount(supply),
	)
	s.publisher.Publish(ctx, events.New(events.TypeBurned, caller).WithFrom(from).WithAmount(amount))
	return balance, nil
}

// TransferResult carries both balances after a transfer.
type TransferResult struct {
	From domain.Address
	To   domain.Address
	// FromBalance and ToBalance are the balances after the transfer.
	FromBalance *uint256.Int
	ToBalance   *uint256.Int
}

// Transfer moves amount from the caller to `to`. The caller must be approved
// by the active validator. A zero amount or a self transfer succeeds without
// changing state.
func (s *Service) Transfer(ctx context.Context, caller, to domain.Address, amount *uint256.Int) (res TransferResult, err error) {
	ctx, done := s.observe(ctx, "transfer", caller)
	defer func() { done(err) }()

	var changed bool
	err = s.write(func() error {
		if !s.validator.Approve(caller) {
			return dErrors.New(dErrors.CodeComplianceDenied, "sender is not approved by the compliance validator")
		}
		d, err := s.ledger.PlanTransfer(caller, to, amount)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, deltaCommit(d)); err != nil {
			return err
		}
		s.ledger.Apply(d)
		changed = !d.Empty()
		res = TransferResult{
			From:        caller,
			To:          to,
			FromBalance: s.ledger.BalanceOf(caller),
			ToBalance:   s.ledger.BalanceOf(to),
		}
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}
	if !changed {
		return res, nil
	}

	s.logAudit(ctx, events.TypeTransferred, caller,
		"to", to.Hex(),
		"amount", domain.FormatAmount(amount),
	)
	s.publisher.Publish(ctx, events.New(events.TypeTransferred, caller).WithFrom(caller).WithTo(to).WithAmount(amount))
	return res, nil
}
