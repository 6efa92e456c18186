package controller

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"ledgerd/internal/events"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

// Recover moves the whole balance of req.OldAddress to req.NewAddress once
// the signature proves control of the old key. Caller must be a system
// account. Replaying a used signature moves zero.
func (s *Service) Recover(ctx context.Context, caller domain.Address, req recovery.Request) (moved *uint256.Int, err error) {
	ctx, done := s.observe(ctx, "recover", caller)
	defer func() { done(err) }()

	err = s.write(func() error {
		if err := s.access.RequireSystem(caller); err != nil {
			return err
		}
		if req.NewAddress == domain.ZeroAddress {
			return dErrors.New(dErrors.CodeInvalidInput, "new address must not be zero")
		}
		if err := s.verifier.Verify(req); err != nil {
			return err
		}
		if s.policy.ChecksSource() && !s.validator.Approve(req.OldAddress) {
			return dErrors.New(dErrors.CodeComplianceDenied, "old address is not approved by the compliance validator")
		}
		if s.policy.ChecksDestination() && !s.validator.Approve(req.NewAddress) {
			return dErrors.New(dErrors.CodeComplianceDenied, "new address is not approved by the compliance validator")
		}
		d, amount, err := s.ledger.PlanSweep(req.OldAddress, req.NewAddress)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, deltaCommit(d)); err != nil {
			return err
		}
		s.ledger.Apply(d)
		moved = amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	if moved.IsZero() {
		return moved, nil
	}
	s.logAudit(ctx, events.TypeRecovered, caller,
		"from", req.OldAddress.Hex(),
		"to", req.NewAddress.Hex(),
		"amount", domain.FormatAmount(moved),
		"signature", hexutil.Encode(req.Signature.Bytes()),
	)
	s.publisher.Publish(ctx, events.New(events.TypeRecovered, caller).
		WithFrom(req.OldAddress).
		WithTo(req.NewAddress).
		WithAmount(moved))
	return moved, nil
}

// Challenge is the digest recovery signatures must sign.
func (s *Service) Challenge() domain.Hash {
	return s.verifier.Challenge()
}
