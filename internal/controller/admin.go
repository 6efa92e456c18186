package controller

import (
	"context"

	"ledgerd/internal/compliance"
	"ledgerd/internal/events"
	"ledgerd/internal/ledger/models"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

// AddSystemAccount grants the system role. Owner only. Reports whether
// membership changed.
func (s *Service) AddSystemAccount(ctx context.Context, caller, addr domain.Address) (changed bool, err error) {
	ctx, done := s.observe(ctx, "add_system_account", caller)
	defer func() { done(err) }()

	err = s.write(func() error {
		if err := s.access.RequireOwner(caller); err != nil {
			return err
		}
		if s.access.IsSystemAccount(addr) {
			return nil
		}
		if err := s.persist(ctx, &models.Commit{AddSystem: []domain.Address{addr}}); err != nil {
			return err
		}
		changed, err = s.access.AddSystemAccount(caller, addr)
		return err
	})
	if err != nil || !changed {
		return false, err
	}

	s.logAudit(ctx, events.TypeSystemAccountAdded, caller, "address", addr.Hex())
	s.publisher.Publish(ctx, events.New(events.TypeSystemAccountAdded, caller).WithAddress(addr))
	return true, nil
}

// RemoveSystemAccount revokes the system role. Owner only. Reports whether
// membership changed.
func (s *Service) RemoveSystemAccount(ctx context.Context, caller, addr domain.Address) (changed bool, err error) {
	ctx, done := s.observe(ctx, "remove_system_account", caller)
	defer func() { done(err) }()

	err = s.write(func() error {
		if err := s.access.RequireOwner(caller); err != nil {
			return err
		}
		if !s.access.IsSystemAccount(addr) {
			return nil
		}
		if err := s.persist(ctx, &models.Commit{RemoveSystem: []domain.Address{addr}}); err != nil {
			return err
		}
		changed, err = s.access.RemoveSystemAccount(caller, addr)
		return err
	})
	if err != nil || !changed {
		return false, err
	}

	s.logAudit(ctx, events.TypeSystemAccountRemoved, caller, "address", addr.Hex())
	s.publisher.Publish(ctx, events.New(events.TypeSystemAccountRemoved, caller).WithAddress(addr))
	return true, nil
}

// SetValidator replaces the active compliance validator. Owner only. The
// controller keeps its own copy of v.
func (s *Service) SetValidator(ctx context.Context, caller domain.Address, v compliance.Validator) (err error) {
	ctx, done := s.observe(ctx, "set_validator", caller)
	defer func() { done(err) }()

	if v == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "validator is required")
	}
	cfg := v.Config()
	changed := false
	err = s.write(func() error {
		if err := s.access.RequireOwner(caller); err != nil {
			return err
		}
		next, err := compliance.FromConfig(cfg)
		if err != nil {
			return err
		}
		if cfg.Equal(s.validator.Config()) {
			return nil
		}
		if err := s.persist(ctx, &models.Commit{Validator: &cfg}); err != nil {
			return err
		}
		s.validator = next
		changed = true
		return nil
	})
	if err != nil || !changed {
		return err
	}

	s.logAudit(ctx, events.TypeValidatorChanged, caller,
		"validator", string(cfg.Kind),
		"banned", len(cfg.Banned),
	)
	e := events.New(events.TypeValidatorChanged, caller)
	e.Validator = string(cfg.Kind)
	s.publisher.Publish(ctx, e)
	return nil
}

// Ban adds addr to the active blacklist. Owner only. Fails with invalid_input
// when the active validator is not a blacklist.
func (s *Service) Ban(ctx context.Context, caller, addr domain.Address) (bool, error) {
	return s.setBanned(ctx, "ban", caller, addr, true)
}

// Unban removes addr from the active blacklist. Owner only.
func (s *Service) Unban(ctx context.Context, caller, addr domain.Address) (bool, error) {
	return s.setBanned(ctx, "unban", caller, addr, false)
}

func (s *Service) setBanned(ctx context.Context, op string, caller, addr domain.Address, banned bool) (changed bool, err error) {
	ctx, done := s.observe(ctx, op, caller)
	defer func() { done(err) }()

	err = s.write(func() error {
		if err := s.access.RequireOwner(caller); err != nil {
			return err
		}
		bl, ok := s.validator.(*compliance.Blacklist)
		if !ok {
			return dErrors.Newf(dErrors.CodeInvalidInput, "active validator %q does not support bans", s.validator.Kind())
		}
		if bl.IsBanned(addr) == banned {
			return nil
		}
		c := &models.Commit{}
		if banned {
			c.Ban = []domain.Address{addr}
		} else {
			c.Unban = []domain.Address{addr}
		}
		if err := s.persist(ctx, c); err != nil {
			return err
		}
		if banned {
			changed = bl.Ban(addr)
		} else {
			changed = bl.Unban(addr)
		}
		return nil
	})
	if err != nil || !changed {
		return false, err
	}

	event := events.TypeAddressUnbanned
	if banned {
		event = events.TypeAddressBanned
	}
	s.logAudit(ctx, event, caller, "address", addr.Hex())
	s.publisher.Publish(ctx, events.New(event, caller).WithAddress(addr))
	return true, nil
}

// TransferOwnership hands the owner role to newOwner. Owner only.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner domain.Address) (err error) {
	ctx, done := s.observe(ctx, "transfer_ownership", caller)
	defer func() { done(err) }()

	var changed bool
	err = s.write(func() error {
		if err := s.access.RequireOwner(caller); err != nil {
			return err
		}
		if newOwner == domain.ZeroAddress {
			return dErrors.New(dErrors.CodeInvalidInput, "new owner must not be the zero address")
		}
		if newOwner == s.access.Owner() {
			return nil
		}
		if err := s.persist(ctx, &models.Commit{Owner: &newOwner}); err != nil {
			return err
		}
		changed = true
		return s.access.TransferOwnership(caller, newOwner)
	})
	if err != nil || !changed {
		return err
	}

	s.logAudit(ctx, events.TypeOwnershipTransferred, caller, "new_owner", newOwner.Hex())
	s.publisher.Publish(ctx, events.New(events.TypeOwnershipTransferred, caller).WithAddress(newOwner))
	return nil
}
