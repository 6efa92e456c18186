// Package access tracks the owner and the set of system accounts allowed to
// change supply. A Control is not safe for concurrent use; the controller
// serializes access.
package access

import (
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

type Control struct {
	owner  domain.Address
	system map[domain.Address]struct{}
}

// New creates a Control owned by owner with an initial set of system accounts.
func New(owner domain.Address, system ...domain.Address) (*Control, error) {
	if owner == domain.ZeroAddress {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "owner must not be the zero address")
	}
	c := &Control{owner: owner, system: make(map[domain.Address]struct{}, len(system))}
	for _, addr := range system {
		c.system[addr] = struct{}{}
	}
	return c, nil
}

func (c *Control) Owner() domain.Address {
	return c.owner
}

func (c *Control) RequireOwner(caller domain.Address) error {
	if caller != c.owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the owner")
	}
	return nil
}

func (c *Control) RequireSystem(caller domain.Address) error {
	if !c.IsSystemAccount(caller) {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not a system account")
	}
	return nil
}

func (c *Control) IsSystemAccount(addr domain.Address) bool {
	_, ok := c.system[addr]
	return ok
}

// AddSystemAccount grants the system role. It reports whether membership
// changed; adding an existing member is a successful no-op.
func (c *Control) AddSystemAccount(caller, addr domain.Address) (bool, error) {
	if err := c.RequireOwner(caller); err != nil {
		return false, err
	}
	if c.IsSystemAccount(addr) {
		return false, nil
	}
	c.system[addr] = struct{}{}
	return true, nil
}

// RemoveSystemAccount revokes the system role. Revocation takes effect for the
// next authorization check.
func (c *Control) RemoveSystemAccount(caller, addr domain.Address) (bool, error) {
	if err := c.RequireOwner(caller); err != nil {
		return false, err
	}
	if !c.IsSystemAccount(addr) {
		return false, nil
	}
	delete(c.system, addr)
	return true, nil
}

// TransferOwnership hands the owner role to newOwner.
func (c *Control) TransferOwnership(caller, newOwner domain.Address) error {
	if err := c.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner == domain.ZeroAddress {
		return dErrors.New(dErrors.CodeInvalidInput, "new owner must not be the zero address")
	}
	c.owner = newOwner
	return nil
}

// SystemAccounts lists members in address order.
func (c *Control) SystemAccounts() []domain.Address {
	out := make([]domain.Address, 0, len(c.system))
	for addr := range c.system {
		out = append(out, addr)
	}
	domain.SortAddresses(out)
	return out
}
