// Package ledger holds balances and total supply. It performs pure accounting:
// no identity or compliance checks happen here.
//
// Every mutation is split into a plan step that validates and computes the
// resulting values, and an Apply step that installs them. Callers persist the
// Delta in between so a failed write never leaves memory ahead of the store.
//
// A Ledger is not safe for concurrent use; the controller serializes access.
package ledger

import (
	"github.com/holiman/uint256"

	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

// Delta is the outcome of a planned mutation: the resulting balance of every
// touched address and the resulting total supply. Supply is nil when unchanged.
type Delta struct {
	Balances map[domain.Address]*uint256.Int
	Supply   *uint256.Int
}

// Empty reports whether applying d would change nothing.
func (d Delta) Empty() bool {
	return len(d.Balances) == 0 && d.Supply == nil
}

type Ledger struct {
	balances map[domain.Address]*uint256.Int
	supply   *uint256.Int
}

func New() *Ledger {
	return &Ledger{
		balances: make(map[domain.Address]*uint256.Int),
		supply:   new(uint256.Int),
	}
}

// BalanceOf returns a copy of addr's balance. Unknown addresses hold zero.
func (l *Ledger) BalanceOf(addr domain.Address) *uint256.Int {
	if b, ok := l.balances[addr]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

func (l *Ledger) TotalSupply() *uint256.Int {
	return l.supply.Clone()
}

// PlanMint credits amount to `to` and grows the supply.
func (l *Ledger) PlanMint(to domain.Address, amount *uint256.Int) (Delta, error) {
	if err := requirePositive(amount); err != nil {
		return Delta{}, err
	}
	balance, overflow := new(uint256.Int).AddOverflow(l.balanceRef(to), amount)
	if overflow {
		return Delta{}, dErrors.New(dErrors.CodeArithmeticOverflow, "balance would exceed 2^256-1")
	}
	supply, overflow := new(uint256.Int).AddOverflow(l.supply, amount)
	if overflow {
		return Delta{}, dErrors.New(dErrors.CodeArithmeticOverflow, "total supply would exceed 2^256-1")
	}
	return Delta{
		Balances: map[domain.Address]*uint256.Int{to: balance},
		Supply:   supply,
	}, nil
}

// PlanBurn debits amount from `from` and shrinks the supply.
func (l *Ledger) PlanBurn(from domain.Address, amount *uint256.Int) (Delta, error) {
	if err := requirePositive(amount); err != nil {
		return Delta{}, err
	}
	current := l.balanceRef(from)
	if current.Lt(amount) {
		return Delta{}, dErrors.New(dErrors.CodeInsufficientBalance, "burn amount exceeds balance")
	}
	// supply >= balance >= amount, so neither subtraction can wrap.
	return Delta{
		Balances: map[domain.Address]*uint256.Int{from: new(uint256.Int).Sub(current, amount)},
		Supply:   new(uint256.Int).Sub(l.supply, amount),
	}, nil
}

// PlanTransfer moves amount between two accounts. A zero amount or a self
// transfer yields an empty Delta.
func (l *Ledger) PlanTransfer(from, to domain.Address, amount *uint256.Int) (Delta, error) {
	if amount == nil {
		return Delta{}, dErrors.New(dErrors.CodeInvalidAmount, "amount is required")
	}
	current := l.balanceRef(from)
	if current.Lt(amount) {
		return Delta{}, dErrors.New(dErrors.CodeInsufficientBalance, "transfer amount exceeds balance")
	}
	if amount.IsZero() || from == to {
		return Delta{}, nil
	}
	// The receiver's balance is bounded by supply, which already includes amount.
	return Delta{
		Balances: map[domain.Address]*uint256.Int{
			from: new(uint256.Int).Sub(current, amount),
			to:   new(uint256.Int).Add(l.balanceRef(to), amount),
		},
	}, nil
}

// PlanSweep moves the entire balance of `from` to `to` and reports the amount.
func (l *Ledger) PlanSweep(from, to domain.Address) (Delta, *uint256.Int, error) {
	amount := l.BalanceOf(from)
	d, err := l.PlanTransfer(from, to, amount)
	if err != nil {
		return Delta{}, nil, err
	}
	if d.Empty() {
		return d, new(uint256.Int), nil
	}
	return d, amount, nil
}

// Apply installs a planned Delta. Zero balances are pruned.
func (l *Ledger) Apply(d Delta) {
	for addr, v := range d.Balances {
		if v.IsZero() {
			delete(l.balances, addr)
			continue
		}
		l.balances[addr] = v.Clone()
	}
	if d.Supply != nil {
		l.supply = d.Supply.Clone()
	}
}

func (l *Ledger) Mint(to domain.Address, amount *uint256.Int) error {
	d, err := l.PlanMint(to, amount)
	if err != nil {
		return err
	}
	l.Apply(d)
	return nil
}

func (l *Ledger) Burn(from domain.Address, amount *uint256.Int) error {
	d, err := l.PlanBurn(from, amount)
	if err != nil {
		return err
	}
	l.Apply(d)
	return nil
}

func (l *Ledger) Transfer(from, to domain.Address, amount *uint256.Int) error {
	d, err := l.PlanTransfer(from, to, amount)
	if err != nil {
		return err
	}
	l.Apply(d)
	return nil
}

// Restore replaces the ledger contents. It refuses state whose balances do not
// add up to supply.
func (l *Ledger) Restore(balances map[domain.Address]*uint256.Int, supply *uint256.Int) error {
	if supply == nil {
		supply = new(uint256.Int)
	}
	sum := new(uint256.Int)
	next := make(map[domain.Address]*uint256.Int, len(balances))
	for addr, v := range balances {
		if v == nil || v.IsZero() {
			continue
		}
		if _, overflow := sum.AddOverflow(sum, v); overflow {
			return dErrors.New(dErrors.CodeArithmeticOverflow, "restored balances exceed 2^256-1")
		}
		next[addr] = v.Clone()
	}
	if !sum.Eq(supply) {
		return dErrors.Newf(dErrors.CodeInvalidInput, "restored balances sum to %s but supply is %s", sum.Dec(), supply.Dec())
	}
	l.balances = next
	l.supply = supply.Clone()
	return nil
}

func (l *Ledger) balanceRef(addr domain.Address) *uint256.Int {
	if b, ok := l.balances[addr]; ok {
		return b
	}
	return new(uint256.Int)
}

func requirePositive(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAmount, "amount must be greater than zero")
	}
	return nil
}
