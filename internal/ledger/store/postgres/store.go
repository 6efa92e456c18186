package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/internal/ledger/models"
	"ledgerd/pkg/domain"
	"ledgerd/pkg/platform/sentinel"
	txcontext "ledgerd/pkg/platform/tx"
)

// Store persists ledger state in PostgreSQL. Every Commit runs in a single
// transaction that first locks the meta row, so concurrent writers from other
// processes queue behind each other.
//
// This store is pure I/O; validation happens in the ledger before a commit.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the ledger tables when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}

// conn returns the transaction carried by ctx, falling back to the pool.
func (s *Store) conn(ctx context.Context) txcontext.Querier {
	return txcontext.Or(ctx, s.db)
}

func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	q := s.conn(ctx)
	snap := models.NewSnapshot()

	var supply string
	var owner []byte
	var kind string
	err := q.QueryRowContext(ctx, `
		SELECT total_supply::text, owner, validator_kind
		FROM ledger_meta
		WHERE id = 1
	`).Scan(&supply, &owner, &kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load ledger meta: %w", err)
	}
	if snap.TotalSupply, err = decodeAmount(supply); err != nil {
		return nil, err
	}
	if snap.Owner, err = decodeAddress(owner); err != nil {
		return nil, err
	}
	snap.Validator.Kind = compliance.Kind(kind)

	rows, err := q.QueryContext(ctx, `SELECT address, amount::text FROM ledger_balances`)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		var amount string
		if err := rows.Scan(&raw, &amount); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		addr, err := decodeAddress(raw)
		if err != nil {
			return nil, err
		}
		if snap.Balances[addr], err = decodeAmount(amount); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balances: %w", err)
	}

	if snap.SystemAccounts, err = s.loadAddresses(ctx, q, `SELECT address FROM ledger_system_accounts ORDER BY address`); err != nil {
		return nil, err
	}
	if snap.Validator.Banned, err = s.loadAddresses(ctx, q, `SELECT address FROM ledger_banned ORDER BY address`); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadAddresses(ctx context.Context, q txcontext.Querier, query string) ([]domain.Address, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load addresses: %w", err)
	}
	defer rows.Close()
	var out []domain.Address
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addr, err := decodeAddress(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return out, nil
}

// Commit writes c in one transaction.
func (s *Store) Commit(ctx context.Context, c *models.Commit) error {
	if c == nil || c.Empty() {
		return nil
	}
	return s.RunInTx(ctx, func(ctx context.Context) error {
		return s.write(ctx, c)
	})
}

// RunInTx runs fn with a transaction stored in its context. Store methods
// called with that context join the transaction; nested calls reuse it.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, c *models.Commit) error {
	q := s.conn(ctx)

	if c.Owner != nil {
		_, err := q.ExecContext(ctx, `
			INSERT INTO ledger_meta (id, total_supply, owner)
			VALUES (1, 0, $1)
			ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner
		`, c.Owner.Bytes())
		if err != nil {
			return fmt.Errorf("upsert owner: %w", err)
		}
	}

	var locked int
	if err := q.QueryRowContext(ctx, `SELECT id FROM ledger_meta WHERE id = 1 FOR UPDATE`).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("commit before genesis: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("lock ledger meta: %w", err)
	}

	if c.TotalSupply != nil {
		if _, err := q.ExecContext(ctx, `UPDATE ledger_meta SET total_supply = $1::numeric WHERE id = 1`, c.TotalSupply.Dec()); err != nil {
			return fmt.Errorf("update total supply: %w", err)
		}
	}

	for _, addr := range c.SortedBalanceKeys() {
		amount := c.Balances[addr]
		if amount == nil || amount.IsZero() {
			if _, err := q.ExecContext(ctx, `DELETE FROM ledger_balances WHERE address = $1`, addr.Bytes()); err != nil {
				return fmt.Errorf("delete balance: %w", err)
			}
			continue
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO ledger_balances (address, amount)
			VALUES ($1, $2::numeric)
			ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount
		`, addr.Bytes(), amount.Dec())
		if err != nil {
			return fmt.Errorf("upsert balance: %w", err)
		}
	}

	if err := addAll(ctx, q, "ledger_system_accounts", c.AddSystem); err != nil {
		return err
	}
	if err := removeAll(ctx, q, "ledger_system_accounts", c.RemoveSystem); err != nil {
		return err
	}

	if c.Validator != nil {
		kind := c.Validator.Kind
		if kind == "" {
			kind = compliance.KindBlacklist
		}
		if _, err := q.ExecContext(ctx, `UPDATE ledger_meta SET validator_kind = $1 WHERE id = 1`, string(kind)); err != nil {
			return fmt.Errorf("update validator kind: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM ledger_banned`); err != nil {
			return fmt.Errorf("reset banned: %w", err)
		}
		if err := addAll(ctx, q, "ledger_banned", c.Validator.Banned); err != nil {
			return err
		}
	}
	if err := addAll(ctx, q, "ledger_banned", c.Ban); err != nil {
		return err
	}
	return removeAll(ctx, q, "ledger_banned", c.Unban)
}

// table names below come from this package only, never from input.
func addAll(ctx context.Context, q txcontext.Querier, table string, addrs []domain.Address) error {
	for _, addr := range addrs {
		query := `INSERT INTO ` + table + ` (address) VALUES ($1) ON CONFLICT (address) DO NOTHING`
		if _, err := q.ExecContext(ctx, query, addr.Bytes()); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func removeAll(ctx context.Context, q txcontext.Querier, table string, addrs []domain.Address) error {
	for _, addr := range addrs {
		query := `DELETE FROM ` + table + ` WHERE address = $1`
		if _, err := q.ExecContext(ctx, query, addr.Bytes()); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func decodeAddress(raw []byte) (domain.Address, error) {
	if len(raw) != common.AddressLength {
		return domain.Address{}, fmt.Errorf("address of %d bytes: %w", len(raw), sentinel.ErrCorrupt)
	}
	return common.BytesToAddress(raw), nil
}

func decodeAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, sentinel.ErrCorrupt)
	}
	return v, nil
}
