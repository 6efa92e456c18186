// Package bolt persists ledger state in a single BoltDB file. Each commit is
// one read-write transaction, so a crash mid-commit leaves the previous state.
package bolt

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/internal/ledger/models"
	"ledgerd/pkg/domain"
	"ledgerd/pkg/platform/sentinel"
)

var (
	balancesBucket = []byte("balances")
	metaBucket     = []byte("meta")
	systemBucket   = []byte("system_accounts")
	bannedBucket   = []byte("banned")

	supplyKey    = []byte("total_supply")
	ownerKey     = []byte("owner")
	validatorKey = []byte("validator_kind")

	present = []byte{1}
)

type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file and its buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{balancesBucket, metaBucket, systemBucket, bannedBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := models.NewSnapshot()
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		rawOwner := meta.Get(ownerKey)
		if rawOwner == nil {
			return sentinel.ErrNotFound
		}
		var err error
		if snap.Owner, err = decodeAddress(rawOwner); err != nil {
			return err
		}
		if raw := meta.Get(supplyKey); raw != nil {
			if snap.TotalSupply, err = decodeAmount(raw); err != nil {
				return err
			}
		}
		if raw := meta.Get(validatorKey); raw != nil {
			snap.Validator.Kind = compliance.Kind(raw)
		}

		err = tx.Bucket(balancesBucket).ForEach(func(k, v []byte) error {
			addr, err := decodeAddress(k)
			if err != nil {
				return err
			}
			amount, err := decodeAmount(v)
			if err != nil {
				return err
			}
			snap.Balances[addr] = amount
			return nil
		})
		if err != nil {
			return err
		}
		if snap.SystemAccounts, err = keys(tx.Bucket(systemBucket)); err != nil {
			return err
		}
		snap.Validator.Banned, err = keys(tx.Bucket(bannedBucket))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) Commit(ctx context.Context, c *models.Commit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.Empty() {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if c.Owner != nil {
			if err := meta.Put(ownerKey, c.Owner.Bytes()); err != nil {
				return err
			}
		} else if meta.Get(ownerKey) == nil {
			return fmt.Errorf("commit before genesis: %w", sentinel.ErrNotFound)
		}
		if c.TotalSupply != nil {
			if err := meta.Put(supplyKey, encodeAmount(c.TotalSupply)); err != nil {
				return err
			}
		}

		balances := tx.Bucket(balancesBucket)
		for _, addr := range c.SortedBalanceKeys() {
			amount := c.Balances[addr]
			var err error
			if amount == nil || amount.IsZero() {
				err = balances.Delete(addr.Bytes())
			} else {
				err = balances.Put(addr.Bytes(), encodeAmount(amount))
			}
			if err != nil {
				return err
			}
		}

		system := tx.Bucket(systemBucket)
		if err := putAll(system, c.AddSystem); err != nil {
			return err
		}
		if err := deleteAll(system, c.RemoveSystem); err != nil {
			return err
		}

		if c.Validator != nil {
			kind := c.Validator.Kind
			if kind == "" {
				kind = compliance.KindBlacklist
			}
			if err := meta.Put(validatorKey, []byte(kind)); err != nil {
				return err
			}
			if err := tx.DeleteBucket(bannedBucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bannedBucket); err != nil {
				return err
			}
			if err := putAll(tx.Bucket(bannedBucket), c.Validator.Banned); err != nil {
				return err
			}
		}
		banned := tx.Bucket(bannedBucket)
		if err := putAll(banned, c.Ban); err != nil {
			return err
		}
		return deleteAll(banned, c.Unban)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func putAll(b *bolt.Bucket, addrs []domain.Address) error {
	for _, addr := range addrs {
		if err := b.Put(addr.Bytes(), present); err != nil {
			return err
		}
	}
	return nil
}

func deleteAll(b *bolt.Bucket, addrs []domain.Address) error {
	for _, addr := range addrs {
		if err := b.Delete(addr.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// keys lists bucket keys; bolt iterates in byte order, which is address order.
func keys(b *bolt.Bucket) ([]domain.Address, error) {
	var out []domain.Address
	err := b.ForEach(func(k, _ []byte) error {
		addr, err := decodeAddress(k)
		if err != nil {
			return err
		}
		out = append(out, addr)
		return nil
	})
	return out, err
}

func encodeAmount(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

func decodeAmount(raw []byte) (*uint256.Int, error) {
	if len(raw) != 32 {
		return nil, fmt.Errorf("amount of %d bytes: %w", len(raw), sentinel.ErrCorrupt)
	}
	return new(uint256.Int).SetBytes32(raw), nil
}

func decodeAddress(raw []byte) (domain.Address, error) {
	if len(raw) != common.AddressLength {
		return domain.Address{}, fmt.Errorf("address of %d bytes: %w", len(raw), sentinel.ErrCorrupt)
	}
	return common.BytesToAddress(raw), nil
}
