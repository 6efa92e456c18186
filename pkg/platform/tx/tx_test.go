package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("nil transaction is ignored", func(t *testing.T) {
		got := WithTx(ctx, nil)
		_, ok := From(got)
		assert.False(t, ok)
	})

	t.Run("round trips the transaction", func(t *testing.T) {
		tx := &sql.Tx{}
		got, ok := From(WithTx(ctx, tx))
		assert.True(t, ok)
		assert.Same(t, tx, got)
		assert.Same(t, tx, Or(WithTx(ctx, tx), nil))
	})

	t.Run("falls back to the pool", func(t *testing.T) {
		db := &sql.DB{}
		assert.Same(t, db, Or(ctx, db))
	})
}
