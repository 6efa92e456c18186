package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ledgerd/pkg/domain-errors"
)

const checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// TestParseAddress_Invariants validates the parsing invariant:
// "addresses are exactly 20 bytes of 0x-prefixed hex, checksum honoured when present"
//
// Justification: Addresses arrive from HTTP bodies, path params and
// environment variables. This is the trust boundary.
func TestParseAddress_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAddress("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects missing prefix", func(t *testing.T) {
		_, err := ParseAddress(strings.TrimPrefix(checksummed, "0x"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseAddress(checksummed[:40])
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-hex characters", func(t *testing.T) {
		_, err := ParseAddress("0x" + strings.Repeat("zz", 20))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects bad checksum", func(t *testing.T) {
		_, err := ParseAddress("0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checksum")
	})

	t.Run("accepts checksummed, lower and upper case", func(t *testing.T) {
		want, err := ParseAddress(checksummed)
		require.NoError(t, err)
		assert.Equal(t, checksummed, want.Hex())

		lower, err := ParseAddress(strings.ToLower(checksummed))
		require.NoError(t, err)
		assert.Equal(t, want, lower)

		upper, err := ParseAddress("0x" + strings.ToUpper(checksummed[2:]))
		require.NoError(t, err)
		assert.Equal(t, want, upper)
	})
}

func TestParseNonZeroAddress(t *testing.T) {
	_, err := ParseNonZeroAddress(ZeroAddress.Hex())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	addr, err := ParseNonZeroAddress(checksummed)
	require.NoError(t, err)
	assert.NotEqual(t, ZeroAddress, addr)
}

func TestParseHash(t *testing.T) {
	const challenge = "0xa1de988600a42c4b4ab089b619297c17d53cffae5d5120d82d8a92d0bb3b78f2"

	h, err := ParseHash(challenge)
	require.NoError(t, err)
	assert.Equal(t, challenge, h.Hex())

	_, err = ParseHash(challenge[:64])
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = ParseHash("0x" + strings.Repeat("g", 64))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDecodeHex(t *testing.T) {
	b, err := DecodeHex("0x0a0b")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, b)

	b, err = DecodeHex("ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, b)

	_, err = DecodeHex("0xabc")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestSortAddresses(t *testing.T) {
	a := Address{0x03}
	b := Address{0x01}
	c := Address{0x02}
	addrs := []Address{a, b, c}

	SortAddresses(addrs)

	assert.Equal(t, []Address{b, c, a}, addrs)
}
