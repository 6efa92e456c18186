package domain

import (
	"encoding/hex"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "ledgerd/pkg/domain-errors"
)

// Address identifies a ledger account. It is the 20-byte go-ethereum address so
// hex rendering (EIP-55), ordering and hashing follow the wider ecosystem.
type Address = common.Address

// Hash is a 32-byte digest.
type Hash = common.Hash

// ZeroAddress is never a valid owner or recipient.
var ZeroAddress = Address{}

// ParseAddress validates and decodes a 0x-prefixed, 40 hex character address.
// Mixed-case input must carry a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	body, ok := cutHexPrefix(s)
	if !ok || len(body) != 2*common.AddressLength {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex characters")
	}
	if !common.IsHexAddress(s) {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is not valid hex")
	}
	addr := common.HexToAddress(s)
	mixedCase := body != strings.ToLower(body) && body != strings.ToUpper(body)
	if mixedCase && addr.Hex()[2:] != body {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address checksum mismatch")
	}
	return addr, nil
}

// ParseNonZeroAddress is ParseAddress that also rejects the zero address.
func ParseNonZeroAddress(s string) (Address, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return Address{}, err
	}
	if addr == ZeroAddress {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "zero address is not allowed")
	}
	return addr, nil
}

// ParseHash decodes a 0x-prefixed 32-byte hex digest.
func ParseHash(s string) (Hash, error) {
	body, ok := cutHexPrefix(s)
	if !ok || len(body) != 2*common.HashLength {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "hash must be 0x followed by 64 hex characters")
	}
	b, err := hex.DecodeString(body)
	if err != nil {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "hash is not valid hex")
	}
	return common.BytesToHash(b), nil
}

// DecodeHex decodes hex with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	if body, ok := cutHexPrefix(s); ok {
		s = body
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "value is not valid hex")
	}
	return b, nil
}

// SortAddresses orders addresses by byte value in place.
func SortAddresses(addrs []Address) {
	slices.SortFunc(addrs, func(a, b Address) int { return a.Cmp(b) })
}

func cutHexPrefix(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return s, false
}
