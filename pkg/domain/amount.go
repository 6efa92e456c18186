package domain

import (
	"strings"

	"github.com/holiman/uint256"

	dErrors "ledgerd/pkg/domain-errors"
)

// maxAmountDigits bounds input before parsing; 2^256-1 has 78 decimal digits.
const maxAmountDigits = 78

// ParseAmount decodes a base-10 token amount. Amounts travel as strings so
// JSON clients never round them through float64.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount is required")
	}
	if len(s) > maxAmountDigits {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount exceeds 256 bits")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount must be a non-negative base-10 integer")
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidAmount, "amount exceeds 256 bits")
	}
	return v, nil
}

// FormatAmount renders an amount in base 10; nil renders as "0".
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
