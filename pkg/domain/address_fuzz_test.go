package domain

import (
	"testing"
)

// FuzzParseAddress tests that parsing never panics on arbitrary input
// and that accepted addresses round-trip through their checksummed form.
//
// Justification: Trust boundary functions must handle arbitrary input safely.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	f.Add("0x0000000000000000000000000000000000000000")
	f.Add("0X5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED")
	f.Add("'; DROP TABLE ledger_balances;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			return
		}
		roundTrip, err := ParseAddress(addr.Hex())
		if err != nil {
			t.Fatalf("checksummed form rejected: %v", err)
		}
		if roundTrip != addr {
			t.Fatal("round-trip changed address")
		}
	})
}

// FuzzParseAmount checks accepted amounts render back to the same value.
func FuzzParseAmount(f *testing.F) {
	f.Add("0")
	f.Add("82300")
	f.Add("-1")
	f.Add("1e3")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseAmount(input)
		if err != nil {
			return
		}
		again, err := ParseAmount(v.Dec())
		if err != nil || again.Cmp(v) != 0 {
			t.Fatalf("round-trip failed for %q", input)
		}
	})
}
