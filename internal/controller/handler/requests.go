package handler

import (
	"strings"

	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

type AmountRequest struct {
	Amount string `json:"amount"`
}

type MintToRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type BurnFromRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type AddressRequest struct {
	Address string `json:"address"`
}

type ValidatorRequest struct {
	Kind   string   `json:"kind"`
	Banned []string `json:"banned,omitempty"`
}

// RecoverRequest accepts either a 65-byte r‖s‖v signature or the three
// components separately.
type RecoverRequest struct {
	OldAddress string `json:"old_address"`
	NewAddress string `json:"new_address"`
	Hash       string `json:"hash"`
	Signature  string `json:"signature,omitempty"`
	V          *uint8 `json:"v,omitempty"`
	R          string `json:"r,omitempty"`
	S          string `json:"s,omitempty"`
}

func (r *RecoverRequest) toDomain() (recovery.Request, error) {
	old, err := domain.ParseNonZeroAddress(r.OldAddress)
	if err != nil {
		return recovery.Request{}, prefixed("old_address", err)
	}
	next, err := domain.ParseNonZeroAddress(r.NewAddress)
	if err != nil {
		return recovery.Request{}, prefixed("new_address", err)
	}
	hash, err := domain.ParseHash(r.Hash)
	if err != nil {
		return recovery.Request{}, prefixed("hash", err)
	}

	var sig recovery.Signature
	switch {
	case strings.TrimSpace(r.Signature) != "":
		if r.V != nil || r.R != "" || r.S != "" {
			return recovery.Request{}, dErrors.New(dErrors.CodeBadRequest, "provide either signature or v, r and s, not both")
		}
		if sig, err = recovery.ParseSignature(r.Signature); err != nil {
			return recovery.Request{}, err
		}
	case r.V != nil:
		sig.V = *r.V
		if err := decodeScalar("r", r.R, sig.R[:]); err != nil {
			return recovery.Request{}, err
		}
		if err := decodeScalar("s", r.S, sig.S[:]); err != nil {
			return recovery.Request{}, err
		}
	default:
		return recovery.Request{}, dErrors.New(dErrors.CodeBadRequest, "signature or v, r and s are required")
	}

	return recovery.Request{
		OldAddress:  old,
		NewAddress:  next,
		MessageHash: hash,
		Signature:   sig,
	}, nil
}

func decodeScalar(field, s string, dst []byte) error {
	raw, err := domain.DecodeHex(strings.TrimSpace(s))
	if err != nil || len(raw) != len(dst) {
		return dErrors.Newf(dErrors.CodeInvalidSignature, "%s must be %d bytes of hex", field, len(dst))
	}
	copy(dst, raw)
	return nil
}

func (r *ValidatorRequest) toDomain() (compliance.Validator, error) {
	kind, err := compliance.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	cfg := compliance.Config{Kind: kind}
	for _, raw := range r.Banned {
		addr, err := domain.ParseAddress(raw)
		if err != nil {
			return nil, prefixed("banned", err)
		}
		cfg.Banned = append(cfg.Banned, addr)
	}
	return compliance.FromConfig(cfg)
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := domain.ParseAmount(s)
	if err != nil {
		return nil, prefixed("amount", err)
	}
	return amount, nil
}

func parseAddress(field, s string) (domain.Address, error) {
	addr, err := domain.ParseAddress(s)
	if err != nil {
		return domain.Address{}, prefixed(field, err)
	}
	return addr, nil
}

// prefixed names the offending field while keeping the original code.
func prefixed(field string, err error) error {
	if de, ok := dErrors.As(err); ok {
		return dErrors.New(de.Code, field+": "+de.Message)
	}
	return dErrors.Wrap(err, dErrors.CodeInvalidInput, field)
}
