// Package recovery proves control of an address by recovering the secp256k1
// signer of a fixed challenge digest.
package recovery

import (
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

// SignatureLength is the r‖s‖v wire size produced by wallets.
const SignatureLength = 65

// Signature holds the recovery id and the two scalars of an ECDSA signature.
// V is 27 or 28; 0 and 1 are accepted and normalized.
type Signature struct {
	V uint8
	R [32]byte
	S [32]byte
}

// Request asks for the balance of OldAddress to move to NewAddress.
type Request struct {
	OldAddress  domain.Address
	NewAddress  domain.Address
	MessageHash domain.Hash
	Signature
}

// ParseSignature splits a 65-byte hex signature laid out as r‖s‖v.
func ParseSignature(s string) (Signature, error) {
	raw, err := domain.DecodeHex(strings.TrimSpace(s))
	if err != nil {
		return Signature{}, dErrors.New(dErrors.CodeInvalidSignature, "signature is not valid hex")
	}
	if len(raw) != SignatureLength {
		return Signature{}, dErrors.Newf(dErrors.CodeInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(raw))
	}
	var sig Signature
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	sig.V = raw[64]
	return sig, nil
}

// Bytes renders the signature as r‖s‖v.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureLength)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// NormalizeV maps the recovery id to 27 or 28.
func NormalizeV(v uint8) (uint8, error) {
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return 0, dErrors.Newf(dErrors.CodeInvalidSignature, "recovery id %d is not 0, 1, 27 or 28", v)
	}
	return v, nil
}

// RecoverAddress returns the address whose key produced sig over hash. Only
// canonical signatures are accepted: r and s in [1, N-1] and s <= N/2.
func RecoverAddress(hash domain.Hash, sig Signature) (domain.Address, error) {
	v, err := NormalizeV(sig.V)
	if err != nil {
		return domain.Address{}, err
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig.R[:]); overflow || r.IsZero() {
		return domain.Address{}, dErrors.New(dErrors.CodeInvalidSignature, "signature r is out of range")
	}
	if overflow := s.SetByteSlice(sig.S[:]); overflow || s.IsZero() {
		return domain.Address{}, dErrors.New(dErrors.CodeInvalidSignature, "signature s is out of range")
	}
	if s.IsOverHalfOrder() {
		return domain.Address{}, dErrors.New(dErrors.CodeInvalidSignature, "signature s is not canonical")
	}

	// btcec expects header‖r‖s with header 27+recid for uncompressed keys.
	compact := make([]byte, 0, SignatureLength)
	compact = append(compact, v)
	compact = append(compact, sig.R[:]...)
	compact = append(compact, sig.S[:]...)

	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeInvalidSignature, "public key recovery failed")
	}
	return PubkeyToAddress(pub), nil
}

// PubkeyToAddress derives the 20-byte address: the last bytes of
// Keccak-256 over the uncompressed X‖Y coordinates.
func PubkeyToAddress(pub *btcec.PublicKey) domain.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	return common.BytesToAddress(h.Sum(nil)[12:])
}

// Verifier checks recovery requests against the application challenge.
type Verifier struct {
	challenge domain.Hash
}

func NewVerifier(challenge domain.Hash) *Verifier {
	return &Verifier{challenge: challenge}
}

func (v *Verifier) Challenge() domain.Hash {
	return v.challenge
}

// Verify returns nil when req carries a signature over the challenge made by
// the key behind req.OldAddress.
func (v *Verifier) Verify(req Request) error {
	if req.MessageHash != v.challenge {
		return dErrors.New(dErrors.CodeInvalidSignature, "message hash does not match the recovery challenge")
	}
	signer, err := RecoverAddress(req.MessageHash, req.Signature)
	if err != nil {
		return err
	}
	if signer != req.OldAddress {
		return dErrors.New(dErrors.CodeInvalidSignature, "signature was not produced by the old address")
	}
	return nil
}
