package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ledgerd/internal/compliance"
	"ledgerd/internal/controller"
	"ledgerd/internal/controller/handler/mocks"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
	"ledgerd/pkg/testutil"
)

var (
	caller   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	alice    = common.HexToAddress("0xB0A6Ed7Fa5C6C5cc507840924591C1494eF47D04")
	bob      = common.HexToAddress("0x4A6bBDa876699420965147c26C3F3DF0bDc8eCab")
	metamask = testutil.WalletVectors[2]
)

const (
	validToken = "good-token"
	challenge  = testutil.RecoveryChallenge
)

type tokenValidator map[string]domain.Address

func (v tokenValidator) ValidateCaller(token string) (domain.Address, error) {
	if addr, ok := v[token]; ok {
		return addr, nil
	}
	return domain.Address{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid token")
}

type HandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.svc, tokenValidator{validToken: caller}, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req.Header.Set("Authorization", "Bearer "+validToken)
	return testutil.Do(s.router, req)
}

func (s *HandlerSuite) doAnonymous(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	return testutil.Do(s.router, req)
}

func (s *HandlerSuite) TestAuthentication() {
	s.Run("writes require a bearer token", func() {
		res := s.doAnonymous(http.MethodPost, "/v1/mint", AmountRequest{Amount: "1"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusUnauthorized, string(dErrors.CodeUnauthenticated))
	})

	s.Run("unknown token is rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/mint", AmountRequest{Amount: "1"})
		req.Header.Set("Authorization", "Bearer forged")
		rr := testutil.Do(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthenticated))
	})

	s.Run("reads are public", func() {
		s.svc.EXPECT().TotalSupply().Return(uint256.NewInt(7))
		res := s.doAnonymous(http.MethodGet, "/v1/total-supply", nil)
		s.Equal(http.StatusOK, res.Code)
		s.Equal("7", testutil.Decode[TotalSupplyResponse](s.T(), res).TotalSupply)
	})
}

func (s *HandlerSuite) TestMint() {
	s.Run("mints for the caller", func() {
		s.svc.EXPECT().Mint(gomock.Any(), caller, uint256.NewInt(48000)).Return(uint256.NewInt(48000), nil)
		res := s.do(http.MethodPost, "/v1/mint", AmountRequest{Amount: "48000"})
		s.Equal(http.StatusOK, res.Code)
		body := testutil.Decode[BalanceResponse](s.T(), res)
		s.Equal(caller.Hex(), body.Address)
		s.Equal("48000", body.Balance)
	})

	s.Run("amount must be decimal", func() {
		res := s.do(http.MethodPost, "/v1/mint", AmountRequest{Amount: "0x10"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidAmount))
	})

	s.Run("unknown fields are rejected", func() {
		req := testutil.NewRawRequest(http.MethodPost, "/v1/mint", `{"amount":"1","extra":true}`)
		req.Header.Set("Authorization", "Bearer "+validToken)
		rr := testutil.Do(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("role failures map to 403", func() {
		s.svc.EXPECT().Mint(gomock.Any(), caller, uint256.NewInt(666)).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not a system account"))
		res := s.do(http.MethodPost, "/v1/mint", AmountRequest{Amount: "666"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusForbidden, string(dErrors.CodeUnauthorized))
	})
}

func (s *HandlerSuite) TestMintToAndBurnFrom() {
	s.svc.EXPECT().MintTo(gomock.Any(), caller, alice, uint256.NewInt(82300)).Return(uint256.NewInt(82300), nil)
	res := s.do(http.MethodPost, "/v1/mint-to", MintToRequest{To: alice.Hex(), Amount: "82300"})
	s.Equal(http.StatusOK, res.Code)
	s.Equal(alice.Hex(), testutil.Decode[BalanceResponse](s.T(), res).Address)

	s.svc.EXPECT().BurnFrom(gomock.Any(), caller, alice, uint256.NewInt(82000)).Return(uint256.NewInt(300), nil)
	res = s.do(http.MethodPost, "/v1/burn-from", BurnFromRequest{From: alice.Hex(), Amount: "82000"})
	s.Equal(http.StatusOK, res.Code)
	s.Equal("300", testutil.Decode[BalanceResponse](s.T(), res).Balance)

	s.svc.EXPECT().Burn(gomock.Any(), caller, uint256.NewInt(1)).
		Return(nil, dErrors.New(dErrors.CodeInsufficientBalance, "burn amount exceeds balance"))
	res = s.do(http.MethodPost, "/v1/burn", AmountRequest{Amount: "1"})
	testutil.AssertStatusAndError(s.T(), res, http.StatusUnprocessableEntity, string(dErrors.CodeInsufficientBalance))

	s.Run("bad checksum is rejected before the service", func() {
		res := s.do(http.MethodPost, "/v1/mint-to", MintToRequest{To: "0xb0A6Ed7Fa5C6C5cc507840924591C1494eF47D04", Amount: "1"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func (s *HandlerSuite) TestTransfer() {
	s.Run("returns both balances", func() {
		s.svc.EXPECT().Transfer(gomock.Any(), caller, bob, uint256.NewInt(3400)).Return(controller.TransferResult{
			From:        caller,
			To:          bob,
			FromBalance: uint256.NewInt(84600),
			ToBalance:   uint256.NewInt(3400),
		}, nil)
		res := s.do(http.MethodPost, "/v1/transfer", TransferRequest{To: bob.Hex(), Amount: "3400"})
		s.Equal(http.StatusOK, res.Code)
		body := testutil.Decode[TransferResponse](s.T(), res)
		s.Equal("84600", body.FromBalance)
		s.Equal("3400", body.ToBalance)
	})

	s.Run("compliance denial maps to 422", func() {
		s.svc.EXPECT().Transfer(gomock.Any(), caller, bob, uint256.NewInt(1840)).
			Return(controller.TransferResult{}, dErrors.New(dErrors.CodeComplianceDenied, "sender is not approved"))
		res := s.do(http.MethodPost, "/v1/transfer", TransferRequest{To: bob.Hex(), Amount: "1840"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusUnprocessableEntity, string(dErrors.CodeComplianceDenied))
	})

	s.Run("internal errors hide their message", func() {
		s.svc.EXPECT().Transfer(gomock.Any(), caller, bob, uint256.NewInt(1)).
			Return(controller.TransferResult{}, dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "failed to persist ledger change"))
		res := s.do(http.MethodPost, "/v1/transfer", TransferRequest{To: bob.Hex(), Amount: "1"})
		s.Equal(http.StatusInternalServerError, res.Code)
		body := testutil.Decode[map[string]string](s.T(), res)
		s.Equal(string(dErrors.CodeInternal), body["error"])
		s.Empty(body["error_description"])
	})
}

func (s *HandlerSuite) TestRecover() {
	s.Run("accepts a packed signature", func() {
		s.svc.EXPECT().Recover(gomock.Any(), caller, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Address, req recovery.Request) (*uint256.Int, error) {
				s.Equal(alice, req.OldAddress)
				s.Equal(bob, req.NewAddress)
				s.Equal(uint8(28), req.V)
				return uint256.NewInt(13), nil
			})
		res := s.do(http.MethodPost, "/v1/recover", RecoverRequest{
			OldAddress: alice.Hex(),
			NewAddress: bob.Hex(),
			Hash:       challenge,
			Signature:  metamask.Signature,
		})
		s.Equal(http.StatusOK, res.Code)
		s.Equal("13", testutil.Decode[RecoverResponse](s.T(), res).Moved)
	})

	s.Run("accepts split components", func() {
		v := uint8(1)
		s.svc.EXPECT().Recover(gomock.Any(), caller, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Address, req recovery.Request) (*uint256.Int, error) {
				s.Equal(uint8(1), req.V)
				s.Equal(byte(0x1e), req.R[0])
				s.Equal(byte(0x64), req.S[0])
				return new(uint256.Int), nil
			})
		res := s.do(http.MethodPost, "/v1/recover", RecoverRequest{
			OldAddress: alice.Hex(),
			NewAddress: bob.Hex(),
			Hash:       challenge,
			V:          &v,
			R:          metamask.Signature[:66],
			S:          "0x" + metamask.Signature[66:130],
		})
		s.Equal(http.StatusOK, res.Code)
		s.Equal("0", testutil.Decode[RecoverResponse](s.T(), res).Moved)
	})

	s.Run("short signature", func() {
		res := s.do(http.MethodPost, "/v1/recover", RecoverRequest{
			OldAddress: alice.Hex(),
			NewAddress: bob.Hex(),
			Hash:       challenge,
			Signature:  "0x1234",
		})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidSignature))
	})

	s.Run("missing signature", func() {
		res := s.do(http.MethodPost, "/v1/recover", RecoverRequest{OldAddress: alice.Hex(), NewAddress: bob.Hex(), Hash: challenge})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("zero destination", func() {
		res := s.do(http.MethodPost, "/v1/recover", RecoverRequest{
			OldAddress: alice.Hex(),
			NewAddress: domain.ZeroAddress.Hex(),
			Hash:       challenge,
			Signature:  metamask.Signature,
		})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func (s *HandlerSuite) TestSystemAccounts() {
	s.svc.EXPECT().AddSystemAccount(gomock.Any(), caller, alice).Return(true, nil)
	res := s.do(http.MethodPost, "/v1/system-accounts", AddressRequest{Address: alice.Hex()})
	s.Equal(http.StatusOK, res.Code)
	added := testutil.Decode[SystemAccountResponse](s.T(), res)
	s.True(added.SystemAccount)
	s.Require().NotNil(added.Changed)
	s.True(*added.Changed)

	s.svc.EXPECT().RemoveSystemAccount(gomock.Any(), caller, alice).Return(false, nil)
	res = s.do(http.MethodDelete, "/v1/system-accounts/"+alice.Hex(), nil)
	s.Equal(http.StatusOK, res.Code)
	s.False(*testutil.Decode[SystemAccountResponse](s.T(), res).Changed)

	s.svc.EXPECT().IsSystemAccount(bob).Return(true)
	res = s.doAnonymous(http.MethodGet, "/v1/system-accounts/"+bob.Hex(), nil)
	s.True(testutil.Decode[SystemAccountResponse](s.T(), res).SystemAccount)

	s.svc.EXPECT().SystemAccounts().Return([]domain.Address{caller, bob})
	res = s.doAnonymous(http.MethodGet, "/v1/system-accounts", nil)
	s.Equal([]string{caller.Hex(), bob.Hex()}, testutil.Decode[SystemAccountsResponse](s.T(), res).SystemAccounts)

	res = s.doAnonymous(http.MethodGet, "/v1/system-accounts/nope", nil)
	testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
}

func (s *HandlerSuite) TestValidator() {
	s.Run("replaces the validator", func() {
		s.svc.EXPECT().SetValidator(gomock.Any(), caller, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Address, v compliance.Validator) error {
				s.Equal(compliance.KindBlacklist, v.Kind())
				s.False(v.Approve(alice))
				return nil
			})
		s.svc.EXPECT().Validator().Return(compliance.Config{Kind: compliance.KindBlacklist, Banned: []domain.Address{alice}})
		res := s.do(http.MethodPut, "/v1/validator", ValidatorRequest{Kind: "blacklist", Banned: []string{alice.Hex()}})
		s.Equal(http.StatusOK, res.Code)
		s.Equal([]string{alice.Hex()}, testutil.Decode[ValidatorResponse](s.T(), res).Banned)
	})

	s.Run("unknown kind", func() {
		res := s.do(http.MethodPut, "/v1/validator", ValidatorRequest{Kind: "whitelist"})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("allow all with bans", func() {
		res := s.do(http.MethodPut, "/v1/validator", ValidatorRequest{Kind: "allow_all", Banned: []string{alice.Hex()}})
		testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("ban and unban", func() {
		s.svc.EXPECT().Ban(gomock.Any(), caller, alice).Return(true, nil)
		res := s.do(http.MethodPost, "/v1/validator/bans", AddressRequest{Address: alice.Hex()})
		s.Equal(http.StatusOK, res.Code)
		s.True(testutil.Decode[BanResponse](s.T(), res).Banned)

		s.svc.EXPECT().Unban(gomock.Any(), caller, alice).Return(true, nil)
		res = s.do(http.MethodDelete, "/v1/validator/bans/"+alice.Hex(), nil)
		s.Equal(http.StatusOK, res.Code)
		s.False(testutil.Decode[BanResponse](s.T(), res).Banned)
	})

	s.Run("read is public", func() {
		s.svc.EXPECT().Validator().Return(compliance.Config{Kind: compliance.KindAllowAll})
		res := s.doAnonymous(http.MethodGet, "/v1/validator", nil)
		body := testutil.Decode[ValidatorResponse](s.T(), res)
		s.Equal("allow_all", body.Kind)
		s.Empty(body.Banned)
	})
}

func (s *HandlerSuite) TestOwnership() {
	s.svc.EXPECT().TransferOwnership(gomock.Any(), caller, alice).Return(nil)
	res := s.do(http.MethodPut, "/v1/owner", AddressRequest{Address: alice.Hex()})
	s.Equal(http.StatusOK, res.Code)
	s.Equal(alice.Hex(), testutil.Decode[OwnerResponse](s.T(), res).Owner)

	res = s.do(http.MethodPut, "/v1/owner", AddressRequest{Address: domain.ZeroAddress.Hex()})
	testutil.AssertStatusAndError(s.T(), res, http.StatusBadRequest, string(dErrors.CodeInvalidInput))

	s.svc.EXPECT().Owner().Return(bob)
	res = s.doAnonymous(http.MethodGet, "/v1/owner", nil)
	s.Equal(bob.Hex(), testutil.Decode[OwnerResponse](s.T(), res).Owner)
}

func (s *HandlerSuite) TestBalanceOf() {
	s.svc.EXPECT().BalanceOf(alice).Return(uint256.NewInt(13))
	res := s.doAnonymous(http.MethodGet, "/v1/balances/"+alice.Hex(), nil)
	s.Equal(http.StatusOK, res.Code)
	s.Equal("13", testutil.Decode[BalanceResponse](s.T(), res).Balance)
}
