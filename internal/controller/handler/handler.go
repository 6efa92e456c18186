// Package handler exposes the ledger controller over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"

	"ledgerd/internal/compliance"
	"ledgerd/internal/controller"
	"ledgerd/internal/platform/middleware"
	"ledgerd/internal/recovery"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
	"ledgerd/pkg/platform/httputil"
	"ledgerd/pkg/requestcontext"
)

// Service is the controller surface the handler needs.
type Service interface {
	Mint(ctx context.Context, caller domain.Address, amount *uint256.Int) (*uint256.Int, error)
	MintTo(ctx context.Context, caller, to domain.Address, amount *uint256.Int) (*uint256.Int, error)
	Burn(ctx context.Context, caller domain.Address, amount *uint256.Int) (*uint256.Int, error)
	BurnFrom(ctx context.Context, caller, from domain.Address, amount *uint256.Int) (*uint256.Int, error)
	Transfer(ctx context.Context, caller, to domain.Address, amount *uint256.Int) (controller.TransferResult, error)
	Recover(ctx context.Context, caller domain.Address, req recovery.Request) (*uint256.Int, error)
	AddSystemAccount(ctx context.Context, caller, addr domain.Address) (bool, error)
	RemoveSystemAccount(ctx context.Context, caller, addr domain.Address) (bool, error)
	IsSystemAccount(addr domain.Address) bool
	SystemAccounts() []domain.Address
	SetValidator(ctx context.Context, caller domain.Address, v compliance.Validator) error
	Validator() compliance.Config
	Ban(ctx context.Context, caller, addr domain.Address) (bool, error)
	Unban(ctx context.Context, caller, addr domain.Address) (bool, error)
	TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error
	Owner() domain.Address
	BalanceOf(addr domain.Address) *uint256.Int
	TotalSupply() *uint256.Int
}

type Handler struct {
	svc    Service
	auth   middleware.CallerValidator
	logger *slog.Logger
	// authed runs after RequireCaller on mutating routes.
	authed []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithAuthenticatedMiddleware adds middleware that runs after the caller is
// known, such as per-caller rate limiting.
func WithAuthenticatedMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.authed = append(h.authed, mw...)
	}
}

func New(svc Service, auth middleware.CallerValidator, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, auth: auth, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the /v1 routes. Reads are public; writes need a bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/balances/{address}", h.handleBalanceOf)
		r.Get("/total-supply", h.handleTotalSupply)
		r.Get("/owner", h.handleGetOwner)
		r.Get("/system-accounts", h.handleListSystemAccounts)
		r.Get("/system-accounts/{address}", h.handleIsSystemAccount)
		r.Get("/validator", h.handleGetValidator)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCaller(h.auth, h.logger))
			r.Use(h.authed...)

			r.Post("/mint", h.handleMint)
			r.Post("/mint-to", h.handleMintTo)
			r.Post("/burn", h.handleBurn)
			r.Post("/burn-from", h.handleBurnFrom)
			r.Post("/transfer", h.handleTransfer)
			r.Post("/recover", h.handleRecover)
			r.Post("/system-accounts", h.handleAddSystemAccount)
			r.Delete("/system-accounts/{address}", h.handleRemoveSystemAccount)
			r.Put("/validator", h.handleSetValidator)
			r.Post("/validator/bans", h.handleBan)
			r.Delete("/validator/bans/{address}", h.handleUnban)
			r.Put("/owner", h.handleTransferOwnership)
		})
	})
}

// caller returns the authenticated address. A missing caller means the route
// was registered without RequireCaller.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (domain.Address, bool) {
	caller, ok := requestcontext.Caller(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "caller missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return domain.Address{}, false
	}
	return caller, true
}

// fail logs at a level matching the error class and writes the envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{
		"op", op,
		"code", string(dErrors.CodeOf(err)),
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "mint", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "mint", err)
		return
	}
	balance, err := h.svc.Mint(r.Context(), caller, amount)
	if err != nil {
		h.fail(w, r, "mint", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Address: caller.Hex(), Balance: domain.FormatAmount(balance)})
}

func (h *Handler) handleMintTo(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req MintToRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "mint_to", err)
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		h.fail(w, r, "mint_to", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "mint_to", err)
		return
	}
	balance, err := h.svc.MintTo(r.Context(), caller, to, amount)
	if err != nil {
		h.fail(w, r, "mint_to", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Address: to.Hex(), Balance: domain.FormatAmount(balance)})
}

func (h *Handler) handleBurn(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "burn", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "burn", err)
		return
	}
	balance, err := h.svc.Burn(r.Context(), caller, amount)
	if err != nil {
		h.fail(w, r, "burn", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Address: caller.Hex(), Balance: domain.FormatAmount(balance)})
}

func (h *Handler) handleBurnFrom(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req BurnFromRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "burn_from", err)
		return
	}
	from, err := parseAddress("from", req.From)
	if err != nil {
		h.fail(w, r, "burn_from", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "burn_from", err)
		return
	}
	balance, err := h.svc.BurnFrom(r.Context(), caller, from, amount)
	if err != nil {
		h.fail(w, r, "burn_from", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Address: from.Hex(), Balance: domain.FormatAmount(balance)})
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "transfer", err)
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		h.fail(w, r, "transfer", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "transfer", err)
		return
	}
	res, err := h.svc.Transfer(r.Context(), caller, to, amount)
	if err != nil {
		h.fail(w, r, "transfer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferResponse{
		From:        res.From.Hex(),
		To:          res.To.Hex(),
		FromBalance: domain.FormatAmount(res.FromBalance),
		ToBalance:   domain.FormatAmount(res.ToBalance),
	})
}

func (h *Handler) handleRecover(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req RecoverRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "recover", err)
		return
	}
	rr, err := req.toDomain()
	if err != nil {
		h.fail(w, r, "recover", err)
		return
	}
	moved, err := h.svc.Recover(r.Context(), caller, rr)
	if err != nil {
		h.fail(w, r, "recover", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RecoverResponse{
		OldAddress: rr.OldAddress.Hex(),
		NewAddress: rr.NewAddress.Hex(),
		Moved:      domain.FormatAmount(moved),
	})
}
