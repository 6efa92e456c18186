package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledgerd/pkg/domain"
	"ledgerd/pkg/platform/httputil"
)

func (h *Handler) handleBalanceOf(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress("address", chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "balance_of", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{
		Address: addr.Hex(),
		Balance: domain.FormatAmount(h.svc.BalanceOf(addr)),
	})
}

func (h *Handler) handleTotalSupply(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, TotalSupplyResponse{TotalSupply: domain.FormatAmount(h.svc.TotalSupply())})
}

func (h *Handler) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: h.svc.Owner().Hex()})
}

func (h *Handler) handleListSystemAccounts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, SystemAccountsResponse{SystemAccounts: hexList(h.svc.SystemAccounts())})
}

func (h *Handler) handleIsSystemAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress("address", chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "is_system_account", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SystemAccountResponse{Address: addr.Hex(), SystemAccount: h.svc.IsSystemAccount(addr)})
}

func (h *Handler) handleGetValidator(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toValidatorResponse(h.svc.Validator()))
}
