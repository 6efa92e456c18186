package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledgerd/pkg/domain"
	"ledgerd/pkg/platform/httputil"
)

func (h *Handler) handleAddSystemAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req AddressRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "add_system_account", err)
		return
	}
	addr, err := parseAddress("address", req.Address)
	if err != nil {
		h.fail(w, r, "add_system_account", err)
		return
	}
	changed, err := h.svc.AddSystemAccount(r.Context(), caller, addr)
	if err != nil {
		h.fail(w, r, "add_system_account", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SystemAccountResponse{Address: addr.Hex(), SystemAccount: true, Changed: &changed})
}

func (h *Handler) handleRemoveSystemAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, err := parseAddress("address", chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "remove_system_account", err)
		return
	}
	changed, err := h.svc.RemoveSystemAccount(r.Context(), caller, addr)
	if err != nil {
		h.fail(w, r, "remove_system_account", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SystemAccountResponse{Address: addr.Hex(), SystemAccount: false, Changed: &changed})
}

func (h *Handler) handleSetValidator(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req ValidatorRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "set_validator", err)
		return
	}
	v, err := req.toDomain()
	if err != nil {
		h.fail(w, r, "set_validator", err)
		return
	}
	if err := h.svc.SetValidator(r.Context(), caller, v); err != nil {
		h.fail(w, r, "set_validator", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toValidatorResponse(h.svc.Validator()))
}

func (h *Handler) handleBan(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req AddressRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "ban", err)
		return
	}
	addr, err := parseAddress("address", req.Address)
	if err != nil {
		h.fail(w, r, "ban", err)
		return
	}
	changed, err := h.svc.Ban(r.Context(), caller, addr)
	if err != nil {
		h.fail(w, r, "ban", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BanResponse{Address: addr.Hex(), Banned: true, Changed: changed})
}

func (h *Handler) handleUnban(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	addr, err := parseAddress("address", chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "unban", err)
		return
	}
	changed, err := h.svc.Unban(r.Context(), caller, addr)
	if err != nil {
		h.fail(w, r, "unban", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BanResponse{Address: addr.Hex(), Banned: false, Changed: changed})
}

func (h *Handler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req AddressRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "transfer_ownership", err)
		return
	}
	newOwner, err := domain.ParseNonZeroAddress(req.Address)
	if err != nil {
		h.fail(w, r, "transfer_ownership", prefixed("address", err))
		return
	}
	if err := h.svc.TransferOwnership(r.Context(), caller, newOwner); err != nil {
		h.fail(w, r, "transfer_ownership", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: newOwner.Hex()})
}
