package handler

import (
	"ledgerd/internal/compliance"
	"ledgerd/pkg/domain"
)

type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type TotalSupplyResponse struct {
	TotalSupply string `json:"total_supply"`
}

type TransferResponse struct {
	From        string `json:"from"`
	To          string `json:"to"`
	FromBalance string `json:"from_balance"`
	ToBalance   string `json:"to_balance"`
}

type RecoverResponse struct {
	OldAddress string `json:"old_address"`
	NewAddress string `json:"new_address"`
	Moved      string `json:"moved"`
}

type SystemAccountResponse struct {
	Address       string `json:"address"`
	SystemAccount bool   `json:"system_account"`
	Changed       *bool  `json:"changed,omitempty"`
}

type SystemAccountsResponse struct {
	SystemAccounts []string `json:"system_accounts"`
}

type BanResponse struct {
	Address string `json:"address"`
	Banned  bool   `json:"banned"`
	Changed bool   `json:"changed"`
}

type ValidatorResponse struct {
	Kind   string   `json:"kind"`
	Banned []string `json:"banned"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

func hexList(addrs []domain.Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Hex())
	}
	return out
}

func toValidatorResponse(cfg compliance.Config) ValidatorResponse {
	return ValidatorResponse{Kind: string(cfg.Kind), Banned: hexList(cfg.Banned)}
}
