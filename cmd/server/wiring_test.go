package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerd/internal/controller"
	"ledgerd/internal/controller/handler"
	jwttoken "ledgerd/internal/jwt_token"
	"ledgerd/internal/ledger/store/memory"
	"ledgerd/internal/platform/config"
	"ledgerd/internal/platform/metrics"
	"ledgerd/pkg/domain"
	"ledgerd/pkg/testutil"
)

var (
	owner  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	minter = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func newTestServer(t *testing.T) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	svc, err := controller.New(context.Background(), memory.New(), controller.Config{
		Owner:          owner,
		SystemAccounts: []domain.Address{minter},
		Challenge:      common.HexToHash(config.DefaultChallenge),
	}, controller.WithLogger(log), controller.WithMetrics(m))
	require.NoError(t, err)

	jwtService := jwttoken.NewJWTService("test-key", "ledgerd", "ledgerd")
	return newRouter(handler.New(svc, jwtService, log), log, m, reg), jwtService
}

func bearer(t *testing.T, svc *jwttoken.JWTService, addr domain.Address) string {
	t.Helper()
	token, err := svc.GenerateCallerToken(addr, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	router, jwtService := newTestServer(t)

	testutil.Given(t, "a running ledger", func(t *testing.T) {
		testutil.When(t, "probing health", func(t *testing.T) {
			rr := testutil.Do(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			testutil.Then(t, "it answers ok with a request id", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
			})
		})

		testutil.When(t, "the minter mints to alice and alice transfers back", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/mint-to", handler.MintToRequest{To: alice.Hex(), Amount: "1000"})
			req.Header.Set("Authorization", bearer(t, jwtService, minter))
			rr := testutil.Do(router, req)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			req = testutil.NewJSONRequest(t, http.MethodPost, "/v1/transfer", handler.TransferRequest{To: minter.Hex(), Amount: "250"})
			req.Header.Set("Authorization", bearer(t, jwtService, alice))
			rr = testutil.Do(router, req)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			testutil.Then(t, "balances and supply are visible to anyone", func(t *testing.T) {
				rr := testutil.Do(router, httptest.NewRequest(http.MethodGet, "/v1/balances/"+alice.Hex(), nil))
				assert.Equal(t, "750", testutil.Decode[handler.BalanceResponse](t, rr).Balance)

				rr = testutil.Do(router, httptest.NewRequest(http.MethodGet, "/v1/total-supply", nil))
				assert.Equal(t, "1000", testutil.Decode[handler.TotalSupplyResponse](t, rr).TotalSupply)
			})
		})

		testutil.When(t, "alice tries to mint", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/mint", handler.AmountRequest{Amount: "666"})
			req.Header.Set("Authorization", bearer(t, jwtService, alice))
			rr := testutil.Do(router, req)

			testutil.Then(t, "it is forbidden", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "unauthorized")
			})
		})

		testutil.When(t, "scraping metrics", func(t *testing.T) {
			rr := testutil.Do(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			testutil.Then(t, "controller and http series are exported", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.Contains(t, rr.Body.String(), "ledgerd_operations_total")
				assert.Contains(t, rr.Body.String(), "ledgerd_http_request_duration_seconds")
			})
		})

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			rr := testutil.Do(router, httptest.NewRequest(http.MethodGet, "/v2/nothing", nil))
			testutil.Then(t, "it returns the error envelope", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})
	})
}
