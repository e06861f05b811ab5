package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
	"github.com/babylonlabs-io/staking-rewards-ledger/testutil"
	"github.com/babylonlabs-io/staking-rewards-ledger/tests/mocks"
)

type testServer struct {
	*httptest.Server
	service *mocks.LedgerService
	auth    *Authenticator
}

func newTestServer(t *testing.T) *testServer {
	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Auth:   testAuthConfig(),
	}
	service := mocks.NewLedgerService(t)
	srv := httptest.NewServer(NewRouter(cfg, service))
	t.Cleanup(srv.Close)

	return &testServer{
		Server:  srv,
		service: service,
		auth:    NewAuthenticator(cfg.Auth),
	}
}

func (s *testServer) do(t *testing.T, method, path, caller, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if caller != "" {
		token, err := s.auth.SignToken(caller, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func amountOf(expected uint64) interface{} {
	return mock.MatchedBy(func(amount sdkmath.Uint) bool {
		return amount.Equal(sdkmath.NewUint(expected))
	})
}

func TestHealthcheckRoute(t *testing.T) {
	srv := newTestServer(t)

	srv.service.On("Healthcheck", mock.Anything).Return((*types.Error)(nil)).Once()
	resp, body := srv.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["data"])
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))

	srv.service.On("Healthcheck", mock.Anything).
		Return(types.NewInternalServiceError(errors.New("mongo: connection refused"))).Once()
	resp, body = srv.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, types.InternalServiceError.String(), body["errorCode"])
	assert.NotContains(t, body["message"], "mongo")
	assert.Equal(t, resp.Header.Get(traceIDHeader), body["traceId"])
}

func TestTraceIDIsPropagated(t *testing.T) {
	srv := newTestServer(t)
	srv.service.On("Healthcheck", mock.Anything).Return((*types.Error)(nil))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthcheck", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get(traceIDHeader))
}

func TestReadRoutes(t *testing.T) {
	srv := newTestServer(t)
	account := testutil.RandomAddress(t)

	srv.service.On("Status", mock.Anything).Return(&types.LedgerStatus{
		State:        types.StateActive,
		Rewards:      types.RewardsAccruing,
		CurrentBlock: 42,
		TotalStaked:  sdkmath.NewUint(1000),
	}, (*types.Error)(nil))
	resp, body := srv.do(t, http.MethodGet, "/v1/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "ACTIVE", data["state"])
	assert.Equal(t, "1000", data["total_staked"])

	srv.service.On("Account", mock.Anything, account).Return(&types.AccountInfo{
		Account:      account,
		StakedTokens: sdkmath.NewUint(500),
	}, (*types.Error)(nil))
	resp, body = srv.do(t, http.MethodGet, "/v1/accounts/"+account, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, account, data["account"])
	assert.Equal(t, "500", data["staked_tokens"])

	srv.service.On("Account", mock.Anything, "bogus").
		Return((*types.AccountInfo)(nil), types.NewValidationFailedError(errors.New("invalid address"))).Once()
	resp, body = srv.do(t, http.MethodGet, "/v1/accounts/bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, types.ValidationError.String(), body["errorCode"])
}

func TestStakerRoutes(t *testing.T) {
	srv := newTestServer(t)
	caller := testutil.RandomAddress(t)

	t.Run("requires token", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPost, "/v1/stake", "", `{"amount":"100"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, types.Unauthorized.String(), body["errorCode"])
	})

	t.Run("stake", func(t *testing.T) {
		srv.service.On("Stake", mock.Anything, caller, amountOf(100)).Return((*types.Error)(nil)).Once()
		resp, body := srv.do(t, http.MethodPost, "/v1/stake", caller, `{"amount":"100"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", body["data"])
	})

	t.Run("unstake more than staked", func(t *testing.T) {
		srv.service.On("Unstake", mock.Anything, caller, amountOf(5000)).
			Return(types.NewPreconditionFailedError(ledger.ErrInsufficientStake)).Once()
		resp, body := srv.do(t, http.MethodPost, "/v1/unstake", caller, `{"amount":"5000"}`)
		assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
		assert.Equal(t, types.PreconditionFailed.String(), body["errorCode"])
		assert.Contains(t, body["message"], ledger.ErrInsufficientStake.Error())
	})

	t.Run("restake and claim", func(t *testing.T) {
		srv.service.On("RestakeRewards", mock.Anything, caller).Return((*types.Error)(nil)).Once()
		srv.service.On("ClaimRewards", mock.Anything, caller).
			Return(types.NewTransferFailedError(ledger.ErrTransferFailed)).Once()

		resp, _ := srv.do(t, http.MethodPost, "/v1/restake", caller, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body := srv.do(t, http.MethodPost, "/v1/claim", caller, "")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, types.TransferFailed.String(), body["errorCode"])
	})

	invalid := []struct {
		name string
		body string
	}{
		{name: "zero amount", body: `{"amount":"0"}`},
		{name: "negative amount", body: `{"amount":"-5"}`},
		{name: "decimal amount", body: `{"amount":"1.5"}`},
		{name: "missing amount", body: `{}`},
		{name: "unknown field", body: `{"amount":"1","extra":true}`},
		{name: "malformed", body: `{"amount":`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := srv.do(t, http.MethodPost, "/v1/stake", caller, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, types.ValidationError.String(), body["errorCode"])
		})
	}
}

func TestAdminRoutes(t *testing.T) {
	srv := newTestServer(t)
	owner := testutil.RandomAddress(t)
	stranger := testutil.RandomAddress(t)
	destination := testutil.RandomAddress(t)

	t.Run("lifecycle", func(t *testing.T) {
		srv.service.On("Init", mock.Anything, owner).Return((*types.Error)(nil)).Once()
		srv.service.On("Pause", mock.Anything, owner).Return((*types.Error)(nil)).Once()
		srv.service.On("Unpause", mock.Anything, owner).Return((*types.Error)(nil)).Once()

		for _, path := range []string{"/v1/admin/init", "/v1/admin/pause", "/v1/admin/unpause"} {
			resp, _ := srv.do(t, http.MethodPost, path, owner, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("non owner", func(t *testing.T) {
		srv.service.On("Pause", mock.Anything, stranger).
			Return(types.NewForbiddenError(errors.New("caller is not the owner"))).Once()
		resp, body := srv.do(t, http.MethodPost, "/v1/admin/pause", stranger, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, types.Forbidden.String(), body["errorCode"])
	})

	t.Run("switch fees", func(t *testing.T) {
		srv.service.On("SwitchFees", mock.Anything, owner, true, false, true).Return((*types.Error)(nil)).Once()
		req, err := json.Marshal(SwitchFeesRequest{
			Stake:   pkg.Ptr(true),
			Unstake: pkg.Ptr(false),
			Restake: pkg.Ptr(true),
		})
		require.NoError(t, err)
		resp, _ := srv.do(t, http.MethodPost, "/v1/admin/fees", owner, string(req))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := srv.do(t, http.MethodPost, "/v1/admin/fees", owner, `{"stake":true}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, types.ValidationError.String(), body["errorCode"])
	})

	t.Run("switch rewards", func(t *testing.T) {
		srv.service.On("SwitchRewards", mock.Anything, owner, false).Return((*types.Error)(nil)).Once()
		resp, _ := srv.do(t, http.MethodPost, "/v1/admin/rewards", owner, `{"enabled":false}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = srv.do(t, http.MethodPost, "/v1/admin/rewards", owner, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("emergency withdraw", func(t *testing.T) {
		srv.service.On("EmergencyWithdrawRewards", mock.Anything, owner, destination, amountOf(250)).
			Return((*types.Error)(nil)).Once()
		resp, _ := srv.do(t, http.MethodPost, "/v1/admin/emergency-withdraw", owner,
			`{"destination":"`+destination+`","amount":"250"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = srv.do(t, http.MethodPost, "/v1/admin/emergency-withdraw", owner,
			`{"destination":"`+destination+`","amount":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
