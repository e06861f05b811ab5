package api

import (
	"context"
	"errors"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/utils"
)

type AmountRequest struct {
	Amount string `json:"amount"`
}

type SwitchFeesRequest struct {
	Stake   *bool `json:"stake"`
	Unstake *bool `json:"unstake"`
	Restake *bool `json:"restake"`
}

type SwitchRewardsRequest struct {
	Enabled *bool `json:"enabled"`
}

type EmergencyWithdrawRequest struct {
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}

func (h *handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Healthcheck(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, r, "ok")
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, r, status)
}

func (h *handler) account(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Account(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, r, info)
}

func (h *handler) stake(w http.ResponseWriter, r *http.Request) {
	h.amountOperation(w, r, h.service.Stake)
}

func (h *handler) unstake(w http.ResponseWriter, r *http.Request) {
	h.amountOperation(w, r, h.service.Unstake)
}

func (h *handler) restake(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.service.RestakeRewards)
}

func (h *handler) claim(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.service.ClaimRewards)
}

func (h *handler) initLedger(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.service.Init)
}

func (h *handler) pause(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.service.Pause)
}

func (h *handler) unpause(w http.ResponseWriter, r *http.Request) {
	h.callerOperation(w, r, h.service.Unpause)
}

func (h *handler) switchFees(w http.ResponseWriter, r *http.Request) {
	var req SwitchFeesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Stake == nil || req.Unstake == nil || req.Restake == nil {
		writeError(w, r, types.NewValidationFailedError(errors.New("stake, unstake and restake are required")))
		return
	}

	h.callerOperation(w, r, func(ctx context.Context, caller string) *types.Error {
		return h.service.SwitchFees(ctx, caller, *req.Stake, *req.Unstake, *req.Restake)
	})
}

func (h *handler) switchRewards(w http.ResponseWriter, r *http.Request) {
	var req SwitchRewardsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Enabled == nil {
		writeError(w, r, types.NewValidationFailedError(errors.New("enabled is required")))
		return
	}

	h.callerOperation(w, r, func(ctx context.Context, caller string) *types.Error {
		return h.service.SwitchRewards(ctx, caller, *req.Enabled)
	})
}

func (h *handler) emergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	var req EmergencyWithdrawRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, parseErr := utils.ParseAmount(req.Amount)
	if parseErr != nil {
		writeError(w, r, types.NewValidationFailedError(parseErr))
		return
	}

	h.callerOperation(w, r, func(ctx context.Context, caller string) *types.Error {
		return h.service.EmergencyWithdrawRewards(ctx, caller, req.Destination, amount)
	})
}

func (h *handler) amountOperation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, caller string, amount sdkmath.Uint) *types.Error,
) {
	var req AmountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, types.NewValidationFailedError(err))
		return
	}

	h.callerOperation(w, r, func(ctx context.Context, caller string) *types.Error {
		return op(ctx, caller, amount)
	})
}

func (h *handler) callerOperation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, caller string) *types.Error,
) {
	ctx := r.Context()
	if err := op(ctx, CallerFromContext(ctx)); err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, r, "ok")
}
