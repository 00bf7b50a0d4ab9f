package http

import (
	"net/http"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"

	"github.com/shopspring/decimal"
)

// WithdrawalHandler exposes the withdrawal approval workflow.
type WithdrawalHandler struct {
	withdrawals service.WithdrawalService
}

func NewWithdrawalHandler(withdrawals service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

type requestWithdrawalRequest struct {
	DepartmentID int32           `json:"departmentId"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
}

func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req requestWithdrawalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.DepartmentID < 1 {
		writeError(w, domain.E(domain.KindInvalid, "departmentId is required"))
		return
	}

	withdrawal, err := h.withdrawals.Request(r.Context(), req.DepartmentID, callerID(r), orgID, req.Amount, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, withdrawal)
}

func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	withdrawalID, err := pathID(r, "withdrawalID")
	if err != nil {
		writeError(w, err)
		return
	}

	withdrawal, err := h.withdrawals.Approve(r.Context(), withdrawalID, callerID(r), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}

type verifyOtpRequest struct {
	Code string `json:"code"`
}

func (h *WithdrawalHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	withdrawalID, err := pathID(r, "withdrawalID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req verifyOtpRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, domain.E(domain.KindInvalid, "code is required"))
		return
	}

	withdrawal, err := h.withdrawals.VerifyOtp(r.Context(), withdrawalID, callerID(r), orgID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}

func (h *WithdrawalHandler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	withdrawalID, err := pathID(r, "withdrawalID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.withdrawals.ResendOtp(r.Context(), withdrawalID, callerID(r), orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	withdrawalID, err := pathID(r, "withdrawalID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	withdrawal, err := h.withdrawals.Reject(r.Context(), withdrawalID, callerID(r), orgID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}
