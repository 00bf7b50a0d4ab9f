package http

import (
	"net/http"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"
)

// ClaimHandler exposes the payment claim workflow.
type ClaimHandler struct {
	claims service.ClaimService
}

func NewClaimHandler(claims service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

type submitClaimRequest struct {
	PaymentID       int32  `json:"paymentId"`
	DepartmentID    int32  `json:"departmentId"`
	TransactionCode string `json:"transactionCode"`
	Details         string `json:"details,omitempty"`
}

func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req submitClaimRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.PaymentID < 1 || req.DepartmentID < 1 || req.TransactionCode == "" {
		writeError(w, domain.E(domain.KindInvalid, "paymentId, departmentId and transactionCode are required"))
		return
	}

	claim, err := h.claims.Submit(r.Context(), req.PaymentID, callerID(r), req.DepartmentID, orgID, req.TransactionCode, req.Details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (h *ClaimHandler) Approve(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	claimID, err := pathID(r, "claimID")
	if err != nil {
		writeError(w, err)
		return
	}

	claim, err := h.claims.Approve(r.Context(), claimID, orgID, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *ClaimHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	claimID, err := pathID(r, "claimID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claim, err := h.claims.Reject(r.Context(), claimID, orgID, callerID(r), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (h *ClaimHandler) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, err := pathID(r, "departmentID")
	if err != nil {
		writeError(w, err)
		return
	}

	status := domain.ClaimStatus(r.URL.Query().Get("status"))
	claims, err := h.claims.ListByDepartment(r.Context(), departmentID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"claims": claims})
}
