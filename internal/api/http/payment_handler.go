package http

import (
	"net/http"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"
)

// PaymentHandler exposes the payment matching workflow.
type PaymentHandler struct {
	matching service.PaymentMatchingService
}

func NewPaymentHandler(matching service.PaymentMatchingService) *PaymentHandler {
	return &PaymentHandler{matching: matching}
}

type matchPaymentRequest struct {
	DepartmentID int32  `json:"departmentId"`
	UserID       int32  `json:"userId,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

// Match assigns an unmatched payment to a member, either by explicit
// department/user identity or by the member's payment reference.
func (h *PaymentHandler) Match(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	paymentID, err := pathID(r, "paymentID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req matchPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.DepartmentID < 1 {
		writeError(w, domain.E(domain.KindInvalid, "departmentId is required"))
		return
	}

	var payment *domain.Payment
	if req.Reference != "" {
		payment, err = h.matching.MatchByReference(r.Context(), paymentID, orgID, req.DepartmentID, req.Reference)
	} else if req.UserID > 0 {
		payment, err = h.matching.MatchByIdentity(r.Context(), paymentID, orgID, req.DepartmentID, req.UserID)
	} else {
		err = domain.E(domain.KindInvalid, "either userId or reference is required")
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Unmatch reverts a payment to the unmatched pool.
func (h *PaymentHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	paymentID, err := pathID(r, "paymentID")
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.matching.Unmatch(r.Context(), paymentID, orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// ListUnmatched pages through the organization's unmatched payments.
func (h *PaymentHandler) ListUnmatched(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 20)

	payments, total, err := h.matching.ListUnmatched(r.Context(), orgID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payments": payments,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
