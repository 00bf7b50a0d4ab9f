package http

import (
	"net/http"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"

	"github.com/gorilla/mux"
)

// InviteHandler exposes invite link creation and redemption.
type InviteHandler struct {
	invites service.InviteService
}

func NewInviteHandler(invites service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type createInviteRequest struct {
	ExpiresOn *time.Time `json:"expiresOn,omitempty"`
	MaxUses   *int32     `json:"maxUses,omitempty"`
	Email     string     `json:"email,omitempty"`
}

func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	departmentID, err := pathID(r, "departmentID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createInviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	link, err := h.invites.CreateLink(r.Context(), departmentID, callerID(r), req.ExpiresOn, req.MaxUses, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Validate reports whether an invite code is still redeemable. Public so the
// signup page can show the department before asking for credentials.
func (h *InviteHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		writeError(w, domain.E(domain.KindInvalid, "invalid code"))
		return
	}

	link, err := h.invites.Validate(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

type acceptInviteRequest struct {
	Code     string `json:"code"`
	Token    string `json:"token,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Accept redeems an invite code, either for the bearer of an existing access
// token or for a brand-new account created from email and password.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptInviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, domain.E(domain.KindInvalid, "code is required"))
		return
	}

	result, err := h.invites.Accept(r.Context(), service.AcceptInviteInput{
		Code:     req.Code,
		Token:    req.Token,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":         result.User,
		"member":       result.Member,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}
