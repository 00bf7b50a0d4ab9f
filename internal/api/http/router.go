package http

import (
	"net/http"

	"fundledger-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles the endpoint handlers the router wires up.
type Handlers struct {
	Payments    *PaymentHandler
	Claims      *ClaimHandler
	Withdrawals *WithdrawalHandler
	Invites     *InviteHandler
	Reports     *ReportHandler
}

// NewRouter builds the HTTP routing table. Invite validation and acceptance
// are public; everything else requires a bearer token.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/invites/{code}", h.Invites.Validate).Methods(http.MethodGet)
	public.HandleFunc("/invites/accept", h.Invites.Accept).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(Authenticate(tokens))

	api.HandleFunc("/orgs/{orgID}/payments/unmatched", h.Payments.ListUnmatched).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/payments/{paymentID}/match", h.Payments.Match).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/payments/{paymentID}/unmatch", h.Payments.Unmatch).Methods(http.MethodPost)

	api.HandleFunc("/orgs/{orgID}/claims", h.Claims.Submit).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/claims/{claimID}/approve", h.Claims.Approve).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/claims/{claimID}/reject", h.Claims.Reject).Methods(http.MethodPost)
	api.HandleFunc("/departments/{departmentID}/claims", h.Claims.ListByDepartment).Methods(http.MethodGet)

	api.HandleFunc("/orgs/{orgID}/withdrawals", h.Withdrawals.Request).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/withdrawals/{withdrawalID}/approve", h.Withdrawals.Approve).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/withdrawals/{withdrawalID}/verify-otp", h.Withdrawals.VerifyOtp).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/withdrawals/{withdrawalID}/resend-otp", h.Withdrawals.ResendOtp).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/withdrawals/{withdrawalID}/reject", h.Withdrawals.Reject).Methods(http.MethodPost)

	api.HandleFunc("/departments/{departmentID}/invites", h.Invites.Create).Methods(http.MethodPost)

	api.HandleFunc("/departments/{departmentID}/members/{userID}/balance", h.Reports.MemberBalance).Methods(http.MethodGet)
	api.HandleFunc("/departments/{departmentID}/year-summary", h.Reports.DepartmentYearSummary).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/year-summary", h.Reports.OrganizationYearSummary).Methods(http.MethodGet)

	return r
}
