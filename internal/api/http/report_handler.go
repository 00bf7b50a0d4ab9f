package http

import (
	"net/http"
	"strconv"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"
)

// ReportHandler exposes carry-forward balance reports.
type ReportHandler struct {
	carryForward service.CarryForwardService
}

func NewReportHandler(carryForward service.CarryForwardService) *ReportHandler {
	return &ReportHandler{carryForward: carryForward}
}

// MemberBalance returns a member's carry-forward position as of an optional
// ?asOf=RFC3339 timestamp, defaulting to now. Departments without a monthly
// contribution have no position and return an empty body.
func (h *ReportHandler) MemberBalance(w http.ResponseWriter, r *http.Request) {
	departmentID, err := pathID(r, "departmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, domain.E(domain.KindInvalid, "asOf must be an RFC 3339 timestamp"))
			return
		}
	}

	result, err := h.carryForward.Calculate(r.Context(), departmentID, userID, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReportHandler) DepartmentYearSummary(w http.ResponseWriter, r *http.Request) {
	departmentID, err := pathID(r, "departmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := queryYear(r)
	if err != nil {
		writeError(w, err)
		return
	}

	results, err := h.carryForward.DepartmentYearSummary(r.Context(), departmentID, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "results": results})
}

func (h *ReportHandler) OrganizationYearSummary(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := queryYear(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.carryForward.OrganizationYearSummary(r.Context(), orgID, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "departments": summary})
}

func queryYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().UTC().Year() - 1, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2200 {
		return 0, domain.E(domain.KindInvalid, "invalid year")
	}
	return year, nil
}
