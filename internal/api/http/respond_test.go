package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindInvalidState, http.StatusConflict},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindNotMember, http.StatusForbidden},
		{domain.KindExpired, http.StatusGone},
		{domain.KindInvalid, http.StatusBadRequest},
		{domain.KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, domain.E(tc.kind, "some message"))
			assert.Equal(t, tc.status, rec.Code)

			var body response
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.kind, body.Error.Kind)
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("test-secret-test-secret-test-secret!")
	middleware := Authenticate(tokens)

	var gotCaller int32
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCaller = callerID(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(42, "user@test.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/orgs/1/payments/unmatched", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(42), gotCaller)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orgs/1/payments/unmatched", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orgs/1/payments/unmatched", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
