package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EgorLis/go-catalog/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{domain.ErrBadCursor, http.StatusBadRequest, domain.ErrCodeBadParams},
		{domain.ErrBadParams, http.StatusBadRequest, domain.ErrCodeBadParams},
		{domain.ErrNotFound, http.StatusNotFound, domain.ErrCodeNotFound},
		{domain.ErrMethodNotAllowed, http.StatusMethodNotAllowed, domain.ErrCodeMethodNotAllowed},
		{domain.ErrRateLimited, http.StatusTooManyRequests, domain.ErrCodeRateLimited},
		{domain.ErrUnexpected, http.StatusInternalServerError, domain.ErrCodeUnexpected},
		// обёрнутые ошибки разворачиваются через errors.Is
		{fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound, domain.ErrCodeNotFound},
		{errors.New("boom"), http.StatusInternalServerError, domain.ErrCodeUnexpected},
	}

	for _, c := range cases {
		status, env := MapDomainError(c.err)
		if status != c.status {
			t.Errorf("%v: status %d, want %d", c.err, status, c.status)
		}
		if env.Success || env.Error == nil || env.Error.Code != c.code {
			t.Errorf("%v: envelope %+v", c.err, env)
		}
	}
}

func TestWriteEnvelopeHeadHasNoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodHead, "/v1/products", nil)
	rec := httptest.NewRecorder()
	WriteEnvelope(rec, req, http.StatusOK, domain.OkData("x"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD got body: %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type %q", ct)
	}
}

func TestWriteDomainError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/products/9", nil)
	rec := httptest.NewRecorder()
	WriteDomainError(rec, req, domain.ErrNotFound)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
	var env domain.APIEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Code != domain.ErrCodeNotFound {
		t.Fatalf("envelope %+v", env)
	}
}
