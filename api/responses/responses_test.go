package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/types"
)

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func TestWriteErrorStoreFailureSurfacesMessage(t *testing.T) {
	resp := httptest.NewRecorder()
	cause := errors.New("pq: connection refused")

	WriteError(context.Background(), nil, resp, pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "create guest"))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	envelope := decodeError(t, resp)
	if envelope.Error.Code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "pq: connection refused" {
		t.Fatalf("expected store message, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorStoreFailureWithoutCause(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteError(context.Background(), nil, resp, pkgerrors.New(pkgerrors.CodeDependency, "archive wedding"))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Message != "archive wedding" {
		t.Fatalf("expected wrapper message, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorUnavailableReads503(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteError(context.Background(), nil, resp, pkgerrors.Wrap(pkgerrors.CodeUnavailable, errors.New("dial tcp: refused"), "database unavailable"))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestWriteErrorInternalHidesDetail(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteError(context.Background(), nil, resp, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("nil pointer"), "boom"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Error.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", envelope.Error.Message)
	}
}
