package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "user not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Not Found") {
		t.Errorf("error message should contain title, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "user not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	empty := &ValidationError{}
	if empty.Error() != "validation failed" {
		t.Errorf("unexpected message: %s", empty.Error())
	}

	ve := &ValidationError{Fields: []FieldError{{Field: "price", Message: "price must be greater than zero"}}}
	if !strings.Contains(ve.Error(), "price") {
		t.Errorf("message should name the failing field, got: %s", ve.Error())
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	t.Parallel()

	pd := NewConflictError("email already registered")
	rec := httptest.NewRecorder()

	pd.WriteJSON(rec)

	if got := rec.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %s", got)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	var decoded ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if decoded.Detail != "email already registered" {
		t.Errorf("unexpected detail: %s", decoded.Detail)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewValidationError_BuildsDetailFromFields(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "rating", Message: "rating must be between 1 and 5"},
		{Field: "text", Message: "text is required"},
	})

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", pd.Status)
	}
	if !strings.Contains(pd.Detail, "rating") {
		t.Errorf("detail should mention first field, got: %s", pd.Detail)
	}
	if !strings.Contains(pd.Detail, "1 more") {
		t.Errorf("detail should count remaining errors, got: %s", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(pd.Errors))
	}
}

func TestNewNotFoundError_NamesResource(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("place")

	if pd.Status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", pd.Status)
	}
	if pd.Detail != "place not found" {
		t.Errorf("unexpected detail: %s", pd.Detail)
	}
}
