package validation_test

import (
	"strings"
	"testing"

	"github.com/vibetrip/vibetrip-api/errors"
	"github.com/vibetrip/vibetrip-api/validation"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"omitempty,max=32"`
}

func TestValidate_Valid(t *testing.T) {
	p := registerPayload{Email: "trip@example.com", Password: "hunter2"}
	if err := validation.Validate(p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		payload registerPayload
		want    string
	}{
		{"missing email", registerPayload{Password: "x"}, "email: is required"},
		{"bad email", registerPayload{Email: "not-an-email", Password: "x"}, "email: must be a valid email address"},
		{"missing password", registerPayload{Email: "a@b.com"}, "password: is required"},
		{"long username", registerPayload{Email: "a@b.com", Password: "x", Username: strings.Repeat("u", 40)}, "username: must be at most 32 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Validate(tc.payload)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
			}
			if !strings.Contains(appErr.Message, tc.want) {
				t.Errorf("message %q does not contain %q", appErr.Message, tc.want)
			}
		})
	}
}

func TestValidate_DetailsListFields(t *testing.T) {
	err := validation.Validate(registerPayload{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]validation.FieldError)
	if !ok {
		t.Fatalf("expected fields detail, got %T", appErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}
