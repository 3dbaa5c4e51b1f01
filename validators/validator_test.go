package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type payload struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(payload{Email: "a@b.org", Rating: 3}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err := v.Validate(payload{Email: "nope", Rating: 9})
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
}
