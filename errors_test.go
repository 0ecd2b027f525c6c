package storefront

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
)

func TestErrorKindPredicates(t *testing.T) {
	cases := []struct {
		err  error
		pred func(error) bool
		name string
	}{
		{connectionError(&net.OpError{Op: "dial"}), IsConnectionError, "connection"},
		{validationError(422, []FieldError{{Field: "email", Message: "taken"}}), IsValidationError, "validation"},
		{authorizationError(401), IsAuthorizationError, "authorization"},
		{serverError(500, "boom"), IsServerError, "server"},
	}
	for _, tc := range cases {
		if !tc.pred(tc.err) {
			t.Fatalf("expected %s predicate to match %v", tc.name, tc.err)
		}
		// Predicates see through wrapping.
		if !tc.pred(fmt.Errorf("fetch: %w", tc.err)) {
			t.Fatalf("expected %s predicate to match wrapped error", tc.name)
		}
	}
	if IsConnectionError(serverError(500, "boom")) {
		t.Fatalf("kinds must not overlap")
	}
	if IsServerError(errors.New("plain")) {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestGatewayErrorMessages(t *testing.T) {
	err := validationError(422, []FieldError{
		{Field: "email", Message: "taken"},
		{Field: "name", Message: "required"},
	})
	msg := err.Error()
	if !strings.Contains(msg, "email: taken") || !strings.Contains(msg, "name: required") {
		t.Fatalf("unexpected validation message %q", msg)
	}

	if got := serverError(503, "").Error(); !strings.Contains(got, "503") {
		t.Fatalf("expected status in message, got %q", got)
	}

	cause := errors.New("dial tcp: refused")
	conn := connectionError(cause)
	if !errors.Is(conn, cause) {
		t.Fatalf("expected cause preserved through Unwrap")
	}
}
