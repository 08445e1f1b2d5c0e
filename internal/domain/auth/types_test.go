package auth

import (
	"testing"
	"time"
)

func TestAuthenticatedOutcome(t *testing.T) {
	o := AuthenticatedOutcome()
	if !o.Authenticated {
		t.Fatalf("expected authenticated outcome")
	}
	if o.Reason != "" {
		t.Fatalf("authenticated outcome should carry no reason, got %q", o.Reason)
	}
}

func TestFailed(t *testing.T) {
	for _, reason := range []FailureReason{ReasonOAuthFailed, ReasonMissingEmail, ReasonDuplicateCallback} {
		o := Failed(reason)
		if o.Authenticated {
			t.Fatalf("failed outcome must not be authenticated")
		}
		if o.Reason != reason {
			t.Fatalf("expected reason %q, got %q", reason, o.Reason)
		}
	}
}

func TestFailureReasonValues(t *testing.T) {
	// These strings are forwarded verbatim in login redirects; they must
	// stay stable for clients.
	cases := map[FailureReason]string{
		ReasonOAuthFailed:       "oauth_failed",
		ReasonMissingEmail:      "missing_email",
		ReasonDuplicateCallback: "duplicate_callback",
	}
	for reason, want := range cases {
		if string(reason) != want {
			t.Fatalf("expected %q, got %q", want, reason)
		}
	}
}

func TestClaims_SimpleFields(t *testing.T) {
	c := Claims{UserID: 7, Email: "e@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	if c.UserID != 7 || c.Email != "e@example.com" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}
