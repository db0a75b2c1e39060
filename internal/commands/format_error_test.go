package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/tutorchat/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage_APIError(t *testing.T) {
	e := apierrors.NewAPIErrorWithBody(502, "http://localhost:8000/api/chat/", "bad gateway", "upstream down")
	out := formatErrorMessage(e, "Failed")
	if !strings.Contains(out, "HTTP Status: 502") {
		t.Fatalf("expected HTTP status in message, got: %s", out)
	}
	if !strings.Contains(out, "upstream down") {
		t.Fatalf("expected response body in message, got: %s", out)
	}
}

func TestFormatErrorMessage_Hints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{"network", apierrors.NewNetworkErrorWithEndpoint("send", "http://localhost:8000/api/chat/", errors.New("refused")), "tutorchat serve"},
		{"timeout", apierrors.NewTimeoutError("request timed out"), "request_timeout"},
		{"parse", apierrors.NewParseError("no response field", "response"), "endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Request failed")
			if !strings.Contains(out, "Hint") || !strings.Contains(out, tt.hint) {
				t.Fatalf("expected hint containing %q, got: %s", tt.hint, out)
			}
		})
	}
}
