package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/randalmurphal/artifactsweep/artifact"
)

func TestFailure(t *testing.T) {
	f := &Failure{
		Err:        ErrPermissionDenied,
		Message:    "delete artifact 3: 403 Forbidden",
		Suggestion: "add permissions",
	}

	if f.Error() != "delete artifact 3: 403 Forbidden" {
		t.Errorf("Error() = %q", f.Error())
	}
	if !errors.Is(f, ErrPermissionDenied) {
		t.Error("expected failure to unwrap to ErrPermissionDenied")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"error", errors.New("list failed"), "list failed"},
		{"wrapped error", fmt.Errorf("outer: %w", errors.New("inner")), "outer: inner"},
		{"string", "boom", `"boom"`},
		{"map", map[string]int{"code": 7}, `{"code":7}`},
		{"number", 42, "42"},
		{"nil", nil, "unknown error"},
		{"unserializable", func() {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message(tt.v)
			if tt.name == "unserializable" {
				if got == "" {
					t.Error("expected fmt fallback, got empty message")
				}
				return
			}
			if got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	m := DefaultMessenger{}

	tests := []struct {
		name           string
		v              any
		wantSuggestion string
	}{
		{
			name:           "bad credentials",
			v:              errors.New("GET https://api.github.com/repos/o/r/actions/runs/1/artifacts: 401 Bad credentials []"),
			wantSuggestion: m.AuthSuggestion(),
		},
		{
			name:           "missing token",
			v:              artifact.ErrNoToken,
			wantSuggestion: m.AuthSuggestion(),
		},
		{
			name:           "integration permission",
			v:              errors.New("delete artifact 1: DELETE https://api.github.com/...: 403 Resource not accessible by integration []"),
			wantSuggestion: m.PermissionSuggestion(),
		},
		{
			name:           "run not found",
			v:              fmt.Errorf("%w: o/r#1", artifact.ErrRunNotFound),
			wantSuggestion: m.NotFoundSuggestion(),
		},
		{
			name:           "dial failure",
			v:              errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
			wantSuggestion: m.ConnectionSuggestion(),
		},
		{
			name: "unclassified",
			v:    errors.New("something else"),
		},
		{
			name: "panic value",
			v:    map[string]string{"reason": "bad"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Describe(tt.v)
			if f.Message != Message(tt.v) {
				t.Errorf("Message = %q, want %q", f.Message, Message(tt.v))
			}
			if f.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", f.Suggestion, tt.wantSuggestion)
			}
			if err, ok := tt.v.(error); ok && f.Err != err {
				t.Errorf("Err = %v, want %v", f.Err, err)
			}
		})
	}
}

type customMessenger struct{ DefaultMessenger }

func (customMessenger) PermissionSuggestion() string { return "ask an admin" }

func TestDescribe_WithMessenger(t *testing.T) {
	f := Describe(errors.New("403 Forbidden"), WithMessenger(customMessenger{}))
	if f.Suggestion != "ask an admin" {
		t.Errorf("Suggestion = %q", f.Suggestion)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		auth       bool
		permission bool
		notFound   bool
		connection bool
	}{
		{name: "nil"},
		{name: "sentinel auth", err: ErrNotAuthenticated, auth: true},
		{name: "sentinel permission", err: fmt.Errorf("x: %w", ErrPermissionDenied), permission: true},
		{name: "artifact not found", err: fmt.Errorf("%w: 9", artifact.ErrArtifactNotFound), notFound: true},
		{name: "404 text", err: errors.New("GET ...: 404 Not Found []"), notFound: true},
		{name: "tls", err: errors.New("x509: certificate signed by unknown authority"), connection: true},
		{name: "timeout", err: errors.New("context deadline exceeded"), connection: true},
		{name: "other", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError = %v, want %v", got, tt.auth)
			}
			if got := IsPermissionError(tt.err); got != tt.permission {
				t.Errorf("IsPermissionError = %v, want %v", got, tt.permission)
			}
			if got := IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError = %v, want %v", got, tt.notFound)
			}
			if got := IsConnectionError(tt.err); got != tt.connection {
				t.Errorf("IsConnectionError = %v, want %v", got, tt.connection)
			}
		})
	}
}

func TestMessage_KeepsSuggestionOut(t *testing.T) {
	err := errors.New("401 Bad credentials")
	f := Describe(err)
	if strings.Contains(f.Error(), f.Suggestion) {
		t.Errorf("Error() %q includes suggestion", f.Error())
	}
}
