package errors

import (
	"encoding/json"
	"fmt"
)

// Failure is a failure as reported to the runner.
type Failure struct {
	// Err is the underlying error, nil for non-error panic values.
	Err error

	// Message is the text reported on the failure channel.
	Message string

	// Suggestion is an actionable hint for the operator (optional).
	Suggestion string
}

// Error returns Message. The suggestion is reported separately.
func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Messenger provides customizable suggestions.
type Messenger interface {
	// AuthSuggestion is shown when the API rejects the token.
	AuthSuggestion() string

	// PermissionSuggestion is shown when the token lacks a permission.
	PermissionSuggestion() string

	// NotFoundSuggestion is shown when the run or an artifact is missing.
	NotFoundSuggestion() string

	// ConnectionSuggestion is shown when the API cannot be reached.
	ConnectionSuggestion() string
}

// DefaultMessenger provides suggestions for GitHub Actions.
type DefaultMessenger struct{}

func (DefaultMessenger) AuthSuggestion() string {
	return "Check that auth-token is set, e.g. auth-token: ${{ secrets.GITHUB_TOKEN }}."
}

func (DefaultMessenger) PermissionSuggestion() string {
	return "Deleting artifacts needs the actions: write permission. Add it under permissions: in the workflow or job."
}

func (DefaultMessenger) NotFoundSuggestion() string {
	return "The token may not see this repository, or the run or artifact was already removed."
}

func (DefaultMessenger) ConnectionSuggestion() string {
	return "Check the API URL and the runner's network access."
}

// Option configures Describe.
type Option func(*describeConfig)

type describeConfig struct {
	messenger Messenger
}

// WithMessenger sets a custom messenger.
func WithMessenger(m Messenger) Option {
	return func(c *describeConfig) {
		c.messenger = m
	}
}

// Describe builds the Failure for an error or recovered panic value.
// The message is the error's text unchanged; values that are not errors
// are serialized.
func Describe(v any, opts ...Option) *Failure {
	cfg := &describeConfig{messenger: DefaultMessenger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	f := &Failure{Message: Message(v)}

	err, ok := v.(error)
	if !ok {
		return f
	}
	f.Err = err

	switch {
	case IsAuthError(err):
		f.Suggestion = cfg.messenger.AuthSuggestion()
	case IsPermissionError(err):
		f.Suggestion = cfg.messenger.PermissionSuggestion()
	case IsNotFoundError(err):
		f.Suggestion = cfg.messenger.NotFoundSuggestion()
	case IsConnectionError(err):
		f.Suggestion = cfg.messenger.ConnectionSuggestion()
	}
	return f
}

// Message returns err.Error() for errors and the JSON form of any other
// value, falling back to fmt formatting when it cannot be serialized.
func Message(v any) string {
	switch val := v.(type) {
	case nil:
		return "unknown error"
	case error:
		return val.Error()
	case string:
		data, _ := json.Marshal(val)
		return string(data)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
