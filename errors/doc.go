// Package errors turns failures into the message reported to the CI runner
// plus an optional suggestion for the operator.
//
// Core types:
//   - Failure: Reported message, suggestion and the underlying error
//   - Messenger: Interface for customizing suggestions
//
// Sentinel errors for common scenarios:
//   - ErrNotAuthenticated: The token was rejected
//   - ErrPermissionDenied: The token lacks a required permission
//   - ErrNotFound: The run or artifact does not exist
//   - ErrConnectionFailed: The API is unreachable
//
// Example usage:
//
//	defer func() {
//	    if v := recover(); v != nil {
//	        f := errors.Describe(v)
//	        rt.Fail(f.Message)
//	    }
//	}()
//
//	if err := run(); err != nil {
//	    f := errors.Describe(err)
//	    if f.Suggestion != "" {
//	        slog.Warn(f.Suggestion)
//	    }
//	    rt.Fail(f.Message)
//	}
package errors
