package artifact

import "errors"

// Artifact store errors
var (
	// ErrNoToken indicates no API token was provided.
	ErrNoToken = errors.New("auth token is required")

	// ErrInvalidIdentity indicates the run identity is incomplete.
	ErrInvalidIdentity = errors.New("invalid run identity")

	// ErrRunNotFound indicates the workflow run does not exist or is not visible to the token.
	ErrRunNotFound = errors.New("workflow run not found")

	// ErrArtifactNotFound indicates the artifact does not exist.
	ErrArtifactNotFound = errors.New("artifact not found")
)
