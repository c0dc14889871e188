package artifact

import "context"

// MockStore is a mock implementation of Store for testing.
// It records every delete request it receives.
type MockStore struct {
	ListRunArtifactsFunc func(ctx context.Context, id Identity) ([]Artifact, error)
	DeleteArtifactFunc   func(ctx context.Context, id Identity, artifactID int64) error

	ListCalls int
	Deleted   []int64
}

// ListRunArtifacts implements Store.
func (m *MockStore) ListRunArtifacts(ctx context.Context, id Identity) ([]Artifact, error) {
	m.ListCalls++
	if m.ListRunArtifactsFunc != nil {
		return m.ListRunArtifactsFunc(ctx, id)
	}
	return []Artifact{}, nil
}

// DeleteArtifact implements Store.
func (m *MockStore) DeleteArtifact(ctx context.Context, id Identity, artifactID int64) error {
	m.Deleted = append(m.Deleted, artifactID)
	if m.DeleteArtifactFunc != nil {
		return m.DeleteArtifactFunc(ctx, id, artifactID)
	}
	return nil
}
