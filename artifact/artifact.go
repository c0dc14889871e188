package artifact

import (
	"context"
	"fmt"
	"time"
)

// Artifact is a build artifact attached to a workflow run.
// Name is the only field used for matching.
type Artifact struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SizeInBytes int64      `json:"size_in_bytes,omitempty"`
	Expired     bool       `json:"expired"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	WorkflowRun *RunRef    `json:"workflow_run,omitempty"`
}

// RunRef references the run that produced an artifact.
type RunRef struct {
	ID         int64  `json:"id"`
	HeadBranch string `json:"head_branch,omitempty"`
	HeadSHA    string `json:"head_sha,omitempty"`
}

// String returns the compact form used in log lines.
func (a Artifact) String() string {
	if a.WorkflowRun == nil {
		return fmt.Sprintf("{id:%d name:%q}", a.ID, a.Name)
	}
	return fmt.Sprintf("{id:%d name:%q workflow_run_id:%d}", a.ID, a.Name, a.WorkflowRun.ID)
}

// Identity locates a workflow run.
type Identity struct {
	Owner string // Account or namespace owning the repository
	Repo  string // Repository or project name
	RunID int64  // Workflow run (GitHub) or pipeline (GitLab) ID
}

// Validate checks that all fields are set.
func (id Identity) Validate() error {
	if id.Owner == "" || id.Repo == "" {
		return fmt.Errorf("%w: owner and repo are required", ErrInvalidIdentity)
	}
	if id.RunID <= 0 {
		return fmt.Errorf("%w: run ID must be positive, got %d", ErrInvalidIdentity, id.RunID)
	}
	return nil
}

// String returns "owner/repo#run".
func (id Identity) String() string {
	return fmt.Sprintf("%s/%s#%d", id.Owner, id.Repo, id.RunID)
}

// Store is the remote artifact API.
type Store interface {
	// ListRunArtifacts returns the artifacts of a run in the order the
	// platform reports them. Implementations make a single request.
	ListRunArtifacts(ctx context.Context, id Identity) ([]Artifact, error)

	// DeleteArtifact deletes one artifact from the run's repository.
	DeleteArtifact(ctx context.Context, id Identity, artifactID int64) error
}
