package artifact

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xanzy/go-gitlab"
)

// GitLabStore implements Store for GitLab CI job artifacts.
//
// A pipeline plays the role of the run and each job that uploaded an
// artifacts archive is one artifact, named after the job. Deleting the
// artifact removes that job's archive.
type GitLabStore struct {
	client *gitlab.Client
}

// NewGitLabStore creates a GitLab store.
// baseURL is the instance API URL (empty for gitlab.com).
func NewGitLabStore(token, baseURL string) (*GitLabStore, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	// Failed requests are reported as is, never retried.
	opts := []gitlab.ClientOptionFunc{gitlab.WithoutRetries()}
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabStore{client: client}, nil
}

// project returns the "namespace/project" path.
func project(id Identity) string {
	return id.Owner + "/" + id.Repo
}

// ListRunArtifacts implements Store.
func (s *GitLabStore) ListRunArtifacts(ctx context.Context, id Identity) ([]Artifact, error) {
	opts := &gitlab.ListJobsOptions{
		ListOptions: gitlab.ListOptions{PerPage: DefaultPageSize},
	}

	jobs, resp, err := s.client.Jobs.ListPipelineJobs(project(id), int(id.RunID), opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrRunNotFound, id, err)
		}
		return nil, fmt.Errorf("list pipeline jobs: %w", err)
	}

	result := make([]Artifact, 0, len(jobs))
	for _, job := range jobs {
		if job.ArtifactsFile.Filename == "" {
			continue
		}
		result = append(result, artifactFromGitLab(job))
	}
	return result, nil
}

// DeleteArtifact implements Store.
func (s *GitLabStore) DeleteArtifact(ctx context.Context, id Identity, artifactID int64) error {
	resp, err := s.client.Jobs.DeleteArtifacts(project(id), int(artifactID), gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %d: %w", ErrArtifactNotFound, artifactID, err)
		}
		return fmt.Errorf("delete job artifacts %d: %w", artifactID, err)
	}
	return nil
}

// artifactFromGitLab converts a GitLab job to our Artifact type.
func artifactFromGitLab(job *gitlab.Job) Artifact {
	result := Artifact{
		ID:          int64(job.ID),
		Name:        job.Name,
		SizeInBytes: int64(job.ArtifactsFile.Size),
		CreatedAt:   job.CreatedAt,
		ExpiresAt:   job.ArtifactsExpireAt,
		WorkflowRun: &RunRef{
			ID:         int64(job.Pipeline.ID),
			HeadBranch: job.Pipeline.Ref,
			HeadSHA:    job.Pipeline.Sha,
		},
	}
	return result
}
