package artifact

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// DefaultPageSize is the page size of the single listing request.
// 100 is the largest page GitHub and GitLab serve.
const DefaultPageSize = 100

// GitHubStore implements Store for GitHub Actions artifacts.
type GitHubStore struct {
	client *github.Client
}

// NewGitHubStore creates a GitHub store.
// token is a GITHUB_TOKEN, personal access token or GitHub App token.
// apiURL is the REST API root; empty or "https://api.github.com" selects
// github.com, anything else is treated as a GitHub Enterprise Server URL.
func NewGitHubStore(token, apiURL string) (*GitHubStore, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != "https://api.github.com" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("set enterprise URL: %w", err)
		}
	}

	return &GitHubStore{client: client}, nil
}

// ListRunArtifacts implements Store.
func (s *GitHubStore) ListRunArtifacts(ctx context.Context, id Identity) ([]Artifact, error) {
	opts := &github.ListOptions{PerPage: DefaultPageSize}

	list, resp, err := s.client.Actions.ListWorkflowRunArtifacts(ctx, id.Owner, id.Repo, id.RunID, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrRunNotFound, id, err)
		}
		return nil, fmt.Errorf("list workflow run artifacts: %w", err)
	}

	result := make([]Artifact, 0, len(list.Artifacts))
	for _, a := range list.Artifacts {
		result = append(result, artifactFromGitHub(a))
	}
	return result, nil
}

// DeleteArtifact implements Store.
func (s *GitHubStore) DeleteArtifact(ctx context.Context, id Identity, artifactID int64) error {
	resp, err := s.client.Actions.DeleteArtifact(ctx, id.Owner, id.Repo, artifactID)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %d: %w", ErrArtifactNotFound, artifactID, err)
		}
		return fmt.Errorf("delete artifact %d: %w", artifactID, err)
	}
	return nil
}

// artifactFromGitHub converts a GitHub artifact to our Artifact type.
func artifactFromGitHub(a *github.Artifact) Artifact {
	result := Artifact{
		ID:          a.GetID(),
		Name:        a.GetName(),
		SizeInBytes: a.GetSizeInBytes(),
		Expired:     a.GetExpired(),
	}

	if a.CreatedAt != nil {
		t := a.CreatedAt.Time
		result.CreatedAt = &t
	}
	if a.ExpiresAt != nil {
		t := a.ExpiresAt.Time
		result.ExpiresAt = &t
	}

	if run := a.WorkflowRun; run != nil {
		result.WorkflowRun = &RunRef{
			ID:         run.GetID(),
			HeadBranch: run.GetHeadBranch(),
			HeadSHA:    run.GetHeadSHA(),
		}
	}

	return result
}
