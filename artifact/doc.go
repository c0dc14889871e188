// Package artifact deletes the build artifacts attached to a CI workflow run.
//
// Core types:
//   - Artifact: A named artifact as reported by the hosting platform
//   - Identity: Owner, repository and run the artifacts belong to
//   - Store: Interface for listing and deleting run artifacts
//   - Filter: Include/exclude decision by artifact name
//   - Sweeper: Lists a run's artifacts and deletes those the filter selects
//
// Implementations:
//   - GitHubStore: GitHub Actions artifacts using go-github
//   - GitLabStore: GitLab pipeline job artifacts using go-gitlab
//   - MockStore: Func-field store for tests
//
// Example usage:
//
//	store, _ := artifact.NewGitHubStore(token, "")
//	sweeper := artifact.NewSweeper(store, input.Map{
//	    "includes": "coverage\ntest-results",
//	})
//	deleted, err := sweeper.Sweep(ctx, artifact.Identity{
//	    Owner: "owner",
//	    Repo:  "repo",
//	    RunID: 42,
//	})
package artifact
