package action

import (
	"fmt"
	"strconv"

	"github.com/randalmurphal/artifactsweep/artifact"
)

// Platform identifies the CI system running the step.
type Platform string

// Supported platforms.
const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
	PlatformLocal  Platform = "local"
)

// GetenvFunc looks up an environment variable.
type GetenvFunc func(key string) string

// DetectPlatform inspects the CI marker variables.
func DetectPlatform(getenv GetenvFunc) Platform {
	switch {
	case getenv("GITHUB_ACTIONS") == "true":
		return PlatformGitHub
	case getenv("GITLAB_CI") == "true":
		return PlatformGitLab
	default:
		return PlatformLocal
	}
}

// ParsePlatform parses a platform name. "auto" and "" defer to DetectPlatform.
func ParsePlatform(name string, getenv GetenvFunc) (Platform, error) {
	switch name {
	case "", "auto":
		return DetectPlatform(getenv), nil
	case string(PlatformGitHub), string(PlatformGitLab), string(PlatformLocal):
		return Platform(name), nil
	default:
		return "", fmt.Errorf("unknown platform %q (want github, gitlab or auto)", name)
	}
}

// IdentityFromGitLab reads the pipeline identity of a GitLab CI job.
func IdentityFromGitLab(getenv GetenvFunc) (artifact.Identity, error) {
	id := artifact.Identity{
		Owner: getenv("CI_PROJECT_NAMESPACE"),
		Repo:  getenv("CI_PROJECT_NAME"),
	}

	if raw := getenv("CI_PIPELINE_ID"); raw != "" {
		runID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return artifact.Identity{}, fmt.Errorf("parse CI_PIPELINE_ID: %w", err)
		}
		id.RunID = runID
	}

	if err := id.Validate(); err != nil {
		return artifact.Identity{}, err
	}
	return id, nil
}
