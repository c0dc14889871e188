// Package cli implements the artifact-sweep command.
package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/artifactsweep/action"
	"github.com/randalmurphal/artifactsweep/artifact"
)

// Configuration keys. They match the step's input names.
const (
	KeyAuthToken  = "auth-token"
	KeyIncludes   = artifact.InputIncludes
	KeyExcludes   = artifact.InputExcludes
	KeyDryRun     = "dry-run"
	KeySummary    = "summary"
	KeyAPIURL     = "api-url"
	KeyPlatform   = "platform"
	KeyRepository = "repository"
	KeyRunID      = "run-id"
)

var validKeys = []string{
	KeyAuthToken, KeyIncludes, KeyExcludes, KeyDryRun, KeySummary,
	KeyAPIURL, KeyPlatform, KeyRepository, KeyRunID,
}

var defaults = map[string]string{
	KeyDryRun:   "false",
	KeySummary:  "true",
	KeyPlatform: "auto",
}

// deps are the process-level collaborators, replaced in tests.
type deps struct {
	getenv   func(string) string
	stdout   io.Writer
	stderr   io.Writer
	newStore func(platform action.Platform, token, apiURL string) (artifact.Store, error)
}

func defaultDeps() deps {
	return deps{
		getenv:   os.Getenv,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		newStore: newStore,
	}
}

// newStore builds the store for the platform.
func newStore(platform action.Platform, token, apiURL string) (artifact.Store, error) {
	if platform == action.PlatformGitLab {
		return artifact.NewGitLabStore(token, apiURL)
	}
	return artifact.NewGitHubStore(token, apiURL)
}

// Execute runs the command and returns the process exit code.
func Execute() int {
	cmd := newRootCmd(defaultDeps())
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

type flags struct {
	authToken  string
	includes   []string
	excludes   []string
	dryRun     bool
	summary    bool
	configFile string
	envFile    string
	repository string
	runID      int64
	platform   string
	apiURL     string
	debug      bool
}

func newRootCmd(d deps) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "artifact-sweep",
		Short: "Delete the artifacts of the current workflow run",
		Long: `Lists the artifacts attached to the current workflow run and deletes
those selected by the includes/excludes inputs. An empty includes list
selects every artifact; excludes always win over includes.

Inside GitHub Actions inputs are read from INPUT_<NAME> and the run from
GITHUB_REPOSITORY and GITHUB_RUN_ID. Flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(d, f, overrides(cmd, f))
			return s.execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&f.authToken, KeyAuthToken, "", "API token (default: input auth-token)")
	cmd.Flags().StringArrayVar(&f.includes, KeyIncludes, nil, "Artifact name to delete; repeatable (default: all)")
	cmd.Flags().StringArrayVar(&f.excludes, KeyExcludes, nil, "Artifact name to keep; repeatable, wins over --includes")
	cmd.Flags().BoolVar(&f.dryRun, KeyDryRun, false, "Report matching artifacts without deleting them")
	cmd.Flags().BoolVar(&f.summary, KeySummary, true, "Write a job summary table")
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "dotenv file layered over the environment")
	cmd.Flags().StringVar(&f.repository, KeyRepository, "", "owner/repo (default: from the CI environment)")
	cmd.Flags().Int64Var(&f.runID, KeyRunID, 0, "Workflow run or pipeline ID (default: from the CI environment)")
	cmd.Flags().StringVar(&f.platform, KeyPlatform, "", "github, gitlab or auto")
	cmd.Flags().StringVar(&f.apiURL, KeyAPIURL, "", "API base URL (default: from the CI environment)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Verbose logging outside CI")

	return cmd
}

// overrides returns the config values set on the command line.
func overrides(cmd *cobra.Command, f flags) map[string]string {
	values := map[string]string{
		KeyAuthToken:  f.authToken,
		KeyIncludes:   strings.Join(f.includes, "\n"),
		KeyExcludes:   strings.Join(f.excludes, "\n"),
		KeyRepository: f.repository,
		KeyPlatform:   f.platform,
		KeyAPIURL:     f.apiURL,
	}
	if cmd.Flags().Changed(KeyDryRun) {
		values[KeyDryRun] = strconv.FormatBool(f.dryRun)
	}
	if cmd.Flags().Changed(KeySummary) {
		values[KeySummary] = strconv.FormatBool(f.summary)
	}
	if f.runID != 0 {
		values[KeyRunID] = strconv.FormatInt(f.runID, 10)
	}
	return values
}
