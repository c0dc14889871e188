package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/artifactsweep/action"
	"github.com/randalmurphal/artifactsweep/artifact"
	"github.com/randalmurphal/artifactsweep/config"
	sweeperrors "github.com/randalmurphal/artifactsweep/errors"
)

// errReported is returned once a failure has been reported to the runner.
var errReported = errors.New("artifact sweep failed")

// session is one invocation of the command.
type session struct {
	deps      deps
	flags     flags
	overrides map[string]string

	getenv   func(string) string
	rt       *action.Runtime
	platform action.Platform
	logger   *slog.Logger
}

func newSession(d deps, f flags, overrides map[string]string) *session {
	s := &session{
		deps:      d,
		flags:     f,
		overrides: overrides,
		getenv:    d.getenv,
		platform:  action.DetectPlatform(d.getenv),
	}
	s.rt = action.New(action.WithGetenv(d.getenv), action.WithWriter(d.stdout))
	s.logger = s.newLogger()
	return s
}

// execute runs the sweep and reports any failure, including panics,
// exactly once.
func (s *session) execute(ctx context.Context) (err error) {
	defer func() {
		if v := recover(); v != nil {
			s.fail(v)
			err = errReported
		}
	}()

	if err := s.run(ctx); err != nil {
		s.fail(err)
		return errReported
	}
	return nil
}

func (s *session) run(ctx context.Context) error {
	resolver := config.NewResolver(config.ResolverConfig{
		EnvPrefix:       "INPUT_",
		GlobalConfigDir: "artifact-sweep",
		LocalConfigName: ".artifact-sweep.yaml",
		ConfigFile:      s.flags.configFile,
		DotenvFile:      s.flags.envFile,
		Defaults:        defaults,
		ValidKeys:       validKeys,
		Getenv:          s.deps.getenv,
		Logger:          s.logger,
	})

	cfg, err := resolver.ResolveWithFlags(s.overrides)
	if err != nil {
		return err
	}

	if s.flags.envFile != "" {
		if s.getenv, err = resolver.Getenv(); err != nil {
			return err
		}
		s.rt = action.New(action.WithGetenv(s.getenv), action.WithWriter(s.deps.stdout))
	}

	if s.platform, err = action.ParsePlatform(cfg.Get(KeyPlatform), s.getenv); err != nil {
		return err
	}
	s.logger = s.newLogger()

	token, err := cfg.Required(KeyAuthToken)
	if err != nil {
		return err
	}
	if s.platform == action.PlatformGitHub {
		s.rt.Mask(token)
	}

	dryRun, err := cfg.Bool(KeyDryRun)
	if err != nil {
		return err
	}
	summary, err := cfg.Bool(KeySummary)
	if err != nil {
		return err
	}

	id, err := s.identity(cfg)
	if err != nil {
		return err
	}

	store, err := s.deps.newStore(s.platform, token, s.apiURL(cfg))
	if err != nil {
		return err
	}

	s.logger.Debug("sweeping run", "run", id.String(), "platform", string(s.platform), "dry_run", dryRun)

	sweeper := artifact.NewSweeper(store, cfg,
		artifact.WithDryRun(dryRun),
		artifact.WithLogger(s.logger),
	)
	deleted, err := sweeper.Sweep(ctx, id)
	if err != nil {
		return err
	}

	return s.publish(deleted, dryRun, summary)
}

// identity resolves the run. Explicit repository and run-id values
// replace the matching fields of the CI environment's identity; outside CI
// both are required.
func (s *session) identity(cfg *config.Resolved) (artifact.Identity, error) {
	runID, err := cfg.Int64(KeyRunID)
	if err != nil {
		return artifact.Identity{}, err
	}
	repository := cfg.Get(KeyRepository)

	var id artifact.Identity
	if repository == "" || runID == 0 {
		if id, err = s.platformIdentity(); err != nil {
			return artifact.Identity{}, err
		}
	}

	if repository != "" {
		owner, repo, ok := splitRepository(repository)
		if !ok {
			return artifact.Identity{}, fmt.Errorf("%w: repository %q is not owner/repo", artifact.ErrInvalidIdentity, repository)
		}
		id.Owner, id.Repo = owner, repo
	}
	if runID != 0 {
		id.RunID = runID
	}
	return id, id.Validate()
}

func (s *session) platformIdentity() (artifact.Identity, error) {
	switch s.platform {
	case action.PlatformGitHub:
		return s.rt.Identity()
	case action.PlatformGitLab:
		return action.IdentityFromGitLab(s.getenv)
	default:
		return artifact.Identity{}, fmt.Errorf("%w: set --repository and --run-id outside CI", artifact.ErrInvalidIdentity)
	}
}

// apiURL returns the configured API URL or the one the CI job advertises.
func (s *session) apiURL(cfg *config.Resolved) string {
	if u := cfg.Get(KeyAPIURL); u != "" {
		return u
	}
	switch s.platform {
	case action.PlatformGitHub:
		return s.rt.APIURL()
	case action.PlatformGitLab:
		return s.getenv("CI_API_V4_URL")
	default:
		return ""
	}
}

func (s *session) publish(deleted []artifact.Artifact, dryRun, summary bool) error {
	if s.platform == action.PlatformGitHub {
		if err := s.rt.PublishDeleted(deleted); err != nil {
			return err
		}
		if summary {
			s.rt.WriteSummary(deleted, dryRun)
		}
		return nil
	}

	enc := json.NewEncoder(s.deps.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(deleted)
}

// fail reports a failure on the platform's failure channel.
func (s *session) fail(v any) {
	f := sweeperrors.Describe(v)
	if f.Suggestion != "" {
		s.logger.Warn(f.Suggestion)
	}

	if s.platform == action.PlatformGitHub {
		s.rt.Fail(f.Message)
		return
	}
	fmt.Fprintf(s.deps.stderr, "Error: %s\n", f.Message)
}

func (s *session) newLogger() *slog.Logger {
	if s.platform == action.PlatformGitHub {
		// The runner hides ::debug:: lines unless step debug logging is on.
		return slog.New(action.NewLogHandler(s.rt, slog.LevelDebug))
	}

	level := slog.LevelInfo
	if s.flags.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(s.deps.stderr, &slog.HandlerOptions{Level: level}))
}

// splitRepository splits "owner/repo" at the last slash so GitLab
// subgroups stay in the owner.
func splitRepository(repository string) (owner, repo string, ok bool) {
	i := strings.LastIndex(repository, "/")
	if i <= 0 || i == len(repository)-1 {
		return "", "", false
	}
	return repository[:i], repository[i+1:], true
}
