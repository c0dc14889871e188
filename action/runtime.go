package action

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sethvargo/go-githubactions"

	"github.com/randalmurphal/artifactsweep/artifact"
)

// Output names published on success.
const (
	OutputDeletedArtifacts = "deleted-artifacts"
	OutputDeletedCount     = "deleted-count"
)

// Runtime is the step's view of the GitHub Actions runner.
type Runtime struct {
	gha *githubactions.Action
}

// Option configures a Runtime.
type Option func(*options)

type options struct {
	getenv GetenvFunc
	writer io.Writer
}

// WithGetenv replaces os.Getenv for every lookup the runtime makes,
// including GITHUB_OUTPUT and GITHUB_STEP_SUMMARY.
func WithGetenv(getenv GetenvFunc) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// WithWriter sets where workflow commands are written. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	o := options{getenv: os.Getenv, writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	gha := githubactions.New(
		githubactions.WithGetenv(githubactions.GetenvFunc(o.getenv)),
		githubactions.WithWriter(o.writer),
	)
	return &Runtime{gha: gha}
}

// Identity returns the repository and run of the current workflow run.
func (r *Runtime) Identity() (artifact.Identity, error) {
	ghctx, err := r.gha.Context()
	if err != nil {
		return artifact.Identity{}, fmt.Errorf("read workflow context: %w", err)
	}

	owner, repo := ghctx.Repo()
	id := artifact.Identity{Owner: owner, Repo: repo, RunID: ghctx.RunID}
	if err := id.Validate(); err != nil {
		return artifact.Identity{}, err
	}
	return id, nil
}

// APIURL returns the REST API root advertised by the runner.
func (r *Runtime) APIURL() string {
	ghctx, err := r.gha.Context()
	if err != nil {
		return ""
	}
	return ghctx.APIURL
}

// Mask registers a secret so the runner redacts it from logs.
func (r *Runtime) Mask(secret string) {
	if secret != "" {
		r.gha.AddMask(secret)
	}
}

// PublishDeleted sets the deleted-artifacts and deleted-count outputs.
func (r *Runtime) PublishDeleted(deleted []artifact.Artifact) error {
	if deleted == nil {
		deleted = []artifact.Artifact{}
	}
	data, err := json.Marshal(deleted)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", OutputDeletedArtifacts, err)
	}

	r.gha.SetOutput(OutputDeletedArtifacts, string(data))
	r.gha.SetOutput(OutputDeletedCount, strconv.Itoa(len(deleted)))
	return nil
}

// WriteSummary appends a markdown table of the deleted artifacts to the
// job summary.
func (r *Runtime) WriteSummary(deleted []artifact.Artifact, dryRun bool) {
	r.gha.AddStepSummary(Summary(deleted, dryRun))
}

// Fail reports the failure message on the runner's error channel.
func (r *Runtime) Fail(message string) {
	r.gha.Errorf("%s", message)
}

// Summary renders the markdown written by WriteSummary.
func Summary(deleted []artifact.Artifact, dryRun bool) string {
	var sb strings.Builder

	verb := "Deleted"
	if dryRun {
		verb = "Would delete"
	}

	if len(deleted) == 0 {
		fmt.Fprintf(&sb, "### Artifact cleanup\n\nNo artifacts matched.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "### Artifact cleanup\n\n%s %d artifact(s).\n\n", verb, len(deleted))
	sb.WriteString("| ID | Name | Size |\n")
	sb.WriteString("|---:|------|-----:|\n")
	for _, a := range deleted {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", a.ID, escapeCell(a.Name), formatSize(a.SizeInBytes))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatSize(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}
