package artifact

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/artifactsweep/input"
)

// Input names read by Sweep.
const (
	InputIncludes = "includes"
	InputExcludes = "excludes"
)

// Sweeper deletes the artifacts of a run that pass its include/exclude filter.
type Sweeper struct {
	store  Store
	inputs input.Source
	dryRun bool
	logger *slog.Logger
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithDryRun makes Sweep report the artifacts it would delete without
// issuing any delete requests.
func WithDryRun(dryRun bool) Option {
	return func(s *Sweeper) {
		s.dryRun = dryRun
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSweeper creates a sweeper that reads its name lists from inputs.
func NewSweeper(store Store, inputs input.Source, opts ...Option) *Sweeper {
	s := &Sweeper{
		store:  store,
		inputs: inputs,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filter reads the include and exclude lists from the sweeper's inputs.
func (s *Sweeper) Filter() Filter {
	return Filter{
		Includes: input.List(s.inputs, InputIncludes),
		Excludes: input.List(s.inputs, InputExcludes),
	}
}

// Sweep lists the artifacts of the run once and deletes every artifact the
// filter selects, one at a time in listing order. It returns the deleted
// artifacts in that order.
//
// The first list or delete error is returned as is. Artifacts deleted
// before the failure stay deleted.
func (s *Sweeper) Sweep(ctx context.Context, id Identity) ([]Artifact, error) {
	filter := s.Filter()
	s.logger.Debug("artifacts to include", "includes", filter.Includes)
	s.logger.Debug("artifacts to exclude", "excludes", filter.Excludes)

	artifacts, err := s.store.ListRunArtifacts(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted := make([]Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		s.logger.Debug("processing artifact", "artifact", a.String())

		decision := filter.Match(a.Name)
		s.logger.Debug("artifact to include", "artifact", a.Name, "match", decision.Include)
		s.logger.Debug("artifact to exclude", "artifact", a.Name, "match", decision.Exclude)

		if !decision.Delete() {
			s.logger.Debug("ignoring artifact", "artifact", a.String())
			continue
		}

		if s.dryRun {
			s.logger.Info("would delete artifact", "artifact", a.String())
		} else {
			s.logger.Info("deleting artifact", "artifact", a.String())
			if err := s.store.DeleteArtifact(ctx, id, a.ID); err != nil {
				return nil, err
			}
		}
		deleted = append(deleted, a)
	}

	return deleted, nil
}
