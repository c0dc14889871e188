// Package action connects artifactsweep to the CI runtime that invokes it.
//
// Core types:
//   - Runtime: Inputs, outputs, step summary and failure reporting for a
//     GitHub Actions step, backed by go-githubactions
//   - Platform: Detected CI platform (github, gitlab, local)
//   - LogHandler: slog.Handler that renders records as workflow commands
//
// Example usage:
//
//	rt := action.New()
//	slog.SetDefault(slog.New(action.NewLogHandler(rt, slog.LevelDebug)))
//
//	id, err := rt.Identity()
//	if err != nil {
//	    rt.Fail(err.Error())
//	    os.Exit(1)
//	}
//	deleted, err := sweeper.Sweep(ctx, id)
//	...
//	rt.PublishDeleted(deleted)
package action
