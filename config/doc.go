// Package config resolves the step's named inputs from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags
//  2. Environment variables (INPUT_<NAME>, as set by the Actions runner)
//  3. Explicit config file (--config)
//  4. Local config (.artifact-sweep.yaml in the git root)
//  5. Global config (~/.config/artifact-sweep/config.yaml)
//  6. Built-in defaults
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    EnvPrefix:       "INPUT_",
//	    GlobalConfigDir: "artifact-sweep",
//	    LocalConfigName: ".artifact-sweep.yaml",
//	    Defaults: map[string]string{
//	        "dry-run": "false",
//	    },
//	})
//
//	cfg, err := resolver.Resolve()
//	includes := input.List(cfg, "includes")
//
// # Environment Variables
//
// The runner exposes input "auth-token" as INPUT_AUTH-TOKEN: upper-cased,
// spaces replaced by underscores, hyphens kept. The resolver reads that
// form first and falls back to INPUT_AUTH_TOKEN, which is easier to set
// from a shell.
//
// A dotenv file (ResolverConfig.DotenvFile) is layered over the process
// environment without modifying it.
//
// # List Values
//
// In YAML files a list may be written as a sequence; it resolves to the
// newline-joined string the runner would pass:
//
//	includes:
//	  - coverage
//	  - test-results
package config
