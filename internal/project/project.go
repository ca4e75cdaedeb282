// Package project builds the read-only ProjectContext every evaluation run
// constructs once at entry: the project root, its environment, opaque
// language/framework hints, and recent-change metadata pulled from git.
package project

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/detect"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/gitinfo"
)

// Environment is the deployment environment a run is scored against; it
// influences validator thresholds, never criterion weights.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Context is the read-only project view passed to every validator. It is
// constructed once per run and never mutated afterward.
type Context struct {
	Root                  string
	Environment           Environment
	DetectedLanguageHints []string
	RunID                 string
	Git                   gitinfo.Info
}

// New constructs a Context for root, detecting language/framework hints and
// collecting git metadata. A fresh RunID is minted for every call.
func New(ctx context.Context, root string, env Environment) (*Context, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	detection, err := detect.Detect(absRoot)
	if err != nil {
		return nil, err
	}

	gitInfo, err := gitinfo.Collect(ctx, absRoot)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:                  absRoot,
		Environment:           env,
		DetectedLanguageHints: detection.Hints(),
		RunID:                 uuid.New().String(),
		Git:                   gitInfo,
	}, nil
}

// HasHint reports whether the opaque hint set contains hint. Validators use
// this to gate behavior on language/framework without depending on the
// detect package's concrete types.
func (c *Context) HasHint(hint string) bool {
	for _, h := range c.DetectedLanguageHints {
		if h == hint {
			return true
		}
	}
	return false
}

// UvmgrDir returns the .uvmgr/ directory path under the project root.
func (c *Context) UvmgrDir() string {
	return filepath.Join(c.Root, ".uvmgr")
}
