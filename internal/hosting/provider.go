// Package hosting provides a unified interface over git hosting providers
// (GitHub, GitLab) for the devops criterion validator and the pipeline
// generator. Only the read-only surface the DoD engine needs is exposed:
// authentication checks and CI status lookups. PR/issue management is out
// of scope for this engine.
package hosting

import "context"

// ProviderType identifies which hosting provider is in use.
type ProviderType string

const (
	ProviderGitHub  ProviderType = "github"
	ProviderGitLab  ProviderType = "gitlab"
	ProviderAzure   ProviderType = "azure"
	ProviderUnknown ProviderType = "unknown"
)

// Provider is the interface for git hosting providers. Implementations
// exist for GitHub (go-github) and GitLab (go-gitlab). Azure Pipelines
// manifests are generated without a live API client (see internal/pipeline).
type Provider interface {
	// Name returns the provider type.
	Name() ProviderType
	// OwnerRepo returns the owner and repository name.
	OwnerRepo() (string, string)
	// CheckAuth validates that the configured credentials are usable.
	CheckAuth(ctx context.Context) error
	// CheckRuns returns the CI status checks recorded against ref,
	// unified across GitHub check runs and GitLab pipeline jobs.
	CheckRuns(ctx context.Context, ref string) ([]CheckRun, error)
}

// CheckRun represents a CI status check (GitHub check run / GitLab
// pipeline job), unified across providers.
type CheckRun struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`               // queued, in_progress, completed
	Conclusion string `json:"conclusion,omitempty"` // success, failure, neutral, etc.
}

// Config holds hosting provider configuration.
type Config struct {
	// Provider type: "github", "gitlab", or "auto" (default).
	// When "auto", the provider is detected from the git remote URL.
	Provider string `yaml:"provider" json:"provider"`

	// BaseURL for self-hosted instances (e.g., "https://gitlab.company.com").
	// Leave empty for github.com / gitlab.com.
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"`

	// TokenEnvVar overrides the default token environment variable name.
	// Default: GITHUB_TOKEN for GitHub, GITLAB_TOKEN for GitLab.
	TokenEnvVar string `yaml:"token_env_var" json:"token_env_var,omitempty"`
}
