package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/hosting"
)

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name      string
		cfg       hosting.Config
		envKey    string
		envValue  string
		wantToken string
		wantErr   bool
	}{
		{
			name:      "GITHUB_TOKEN set",
			cfg:       hosting.Config{},
			envKey:    "GITHUB_TOKEN",
			envValue:  "ghp_test123",
			wantToken: "ghp_test123",
		},
		{
			name:    "GITHUB_TOKEN not set returns error",
			cfg:     hosting.Config{},
			wantErr: true,
		},
		{
			name:      "custom env var overrides default",
			cfg:       hosting.Config{TokenEnvVar: "MY_GH_TOKEN"},
			envKey:    "MY_GH_TOKEN",
			envValue:  "custom_token_value",
			wantToken: "custom_token_value",
		},
		{
			name:    "custom env var not set returns error",
			cfg:     hosting.Config{TokenEnvVar: "MY_GH_TOKEN"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", "")
			t.Setenv("MY_GH_TOKEN", "")
			if tt.envKey != "" {
				t.Setenv(tt.envKey, tt.envValue)
			}

			token, err := resolveToken(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestResolveToken_ErrorMentionsEnvVar(t *testing.T) {
	t.Setenv("CUSTOM_TOKEN", "")

	_, err := resolveToken(hosting.Config{TokenEnvVar: "CUSTOM_TOKEN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUSTOM_TOKEN")
}

func TestGitHubProviderIdentity(t *testing.T) {
	p := &GitHubProvider{owner: "myorg", repo: "myrepo"}
	assert.Equal(t, hosting.ProviderGitHub, p.Name())

	owner, repo := p.OwnerRepo()
	assert.Equal(t, "myorg", owner)
	assert.Equal(t, "myrepo", repo)
}
