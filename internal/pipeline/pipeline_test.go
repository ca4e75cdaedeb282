package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/hosting"
)

func TestGenerate_GitHubIsDeterministic(t *testing.T) {
	req := Request{
		Provider:     hosting.ProviderGitHub,
		Environments: []string{"staging", "production"},
		Features:     []Feature{FeatureCaching, FeatureMatrixBuild},
		TemplateID:   exoskeleton.TemplateStandard,
	}

	files1, err := Generate(req)
	require.NoError(t, err)
	files2, err := Generate(req)
	require.NoError(t, err)

	require.Len(t, files1, 1)
	assert.Equal(t, files1[0].Content, files2[0].Content)
	assert.Equal(t, ".github/workflows/definition-of-done.yml", files1[0].RelPath)
}

func TestGenerate_UnsupportedProvider(t *testing.T) {
	_, err := Generate(Request{Provider: hosting.ProviderUnknown})
	require.Error(t, err)
}

func TestGenerate_UnsupportedFeature(t *testing.T) {
	_, err := Generate(Request{Provider: hosting.ProviderGitHub, Features: []Feature{Feature("bogus")}})
	require.Error(t, err)
}

func TestGenerate_GitLab(t *testing.T) {
	files, err := Generate(Request{Provider: hosting.ProviderGitLab})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".gitlab-ci.yml", files[0].RelPath)
}

func TestGenerate_Azure(t *testing.T) {
	files, err := Generate(Request{Provider: hosting.ProviderAzure})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "azure-pipelines.yml", files[0].RelPath)
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	_, err := Generate(Request{Provider: hosting.ProviderGitHub, TemplateID: exoskeleton.TemplateID("bogus")})
	require.Error(t, err)
}

func TestGenerate_NonDefaultTemplateSyncsExoskeletonBeforeEvaluating(t *testing.T) {
	standard, err := Generate(Request{Provider: hosting.ProviderGitHub, TemplateID: exoskeleton.TemplateStandard})
	require.NoError(t, err)

	aiNative, err := Generate(Request{Provider: hosting.ProviderGitHub, TemplateID: exoskeleton.TemplateAINative})
	require.NoError(t, err)

	assert.NotEqual(t, standard[0].Content, aiNative[0].Content)
	assert.Contains(t, string(aiNative[0].Content), "dod exoskeleton-init --template=ai-native --mode=force")
	assert.NotContains(t, string(standard[0].Content), "exoskeleton-init")
}
