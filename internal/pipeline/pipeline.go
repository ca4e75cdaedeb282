// Package pipeline implements the Pipeline Generator: emitting a
// deterministic CI manifest that invokes the DoD evaluation core on every
// push and pull request, for a closed set of providers.
package pipeline

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/hosting"

	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
)

// Feature is one optional pipeline capability a caller may request.
type Feature string

const (
	FeatureAutoFix       Feature = "auto_fix"
	FeatureMatrixBuild   Feature = "matrix_build"
	FeatureCaching       Feature = "caching"
	FeatureStatusChecks  Feature = "status_checks"
)

// KnownFeatures is the closed, build-time-fixed feature set.
var KnownFeatures = map[Feature]bool{
	FeatureAutoFix:      true,
	FeatureMatrixBuild:  true,
	FeatureCaching:      true,
	FeatureStatusChecks: true,
}

// Request describes one pipeline_generate invocation.
type Request struct {
	Root         string
	Provider     hosting.ProviderType
	Environments []string
	Features     []Feature
	TemplateID   exoskeleton.TemplateID
	OutputRoot   string // defaults to Root when empty
}

// Generate validates req and renders the manifest file set for req.Provider.
// Unknown providers/features return an error with no files rendered.
func Generate(req Request) ([]exoskeleton.FileDescriptor, error) {
	if !supportedProviders[req.Provider] {
		return nil, dodErrors.ErrUnsupportedProvider(string(req.Provider))
	}
	for _, f := range req.Features {
		if !KnownFeatures[f] {
			return nil, dodErrors.ErrUnsupportedFeature(string(f))
		}
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = exoskeleton.TemplateStandard
	}
	if !exoskeleton.KnownTemplates[templateID] {
		return nil, dodErrors.ErrUnknownTemplate(string(templateID))
	}

	data := manifestData{
		Environments: sortedStrings(req.Environments),
		AutoFix:      hasFeature(req.Features, FeatureAutoFix),
		MatrixBuild:  hasFeature(req.Features, FeatureMatrixBuild),
		Caching:      hasFeature(req.Features, FeatureCaching),
		StatusChecks: hasFeature(req.Features, FeatureStatusChecks),
		TemplateID:   templateID,
	}

	switch req.Provider {
	case hosting.ProviderGitHub:
		return renderGitHub(data)
	case hosting.ProviderGitLab:
		return renderGitLab(data)
	case hosting.ProviderAzure:
		return renderAzure(data)
	default:
		return nil, dodErrors.ErrUnsupportedProvider(string(req.Provider))
	}
}

var supportedProviders = map[hosting.ProviderType]bool{
	hosting.ProviderGitHub: true,
	hosting.ProviderGitLab: true,
	hosting.ProviderAzure:  true,
}

type manifestData struct {
	Environments []string
	AutoFix      bool
	MatrixBuild  bool
	Caching      bool
	StatusChecks bool
	TemplateID   exoskeleton.TemplateID
}

func hasFeature(features []Feature, want Feature) bool {
	for _, f := range features {
		if f == want {
			return true
		}
	}
	return false
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// marshalDeterministic renders v as YAML with stable key ordering; struct
// field order (not map iteration) drives the ordering, so byte-for-byte
// reproducibility holds across runs given the same input.
func marshalDeterministic(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal pipeline manifest: %w", err)
	}
	return out, nil
}

