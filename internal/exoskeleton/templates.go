package exoskeleton

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
)

//go:embed builtin/config.yaml.tmpl
var configTemplateSrc string

//go:embed builtin/workflow.yaml.tmpl
var workflowTemplateSrc string

//go:embed builtin/ai_integration.yaml.tmpl
var aiIntegrationTemplateSrc string

// TemplateID identifies one of the three built-in, build-time-fixed exoskeleton
// file sets.
type TemplateID string

const (
	TemplateStandard   TemplateID = "standard"
	TemplateEnterprise TemplateID = "enterprise"
	TemplateAINative   TemplateID = "ai-native"
)

// KnownTemplates is the closed set of recognized template ids.
var KnownTemplates = map[TemplateID]bool{
	TemplateStandard:   true,
	TemplateEnterprise: true,
	TemplateAINative:   true,
}

// criterionConfig is the render-time view of one CriterionSpec for config.yaml.
type criterionConfig struct {
	ID       criteria.ID
	Weight   float64
	Priority string
	Threshold int
}

// templateData is what every builtin template is rendered against.
type templateData struct {
	TemplateID TemplateID
	Criteria   []criterionConfig
}

// FileDescriptor is one file an ExoskeletonTemplate declares: a path
// relative to project_root and its rendered content.
type FileDescriptor struct {
	RelPath string
	Content []byte
}

// renderTemplate renders one embedded text/template source against data.
func renderTemplate(name, src string, data templateData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Files returns the fixed file set for id given the registry's criteria,
// rendered and located at their project-relative paths per §6.2's on-disk
// layout. The set is deterministic for a given (id, reg).
func Files(id TemplateID, reg *criteria.Registry) ([]FileDescriptor, error) {
	data := templateData{TemplateID: id}
	for _, s := range reg.All() {
		data.Criteria = append(data.Criteria, criterionConfig{
			ID:        s.ID,
			Weight:    s.Weight,
			Priority:  s.Priority.String(),
			Threshold: 60,
		})
	}

	configContent, err := renderTemplate("config.yaml", configTemplateSrc, data)
	if err != nil {
		return nil, err
	}
	workflowContent, err := renderTemplate("workflow.yaml", workflowTemplateSrc, data)
	if err != nil {
		return nil, err
	}

	files := []FileDescriptor{
		{RelPath: ".uvmgr/exoskeleton/config.yaml", Content: configContent},
		{RelPath: ".uvmgr/automation/workflows/definition-of-done.yaml", Content: workflowContent},
	}

	if id == TemplateEnterprise || id == TemplateAINative {
		files = append(files, FileDescriptor{
			RelPath: ".uvmgr/exoskeleton/templates/enterprise-controls.yaml",
			Content: []byte("# enterprise-tier controls: audit logging, approval gates\naudit_log: true\napproval_required: true\n"),
		})
	}

	if id == TemplateAINative {
		aiContent, err := renderTemplate("ai_integration.yaml", aiIntegrationTemplateSrc, data)
		if err != nil {
			return nil, err
		}
		files = append(files, FileDescriptor{RelPath: ".uvmgr/ai/integration.yaml", Content: aiContent})
	}

	return files, nil
}

// WorkflowsCreated and AIIntegrationsEnabled are derived from the template
// id, per §4.3's reported-result contract.
func WorkflowsCreated(id TemplateID) []string {
	return []string{"definition-of-done"}
}

func AIIntegrationsEnabled(id TemplateID) bool {
	return id == TemplateAINative
}
