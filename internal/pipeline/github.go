package pipeline

import (
	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
)

type githubWorkflow struct {
	Name string                 `yaml:"name"`
	On   githubOn               `yaml:"on"`
	Jobs map[string]githubJob   `yaml:"jobs"`
}

type githubOn struct {
	Push        githubBranchFilter `yaml:"push"`
	PullRequest githubBranchFilter `yaml:"pull_request"`
}

type githubBranchFilter struct {
	Branches []string `yaml:"branches"`
}

type githubJob struct {
	RunsOn   string             `yaml:"runs-on"`
	Strategy *githubStrategy    `yaml:"strategy,omitempty"`
	Steps    []githubStep       `yaml:"steps"`
}

type githubStrategy struct {
	Matrix map[string][]string `yaml:"matrix"`
}

type githubStep struct {
	Name string            `yaml:"name"`
	Uses string            `yaml:"uses,omitempty"`
	Run  string            `yaml:"run,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
}

func renderGitHub(data manifestData) ([]exoskeleton.FileDescriptor, error) {
	job := githubJob{RunsOn: "ubuntu-latest"}

	if data.Caching {
		job.Steps = append(job.Steps, githubStep{
			Name: "Cache dependencies",
			Uses: "actions/cache@v4",
			With: map[string]string{"path": "~/.cache", "key": "dod-${{ hashFiles('**/go.sum') }}"},
		})
	}

	job.Steps = append(job.Steps, githubStep{Name: "Checkout", Uses: "actions/checkout@v4"})

	if syncCmd, ok := exoskeletonSyncCommand(data); ok {
		job.Steps = append(job.Steps, githubStep{Name: "Sync definition-of-done exoskeleton", Run: syncCmd})
	}

	job.Steps = append(job.Steps, githubStep{Name: "Run definition-of-done evaluation", Run: dodCommand(data)})

	if data.MatrixBuild {
		job.Strategy = &githubStrategy{Matrix: map[string][]string{"environment": data.Environments}}
	}

	wf := githubWorkflow{
		Name: "definition-of-done",
		On: githubOn{
			Push:        githubBranchFilter{Branches: []string{"main"}},
			PullRequest: githubBranchFilter{Branches: []string{"main"}},
		},
		Jobs: map[string]githubJob{"dod": job},
	}

	content, err := marshalDeterministic(wf)
	if err != nil {
		return nil, err
	}

	return []exoskeleton.FileDescriptor{
		{RelPath: ".github/workflows/definition-of-done.yml", Content: content},
	}, nil
}

func dodCommand(data manifestData) string {
	cmd := "dod automate-complete"
	if data.AutoFix {
		cmd += " --auto-fix"
	}
	if data.StatusChecks {
		cmd += " --report=checks"
	}
	return cmd
}

// exoskeletonSyncCommand re-materializes the exoskeleton config/workflow
// files for a non-default template before evaluation runs, so the criteria
// registry the CI job evaluates against actually reflects template_id
// instead of whatever was committed at exoskeleton-init time.
func exoskeletonSyncCommand(data manifestData) (string, bool) {
	if data.TemplateID == "" || data.TemplateID == exoskeleton.TemplateStandard {
		return "", false
	}
	return "dod exoskeleton-init --template=" + string(data.TemplateID) + " --mode=force", true
}
