package pipeline

import (
	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
)

type gitlabJob struct {
	Stage  string   `yaml:"stage"`
	Script []string `yaml:"script"`
	Rules  []gitlabRule `yaml:"rules,omitempty"`
	Cache  *gitlabCache `yaml:"cache,omitempty"`
	Parallel *gitlabParallel `yaml:"parallel,omitempty"`
}

type gitlabRule struct {
	If string `yaml:"if"`
}

type gitlabCache struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths"`
}

type gitlabParallel struct {
	Matrix []map[string][]string `yaml:"matrix"`
}

type gitlabManifest struct {
	Stages []string              `yaml:"stages"`
	DoD    gitlabJob             `yaml:"definition_of_done"`
}

func renderGitLab(data manifestData) ([]exoskeleton.FileDescriptor, error) {
	script := []string{}
	if syncCmd, ok := exoskeletonSyncCommand(data); ok {
		script = append(script, syncCmd)
	}
	script = append(script, dodCommand(data))

	job := gitlabJob{
		Stage:  "test",
		Script: script,
		Rules: []gitlabRule{
			{If: `$CI_PIPELINE_SOURCE == "push"`},
			{If: `$CI_PIPELINE_SOURCE == "merge_request_event"`},
		},
	}

	if data.Caching {
		job.Cache = &gitlabCache{Key: "dod-$CI_COMMIT_REF_SLUG", Paths: []string{".cache/"}}
	}
	if data.MatrixBuild && len(data.Environments) > 0 {
		job.Parallel = &gitlabParallel{Matrix: []map[string][]string{{"ENVIRONMENT": data.Environments}}}
	}

	manifest := gitlabManifest{Stages: []string{"test"}, DoD: job}

	content, err := marshalDeterministic(manifest)
	if err != nil {
		return nil, err
	}

	return []exoskeleton.FileDescriptor{
		{RelPath: ".gitlab-ci.yml", Content: content},
	}, nil
}
