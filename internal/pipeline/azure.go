package pipeline

import (
	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
)

type azureTrigger struct {
	Branches azureBranchFilter `yaml:"branches"`
}

type azureBranchFilter struct {
	Include []string `yaml:"include"`
}

type azureStep struct {
	Script      string `yaml:"script,omitempty"`
	DisplayName string `yaml:"displayName,omitempty"`
}

type azurePool struct {
	VMImage string `yaml:"vmImage"`
}

type azureStrategyMatrix map[string]map[string]string

type azureStrategy struct {
	Matrix azureStrategyMatrix `yaml:"matrix,omitempty"`
}

type azureManifest struct {
	Trigger  azureTrigger   `yaml:"trigger"`
	PR       azureTrigger   `yaml:"pr"`
	Pool     azurePool      `yaml:"pool"`
	Strategy *azureStrategy `yaml:"strategy,omitempty"`
	Steps    []azureStep    `yaml:"steps"`
}

func renderAzure(data manifestData) ([]exoskeleton.FileDescriptor, error) {
	steps := []azureStep{}
	if syncCmd, ok := exoskeletonSyncCommand(data); ok {
		steps = append(steps, azureStep{DisplayName: "Sync definition-of-done exoskeleton", Script: syncCmd})
	}
	steps = append(steps, azureStep{DisplayName: "Run definition-of-done evaluation", Script: dodCommand(data)})

	manifest := azureManifest{
		Trigger: azureTrigger{Branches: azureBranchFilter{Include: []string{"main"}}},
		PR:      azureTrigger{Branches: azureBranchFilter{Include: []string{"main"}}},
		Pool:    azurePool{VMImage: "ubuntu-latest"},
		Steps:   steps,
	}

	if data.MatrixBuild && len(data.Environments) > 0 {
		matrix := azureStrategyMatrix{}
		for _, env := range data.Environments {
			matrix[env] = map[string]string{"ENVIRONMENT": env}
		}
		manifest.Strategy = &azureStrategy{Matrix: matrix}
	}

	content, err := marshalDeterministic(manifest)
	if err != nil {
		return nil, err
	}

	return []exoskeleton.FileDescriptor{
		{RelPath: "azure-pipelines.yml", Content: content},
	}, nil
}
