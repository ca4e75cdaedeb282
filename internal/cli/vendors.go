package cli

import (
	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/engine"
	_ "github.com/seanchatmangpt/uvmgr-sub002/internal/hosting/github"
	_ "github.com/seanchatmangpt/uvmgr-sub002/internal/hosting/gitlab"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/validator"
)

// builtinVendorSet wires the built-in external-tool adapters to each
// registered criterion id.
func builtinVendorSet() engine.VendorSet {
	return engine.VendorSet{
		criteria.Testing:       validator.TestingValidator(),
		criteria.Security:      validator.SecurityValidator(),
		criteria.DevOps:        validator.DevOpsValidator(),
		criteria.CodeQuality:   validator.CodeQualityValidator(),
		criteria.Documentation: validator.DocumentationValidator(),
		criteria.Performance:   validator.PerformanceValidator(),
		criteria.Compliance:    validator.ComplianceValidator(),
	}
}
