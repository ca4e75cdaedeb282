package validator

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/hosting"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
)

// CommandValidator runs an external tool against the project and derives a
// score/pass from its output. It is the adapter the tool-backed built-in
// validators (go test, govulncheck, golangci-lint) are built from: concrete
// analysis logic lives in the external tool, not in this engine.
type CommandValidator struct {
	ID        criteria.ID
	Name      string   // external tool binary, e.g. "go", "pytest", "bandit"
	Args      []string // args run with Name, e.g. {"test", "./...", "-json"}
	Mutates   bool
	ParseJSON func(stdout []byte) (score float64, passed bool, details string, fixes []string)
}

func (c CommandValidator) MutatesProject() bool { return c.Mutates }

func (c CommandValidator) Validate(ctx context.Context, pc *project.Context, opts Options) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = pc.Root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	score, passed, details, fixes := c.ParseJSON(stdout.Bytes())
	if !opts.IncludeDetails {
		details = ""
	}
	if !opts.EmitFixSuggestions {
		fixes = nil
	}

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// The binary itself could not be run (not installed, etc.); this
			// is a validator_error, not a failing score.
			return Result{}, runErr
		}
	}

	return Result{
		Score:          score,
		Passed:         passed,
		Details:        details,
		FixSuggestions: fixes,
		Outcome:        OutcomeOK,
	}, nil
}

// scoreFromCounts derives a 0-100 score from pass/fail counts, the common
// shape for test-runner and linter JSON reports.
func scoreFromCounts(passed, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(passed) / float64(total)
}

// TestingValidator runs `go test ./... -json` and scores by pass ratio.
func TestingValidator() CommandValidator {
	return CommandValidator{
		ID:   criteria.Testing,
		Name: "go",
		Args: []string{"test", "./...", "-json"},
		ParseJSON: func(stdout []byte) (float64, bool, string, []string) {
			lines := bytes.Split(stdout, []byte("\n"))
			var passCount, failCount int
			for _, line := range lines {
				if len(line) == 0 {
					continue
				}
				action := gjson.GetBytes(line, "Action").String()
				switch action {
				case "pass":
					passCount++
				case "fail":
					failCount++
				}
			}
			total := passCount + failCount
			score := scoreFromCounts(passCount, total)
			passed := failCount == 0 && total > 0
			details := ""
			var fixes []string
			if failCount > 0 {
				fixes = append(fixes, "re-run with -v to inspect the failing tests")
			}
			return score, passed, details, fixes
		},
	}
}

// SecurityValidator runs `govulncheck ./... -json` and scores by vulnerability count.
func SecurityValidator() CommandValidator {
	return CommandValidator{
		ID:   criteria.Security,
		Name: "govulncheck",
		Args: []string{"-json", "./..."},
		ParseJSON: func(stdout []byte) (float64, bool, string, []string) {
			vulnCount := strings.Count(string(stdout), `"osv":`)
			score := 100.0
			if vulnCount > 0 {
				score = 100.0 / float64(1+vulnCount)
			}
			passed := vulnCount == 0
			var fixes []string
			if vulnCount > 0 {
				fixes = append(fixes, "run 'go get -u' on the flagged modules and re-run govulncheck")
			}
			return score, passed, "", fixes
		},
	}
}

// DevOpsValidator inspects the hosting provider's recorded check runs for
// the current HEAD (GitHub check runs / GitLab pipeline jobs) when a git
// remote and credentials are available, falling back to the has_ci/has_docker
// hint check when no provider can be reached - a fork checkout or a remote
// without a configured token, say.
func DevOpsValidator() Validator {
	return devOpsValidator{
		hintFallback: HintValidator{
			ID:       criteria.DevOps,
			Required: []string{"has_ci"},
			Bonus:    []string{"has_docker"},
		},
	}
}

type devOpsValidator struct {
	hintFallback HintValidator
}

func (devOpsValidator) MutatesProject() bool { return false }

func (d devOpsValidator) Validate(ctx context.Context, pc *project.Context, opts Options) (Result, error) {
	provider, err := hosting.NewProvider(pc.Root, hosting.Config{Provider: "auto"})
	if err != nil {
		return d.hintFallback.Validate(ctx, pc, opts)
	}

	ref := pc.Git.HeadRef
	if ref == "" {
		return d.hintFallback.Validate(ctx, pc, opts)
	}

	runs, err := provider.CheckRuns(ctx, ref)
	if err != nil {
		return d.hintFallback.Validate(ctx, pc, opts)
	}
	if len(runs) == 0 {
		return d.hintFallback.Validate(ctx, pc, opts)
	}

	var succeeded int
	for _, r := range runs {
		if r.Conclusion == "success" {
			succeeded++
		}
	}
	score := scoreFromCounts(succeeded, len(runs))
	passed := succeeded == len(runs)

	details := ""
	if opts.IncludeDetails {
		details = string(provider.Name()) + " check runs: " + strconv.Itoa(succeeded) + "/" + strconv.Itoa(len(runs)) + " succeeded"
	}

	var fixes []string
	if !passed && opts.EmitFixSuggestions {
		fixes = append(fixes, "inspect the failing check runs in "+string(provider.Name())+" and re-run the pipeline")
	}

	return Result{
		Score:          score,
		Passed:         passed,
		Details:        details,
		FixSuggestions: fixes,
		Outcome:        OutcomeOK,
	}, nil
}

// CodeQualityValidator runs `golangci-lint run --out-format json`.
func CodeQualityValidator() CommandValidator {
	return CommandValidator{
		ID:   criteria.CodeQuality,
		Name: "golangci-lint",
		Args: []string{"run", "--out-format", "json"},
		ParseJSON: func(stdout []byte) (float64, bool, string, []string) {
			issues := gjson.GetBytes(stdout, "Issues").Array()
			score := scoreFromCounts(0, 0)
			if len(issues) > 0 {
				score = 100.0 / float64(1+len(issues))
			}
			passed := len(issues) == 0
			var fixes []string
			if len(issues) > 0 {
				fixes = append(fixes, "run 'golangci-lint run --fix'")
			}
			return score, passed, "", fixes
		},
	}
}

// DocumentationValidator checks that a README exists at the project root as
// a proxy for documentation completeness; its content is not inspected.
func DocumentationValidator() HintValidator {
	return HintValidator{
		ID:       criteria.Documentation,
		Required: []string{},
		Bonus:    []string{},
		CheckReadme: true,
	}
}

// PerformanceValidator runs `go test ./... -bench=. -benchtime=1x` and treats
// a clean run (no panics/timeouts) as passing; this criterion is optional and
// its absence does not block success.
func PerformanceValidator() CommandValidator {
	return CommandValidator{
		ID:   criteria.Performance,
		Name: "go",
		Args: []string{"test", "./...", "-bench=.", "-benchtime=1x", "-run=^$"},
		ParseJSON: func(stdout []byte) (float64, bool, string, []string) {
			ok := !bytes.Contains(stdout, []byte("FAIL"))
			score := 0.0
			if ok {
				score = 100.0
			}
			return score, ok, "", nil
		},
	}
}

// ComplianceValidator checks for a LICENSE file as a proxy for license compliance.
func ComplianceValidator() HintValidator {
	return HintValidator{
		ID:          criteria.Compliance,
		Required:    []string{},
		CheckLicense: true,
	}
}
