package validator

import (
	"context"
	"os"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
)

// HintValidator scores a criterion from project detection hints and a small
// set of well-known file checks, for criteria (devops, documentation,
// compliance) where a single external tool isn't the natural source of
// truth. Required hints that are absent fail the criterion outright; Bonus
// hints raise the score without being mandatory.
type HintValidator struct {
	ID           criteria.ID
	Required     []string
	Bonus        []string
	CheckReadme  bool
	CheckLicense bool
}

func (h HintValidator) MutatesProject() bool { return false }

func (h HintValidator) Validate(ctx context.Context, pc *project.Context, opts Options) (Result, error) {
	for _, req := range h.Required {
		if !pc.HasHint(req) {
			return Result{
				Score:          0,
				Passed:         false,
				Details:        missingHintDetail(req),
				FixSuggestions: fixSuggestionFor(req),
				Outcome:        OutcomeOK,
			}, nil
		}
	}

	score := 100.0
	earned := float64(len(h.Bonus))
	if len(h.Bonus) > 0 {
		hit := 0.0
		for _, b := range h.Bonus {
			if pc.HasHint(b) {
				hit++
			}
		}
		score = 100 * (1 + hit) / (1 + earned)
	}

	if h.CheckReadme && !fileExistsCI(pc.Root, "README.md", "README", "readme.md") {
		score = 0
		return Result{Score: score, Passed: false, Details: "no README found at project root", Outcome: OutcomeOK}, nil
	}
	if h.CheckLicense && !fileExistsCI(pc.Root, "LICENSE", "LICENSE.md", "LICENSE.txt") {
		score = 0
		return Result{Score: score, Passed: false, Details: "no LICENSE file found at project root", Outcome: OutcomeOK}, nil
	}

	return Result{Score: score, Passed: true, Outcome: OutcomeOK}, nil
}

func fileExistsCI(root string, names ...string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, e := range entries {
		if want[e.Name()] {
			return true
		}
	}
	return false
}

func missingHintDetail(hint string) string {
	return "required signal not detected: " + hint
}

func fixSuggestionFor(hint string) []string {
	switch hint {
	case "has_ci":
		return []string{"add a CI workflow under .github/workflows/ or .gitlab-ci.yml"}
	case "has_docker":
		return []string{"add a Dockerfile at the project root"}
	default:
		return nil
	}
}
