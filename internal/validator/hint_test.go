package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
)

func TestHintValidator_MissingRequiredSetsOutcomeOK(t *testing.T) {
	pc := &project.Context{Root: t.TempDir()}
	h := HintValidator{Required: []string{"has_ci"}}

	result, err := h.Validate(context.Background(), pc, Options{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failure: has_ci hint is absent")
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("expected Outcome OutcomeOK even on a failing-but-completed validation, got %q", result.Outcome)
	}
}

func TestHintValidator_ReadmeCheckPassSetsOutcomeOK(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0644); err != nil {
		t.Fatalf("write README: %v", err)
	}
	pc := &project.Context{Root: dir}
	h := HintValidator{CheckReadme: true}

	result, err := h.Validate(context.Background(), pc, Options{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected pass with README present, got %+v", result)
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("expected Outcome OutcomeOK, got %q", result.Outcome)
	}
}

func TestHintValidator_ReadmeCheckFailSetsOutcomeOK(t *testing.T) {
	pc := &project.Context{Root: t.TempDir()}
	h := HintValidator{CheckReadme: true}

	result, err := h.Validate(context.Background(), pc, Options{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failure: no README present")
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("expected Outcome OutcomeOK even on a failing-but-completed validation, got %q", result.Outcome)
	}
}
