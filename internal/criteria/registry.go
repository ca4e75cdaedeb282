// Package criteria defines the closed criterion registry: the seven
// identifiers a run can evaluate, their weights, priority tiers, and the
// file-glob fingerprints used to decide relevance.
package criteria

import (
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
)

// ID is an opaque identifier drawn from the fixed enumeration. New
// identifiers may be registered only at build time.
type ID string

const (
	Testing       ID = "testing"
	Security      ID = "security"
	DevOps        ID = "devops"
	CodeQuality   ID = "code_quality"
	Documentation ID = "documentation"
	Performance   ID = "performance"
	Compliance    ID = "compliance"
)

// Priority is the tier used for ordering and early-termination decisions.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityImportant
	PriorityOptional
)

// String renders the priority the way telemetry attributes and config.yaml expect.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityImportant:
		return "important"
	case PriorityOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Spec is an immutable, registry-owned description of one criterion.
type Spec struct {
	ID             ID
	Weight         float64
	Priority       Priority
	RelevantGlobs  []string
	DefaultTimeout time.Duration
}

// Matches reports whether relPath matches any of the criterion's relevant
// globs, used by validators to fingerprint which files to inspect.
func (s Spec) Matches(relPath string) bool {
	for _, pattern := range s.RelevantGlobs {
		ok, err := doublestar.Match(pattern, relPath)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// weightEpsilon is the tolerance invariant W1 allows for floating point
// accumulation when summing the registry's weights.
const weightEpsilon = 1e-9

// reference is the built-in registry. Invariant W2 requires weight(critical)
// >= weight(important) >= weight(optional); invariant W1 requires the sum of
// all weights to equal 1.0 within weightEpsilon.
var reference = []Spec{
	{ID: Testing, Weight: 0.25, Priority: PriorityCritical, DefaultTimeout: 120 * time.Second,
		RelevantGlobs: []string{"**/*_test.go", "**/test_*.py", "**/*.test.ts", "**/*.test.js"}},
	{ID: Security, Weight: 0.25, Priority: PriorityCritical, DefaultTimeout: 180 * time.Second,
		RelevantGlobs: []string{"**/go.sum", "**/requirements*.txt", "**/package-lock.json", "**/*.go", "**/*.py"}},
	{ID: DevOps, Weight: 0.20, Priority: PriorityCritical, DefaultTimeout: 60 * time.Second,
		RelevantGlobs: []string{".github/workflows/**", ".gitlab-ci.yml", "Dockerfile", "docker-compose*.yml"}},
	{ID: CodeQuality, Weight: 0.10, Priority: PriorityImportant, DefaultTimeout: 90 * time.Second,
		RelevantGlobs: []string{"**/*.go", "**/*.py", "**/*.ts", "**/*.js"}},
	{ID: Documentation, Weight: 0.10, Priority: PriorityImportant, DefaultTimeout: 30 * time.Second,
		RelevantGlobs: []string{"**/*.md", "**/README*", "**/docs/**"}},
	{ID: Performance, Weight: 0.05, Priority: PriorityOptional, DefaultTimeout: 300 * time.Second,
		RelevantGlobs: []string{"**/*_bench_test.go", "**/*.go"}},
	{ID: Compliance, Weight: 0.05, Priority: PriorityOptional, DefaultTimeout: 30 * time.Second,
		RelevantGlobs: []string{"LICENSE*", "**/NOTICE*", "**/*.yaml", "**/*.yml"}},
}

// Registry is a closed, immutable map from criterion id to its spec.
type Registry struct {
	specs map[ID]Spec
	order []ID // critical -> important -> optional; alphabetical within tier
}

// Default returns the built-in reference registry. Load validates W1/W2 and
// is the entry point for an on-disk config.yaml overriding weights.
func Default() (*Registry, error) {
	return Load(reference)
}

// Load builds a Registry from an explicit spec list, validating invariants
// W1 (weights sum to 1.0 ± 1e-9) and W2 (critical >= important >= optional
// weight ordering).
func Load(specs []Spec) (*Registry, error) {
	sum := 0.0
	specMap := make(map[ID]Spec, len(specs))
	for _, s := range specs {
		sum += s.Weight
		specMap[s.ID] = s
	}
	if diff := sum - 1.0; diff < -weightEpsilon || diff > weightEpsilon {
		return nil, dodErrors.ErrWeightsInvalid(sum)
	}

	if err := checkTierOrdering(specs); err != nil {
		return nil, err
	}

	order := make([]ID, 0, len(specs))
	for _, s := range specs {
		order = append(order, s.ID)
	}
	sort.Slice(order, func(i, j int) bool {
		si, sj := specMap[order[i]], specMap[order[j]]
		if si.Priority != sj.Priority {
			return si.Priority < sj.Priority
		}
		return order[i] < order[j]
	})

	return &Registry{specs: specMap, order: order}, nil
}

func checkTierOrdering(specs []Spec) error {
	minWeight := map[Priority]float64{}
	maxWeight := map[Priority]float64{}
	for _, s := range specs {
		if w, ok := minWeight[s.Priority]; !ok || s.Weight < w {
			minWeight[s.Priority] = s.Weight
		}
		if w, ok := maxWeight[s.Priority]; !ok || s.Weight > w {
			maxWeight[s.Priority] = s.Weight
		}
	}
	if w, ok := minWeight[PriorityCritical]; ok {
		if w2, ok2 := maxWeight[PriorityImportant]; ok2 && w < w2 {
			return dodErrors.ErrWeightsInvalid(w)
		}
	}
	if w, ok := minWeight[PriorityImportant]; ok {
		if w2, ok2 := maxWeight[PriorityOptional]; ok2 && w < w2 {
			return dodErrors.ErrWeightsInvalid(w)
		}
	}
	return nil
}

// Get looks up a criterion by id in O(1). ok is false for unregistered ids.
func (r *Registry) Get(id ID) (Spec, bool) {
	s, ok := r.specs[id]
	return s, ok
}

// All returns every registered spec in the registry's stable canonical order
// (critical -> important -> optional; alphabetical within a tier).
func (r *Registry) All() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id])
	}
	return out
}

// Filter keeps only the requested ids that are registered, returning them in
// canonical order alongside the subset of ids that were not recognized.
func (r *Registry) Filter(requested []ID) (kept []Spec, unknown []ID) {
	want := make(map[ID]bool, len(requested))
	for _, id := range requested {
		if _, ok := r.specs[id]; ok {
			want[id] = true
		} else {
			unknown = append(unknown, id)
		}
	}
	for _, id := range r.order {
		if want[id] {
			kept = append(kept, r.specs[id])
		}
	}
	return kept, unknown
}
