package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SatisfiesW1(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	sum := 0.0
	for _, s := range reg.All() {
		sum += s.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDefault_CanonicalOrder(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 7)

	var lastPriority Priority = PriorityCritical
	for _, s := range all {
		assert.GreaterOrEqual(t, s.Priority, lastPriority)
		lastPriority = s.Priority
	}

	// Within the critical tier the reference registry is devops, security, testing alphabetically.
	criticalIDs := []ID{}
	for _, s := range all {
		if s.Priority == PriorityCritical {
			criticalIDs = append(criticalIDs, s.ID)
		}
	}
	assert.Equal(t, []ID{DevOps, Security, Testing}, criticalIDs)
}

func TestGet(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	s, ok := reg.Get(Testing)
	require.True(t, ok)
	assert.Equal(t, 0.25, s.Weight)
	assert.Equal(t, PriorityCritical, s.Priority)

	_, ok = reg.Get(ID("bogus"))
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	kept, unknown := reg.Filter([]ID{Testing, ID("bogus"), Compliance})
	require.Len(t, kept, 2)
	assert.Equal(t, Testing, kept[0].ID)
	assert.Equal(t, Compliance, kept[1].ID)
	assert.Equal(t, []ID{ID("bogus")}, unknown)
}

func TestLoad_RejectsInvalidWeightSum(t *testing.T) {
	specs := []Spec{
		{ID: Testing, Weight: 0.5, Priority: PriorityCritical},
		{ID: Security, Weight: 0.1, Priority: PriorityCritical},
	}
	_, err := Load(specs)
	assert.Error(t, err)
}

func TestLoad_RejectsViolatedTierOrdering(t *testing.T) {
	specs := []Spec{
		{ID: Testing, Weight: 0.1, Priority: PriorityCritical},
		{ID: Security, Weight: 0.9, Priority: PriorityImportant},
	}
	_, err := Load(specs)
	assert.Error(t, err)
}

func TestSpec_Matches(t *testing.T) {
	s := Spec{RelevantGlobs: []string{"**/*_test.go"}}
	assert.True(t, s.Matches("internal/foo/bar_test.go"))
	assert.False(t, s.Matches("internal/foo/bar.go"))
}
