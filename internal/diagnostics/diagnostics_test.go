package diagnostics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminlayers/gcadm/internal/diagnostics"
	"github.com/adminlayers/gcadm/internal/simulator"
)

func TestRunAgainstSimulator(t *testing.T) {
	report := diagnostics.Run(context.Background(), simulator.New(), nil)

	assert.Empty(t, report.Missing)
	assert.True(t, report.AllOK())

	passed, failed, skipped := report.Summary()
	assert.Equal(t, 0, failed)
	assert.Equal(t, 5, passed)
	// Conversations are stubbed out in demo mode, so that probe skips.
	assert.Equal(t, 1, skipped)

	require.NotEmpty(t, report.Checks)
	for _, c := range report.Checks {
		assert.NotEmpty(t, c.Name)
	}
}

func TestSummaryCounts(t *testing.T) {
	r := &diagnostics.Report{Checks: []diagnostics.CheckResult{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false},
		{Name: "c", Skipped: true},
	}}

	passed, failed, skipped := r.Summary()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
	assert.False(t, r.AllOK())
}

func TestAllOKFailsOnMissingCapability(t *testing.T) {
	r := &diagnostics.Report{
		Missing: []string{"routing.Skills"},
		Checks:  []diagnostics.CheckResult{{Name: "a", Passed: true}},
	}
	assert.False(t, r.AllOK())
}
