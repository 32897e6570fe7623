package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swsched/swsched/pkg/swsched"
	"github.com/swsched/swsched/pkg/swsched/solver"
)

func TestCollector(t *testing.T) {
	c := New()
	c.ObserveSolution("run-1", 40, 10*time.Millisecond)
	c.ObserveSolution("run-1", 25, 20*time.Millisecond)
	c.ObserveResult("run-1", &solver.Solution{
		Status:    solver.StatusOptimal,
		Objective: 25,
		Elapsed:   30 * time.Millisecond,
		Timetable: swsched.Timetable{Entries: make([]swsched.Entry, 3)},
		Penalties: []swsched.Penalty{
			{Name: swsched.TermDaysWorked, Weighted: 20},
			{Name: swsched.TermSlotNeutral, Weighted: 5},
		},
	})
	c.ObserveResult("run-2", &solver.Solution{Status: solver.StatusInfeasible})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.improvements))
	assert.Equal(t, 1, testutil.CollectAndCount(c.firstFound))
	assert.Equal(t, 25.0, testutil.ToFloat64(c.objective))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.placements))
	assert.Equal(t, 20.0, testutil.ToFloat64(c.penalties.WithLabelValues(swsched.TermDaysWorked)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.solves.WithLabelValues("optimal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.solves.WithLabelValues("infeasible")))
	assert.Empty(t, c.seen)
}

func TestWriteText(t *testing.T) {
	c := New()
	c.ObserveResult("run-1", &solver.Solution{Status: solver.StatusOptimal, Objective: 7})

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), `swsched_solves_total{status="optimal"} 1`)
	assert.Contains(t, buf.String(), "swsched_objective 7")

	path := filepath.Join(t.TempDir(), "swsched.prom")
	require.NoError(t, c.WriteFile(path))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(written))
}
