// Package metrics records solve runs as Prometheus metrics on a private
// registry and writes them in the text exposition format.
package metrics

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/swsched/swsched/pkg/swsched/solver"
)

// Collector implements solver.Observer.
type Collector struct {
	registry     *prometheus.Registry
	solves       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	improvements prometheus.Counter
	firstFound   prometheus.Histogram
	objective    prometheus.Gauge
	penalties    *prometheus.GaugeVec
	placements   prometheus.Gauge

	seen map[solver.RunID]bool
}

var _ solver.Observer = (*Collector)(nil)

func New() *Collector {
	registry := prometheus.NewRegistry()

	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swsched_solves_total",
		Help: "Number of finished solves by status",
	}, []string{"status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swsched_solve_duration_seconds",
		Help:    "Wall time of a solve",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	improvements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swsched_improving_solutions_total",
		Help: "Number of improving solutions found during search",
	})

	firstFound := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "swsched_first_solution_seconds",
		Help:    "Time until the first feasible timetable",
		Buckets: prometheus.DefBuckets,
	})

	objective := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "swsched_objective",
		Help: "Objective value of the last timetable",
	})

	penalties := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "swsched_penalty",
		Help: "Weighted value of each penalty term in the last timetable",
	}, []string{"term"})

	placements := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "swsched_placed_courses",
		Help: "Courses in the last timetable",
	})

	registry.MustRegister(solves, duration, improvements, firstFound, objective, penalties, placements)

	return &Collector{
		registry:     registry,
		solves:       solves,
		duration:     duration,
		improvements: improvements,
		firstFound:   firstFound,
		objective:    objective,
		penalties:    penalties,
		placements:   placements,
		seen:         make(map[solver.RunID]bool),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveSolution(run solver.RunID, _ int, elapsed time.Duration) {
	c.improvements.Inc()
	if !c.seen[run] {
		c.seen[run] = true
		c.firstFound.Observe(elapsed.Seconds())
	}
}

func (c *Collector) ObserveResult(run solver.RunID, s *solver.Solution) {
	delete(c.seen, run)
	status := string(s.Status)
	c.solves.WithLabelValues(status).Inc()
	c.duration.WithLabelValues(status).Observe(s.Elapsed.Seconds())
	if !s.HasTimetable() {
		return
	}
	c.objective.Set(float64(s.Objective))
	c.placements.Set(float64(len(s.Timetable.Entries)))
	for _, p := range s.Penalties {
		c.penalties.WithLabelValues(p.Name).Set(float64(p.Weighted))
	}
}

// WriteText writes every metric in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

// WriteFile writes the metrics to path, for node_exporter's textfile
// collector or a later push.
func (c *Collector) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
