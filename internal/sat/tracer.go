package sat

import (
	"fmt"
	"io"
	"time"
)

// SearchPosition describes one step of the optimisation loop.
type SearchPosition interface {
	Iteration() int
	Status() Status
	Objective() int
	Solutions() int
	Elapsed() time.Duration
	Conflicts() []string
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nIteration: %d\nStatus: %s\nElapsed: %s\n", p.Iteration(), p.Status(), p.Elapsed())
	switch p.Status() {
	case StatusFeasible, StatusOptimal:
		fmt.Fprintf(t.Writer, "Objective: %d\nSolutions: %d\n", p.Objective(), p.Solutions())
	case StatusInfeasible:
		fmt.Fprintf(t.Writer, "Conflict:\n")
		for _, c := range p.Conflicts() {
			fmt.Fprintf(t.Writer, "- %s\n", c)
		}
	}
}

type position struct {
	iteration int
	status    Status
	objective int
	solutions int
	elapsed   time.Duration
	conflicts []string
}

func (p position) Iteration() int         { return p.iteration }
func (p position) Status() Status         { return p.status }
func (p position) Objective() int         { return p.objective }
func (p position) Solutions() int         { return p.solutions }
func (p position) Elapsed() time.Duration { return p.elapsed }
func (p position) Conflicts() []string    { return p.conflicts }
