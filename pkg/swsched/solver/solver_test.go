package solver_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/swsched/swsched/internal/check"
	"github.com/swsched/swsched/internal/fixture"
	"github.com/swsched/swsched/pkg/swsched"
	"github.com/swsched/swsched/pkg/swsched/solver"
)

func TestSolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solver Suite")
}

type recorder struct {
	objectives []int
	results    []*solver.Solution
	runs       []solver.RunID
}

func (r *recorder) ObserveSolution(run solver.RunID, objective int, _ time.Duration) {
	r.runs = append(r.runs, run)
	r.objectives = append(r.objectives, objective)
}

func (r *recorder) ObserveResult(_ solver.RunID, s *solver.Solution) {
	r.results = append(r.results, s)
}

func penalty(s *solver.Solution, name string) swsched.Penalty {
	for _, p := range s.Penalties {
		if p.Name == name {
			return p
		}
	}
	return swsched.Penalty{Name: name}
}

var _ = Describe("Solver", func() {
	var (
		ctx context.Context
		s   *solver.Solver
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = solver.New(solver.WithRunIDProvider(solver.NewCountingRunIDProvider("test")))
	})

	It("should place a single regular course", func() {
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead).
			Person("follow", swsched.Follow).
			Course("lindy", swsched.Regular, []string{"lead", "follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Error()).ToNot(HaveOccurred())
		Expect(sol.Status).To(Equal(solver.StatusOptimal))
		Expect(sol.RunID).To(Equal(solver.RunID("test-1")))
		Expect(sol.Objective).To(BeZero())
		Expect(sol.Timetable.Entries).To(HaveLen(1))
		Expect(sol.Timetable.Entries[0].Instructors).To(ConsistOf(0, 1))
		Expect(check.Check(cfg, sol.Timetable)).To(BeEmpty())
	})

	It("should report infeasibility when the allow-list excludes everyone", func() {
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead).
			Person("follow", swsched.Follow).
			Course("lindy", swsched.Regular, nil).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Status).To(Equal(solver.StatusInfeasible))
		Expect(sol.HasTimetable()).To(BeFalse())
		Expect(sol.Timetable.Entries).To(BeEmpty())

		var ns swsched.NotSatisfiable
		Expect(errors.As(sol.Error(), &ns)).To(BeTrue())
		Expect(ns).ToNot(BeEmpty())
	})

	It("should fall back to a placeholder and report its penalty", func() {
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead).
			Person("follow", swsched.Follow).
			Placeholder("missing follow", swsched.Follow).
			Course("lindy", swsched.Regular, []string{"lead", "missing follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Status).To(Equal(solver.StatusOptimal))
		Expect(sol.Timetable.Entries[0].Instructors).To(ConsistOf(0, 2))

		p := penalty(sol, swsched.TermPlaceholder)
		Expect(p.Raw).To(BeEquivalentTo(1))
		Expect(p.Weighted).To(BeEquivalentTo(cfg.Weights.Placeholder))
		Expect(p.Causes).To(ConsistOf(ContainSubstring("missing follow")))
		Expect(sol.Objective).To(Equal(cfg.Weights.Placeholder))
	})

	It("should let placeholders stand in on several courses at once", func() {
		cfg := fixture.Grid(1, 1, "big", "small").
			Person("lead", swsched.Lead).
			Person("other lead", swsched.Lead).
			Placeholder("missing follow", swsched.Follow).
			Course("lindy", swsched.Regular, []string{"lead", "missing follow"}).
			Course("balboa", swsched.Regular, []string{"other lead", "missing follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Status).To(Equal(solver.StatusOptimal))
		Expect(penalty(sol, swsched.TermPlaceholder).Raw).To(BeEquivalentTo(2))
	})

	DescribeTable("days worked",
		func(first, second int, days int, raw int64) {
			cfg := fixture.Grid(2, 3, "big").
				Person("solo", swsched.Lead).
				Course("a", swsched.Solo, []string{"solo"}, fixture.PinSlot(first)).
				Course("b", swsched.Solo, []string{"solo"}, fixture.PinSlot(second)).
				Only(swsched.TermDaysWorked).
				Build()

			sol, err := s.Solve(ctx, cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(sol.Values[swsched.Key1(swsched.KindDaysWorked, 0)]).To(Equal(days))
			Expect(sol.Values[swsched.Key1(swsched.KindLoad, 0)]).To(Equal(2))
			Expect(penalty(sol, swsched.TermDaysWorked).Raw).To(Equal(raw))
		},
		Entry("on different days", 0, 3, 2, int64(1)),
		Entry("on the same day", 0, 1, 1, int64(0)),
	)

	DescribeTable("split day",
		func(slots []int, raw int64) {
			b := fixture.Grid(1, 3, "big").Person("solo", swsched.Lead).Only(swsched.TermSplitDay)
			for i, slot := range slots {
				b.Course(string(rune('a'+i)), swsched.Solo, []string{"solo"}, fixture.PinSlot(slot))
			}
			cfg := b.Build()

			sol, err := s.Solve(ctx, cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(penalty(sol, swsched.TermSplitDay).Raw).To(Equal(raw))
			Expect(sol.Objective).To(BeEquivalentTo(raw * int64(cfg.Weights.SplitDay)))
		},
		Entry("first and last time", []int{0, 2}, int64(1)),
		Entry("a full day", []int{0, 1, 2}, int64(0)),
		Entry("a single course", []int{0}, int64(0)),
	)

	It("should keep a sequenced group in one contiguous block", func() {
		cfg := fixture.Grid(2, 3, "big").
			Person("lead", swsched.Lead).
			Person("other", swsched.Lead).
			Course("a", swsched.Solo, []string{"lead"}, fixture.PinSlot(0)).
			Course("b", swsched.Solo, []string{"other"}).
			Group("lindy track", swsched.SameDaySequenced, 0, 1).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Values[swsched.Key1(swsched.KindCourseDay, 1)]).To(Equal(0))
		Expect(sol.Values[swsched.Key1(swsched.KindCourseTime, 1)]).To(Equal(1))
	})

	It("should steer people to their preferred slots", func() {
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead, fixture.Slots("dnp")).
			Person("follow", swsched.Follow, fixture.Slots("pnd")).
			Person("other follow", swsched.Follow, fixture.Slots("ddp")).
			Course("lindy", swsched.Regular, []string{"lead", "follow", "other follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Status).To(Equal(solver.StatusOptimal))
		Expect(sol.Timetable.Entries[0].Slot).To(Equal(2))
		Expect(sol.Timetable.Entries[0].Instructors).To(ConsistOf(0, 2))
		Expect(sol.Objective).To(BeZero())
	})

	It("should never schedule a forbidden slot", func() {
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead, fixture.Slots("ffn")).
			Person("follow", swsched.Follow).
			Course("lindy", swsched.Regular, []string{"lead", "follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(sol.Timetable.Entries[0].Slot).To(Equal(2))
	})

	It("should reject invalid configurations before solving", func() {
		cfg := fixture.Grid(1, 1, "big").
			Person("lead", swsched.Lead).
			Course("solo", swsched.Solo, []string{"lead"}).
			Build()
		cfg.Courses[0].Eligible = []int{7}

		_, err := s.Solve(ctx, cfg)
		var ce *swsched.ConfigError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Name).To(Equal("solo"))
	})

	It("should notify observers and trace the search", func() {
		var (
			rec   = &recorder{}
			trace bytes.Buffer
		)
		s = solver.New(
			solver.WithRunIDProvider(solver.NewCountingRunIDProvider("obs")),
			solver.WithObserver(rec),
			solver.WithTraceWriter(&trace),
			solver.WithTimeLimit(10*time.Second),
		)
		cfg := fixture.Grid(1, 3, "big").
			Person("lead", swsched.Lead, fixture.Slots("pdd")).
			Person("follow", swsched.Follow).
			Course("lindy", swsched.Regular, []string{"lead", "follow"}).
			Build()

		sol, err := s.Solve(ctx, cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.results).To(ConsistOf(sol))
		Expect(rec.objectives).ToNot(BeEmpty())
		Expect(rec.objectives[len(rec.objectives)-1]).To(Equal(sol.Objective))
		Expect(rec.runs).To(HaveEach(solver.RunID("obs-1")))
		Expect(trace.String()).ToNot(BeEmpty())
	})

	It("should hand out run ids in order", func() {
		cfg := fixture.Grid(1, 1, "big").
			Person("lead", swsched.Lead).
			Course("solo", swsched.Solo, []string{"lead"}).
			Build()
		for _, want := range []solver.RunID{"test-1", "test-2"} {
			sol, err := s.Solve(ctx, cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(sol.RunID).To(Equal(want))
		}
	})

	It("should write the hard model as DIMACS", func() {
		cfg := fixture.Grid(1, 2, "big").
			Person("lead", swsched.Lead).
			Course("solo", swsched.Solo, []string{"lead"}).
			Build()

		var out bytes.Buffer
		stats, err := solver.WriteDimacs(cfg, &out)
		Expect(err).ToNot(HaveOccurred())
		Expect(stats.Rules).To(BeNumerically(">", 0))
		Expect(out.String()).To(ContainSubstring(fmt.Sprintf("p cnf %d %d\n", stats.Variables, stats.Clauses)))
	})
})

var _ = Describe("UUIDRunIDProvider", func() {
	It("should fall back to an error id when no uuid can be made", func() {
		p := solver.NewCustomUUIDRunIDProvider(func() (uuid.UUID, error) {
			return uuid.Nil, errors.New("entropy")
		})
		Expect(string(p.NextRunID())).To(ContainSubstring("with error: entropy"))
	})
})
