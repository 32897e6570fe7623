package compiler

import (
	"github.com/go-air/gini/z"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// variables holds the primary decision variables and every channelled
// view derived from them. Slices are dense and indexed by the ids of the
// Config.
type variables struct {
	// placement[c][s][r]: course c is held in slot s and room r.
	placement [][][]z.Lit
	// teaches[t][c]: person t teaches course c.
	teaches [][]z.Lit

	activeAt    []sat.Int
	courseDay   []sat.Int
	courseTime  []sat.Int
	inVenue     [][]z.Lit
	courseVenue []sat.Int

	// busy[t][s][c] <=> activeAt[c] == s and teaches[t][c]
	busy [][][]z.Lit
	// occupied[t][s] <=> person t teaches some course in slot s
	occupied    [][]z.Lit
	occupiedDay [][]z.Lit
	// venueOccupied[t][v][d] <=> t teaches on day d in a course held in venue v
	venueOccupied [][][]z.Lit

	load []sat.Int
}

func declare(m *sat.Model, cfg *swsched.Config) *variables {
	var (
		nc = len(cfg.Courses)
		np = len(cfg.People)
		ns = cfg.NumSlots()
		nr = len(cfg.Rooms)
		nv = len(cfg.Venues)
		nd = len(cfg.Days)
		nt = cfg.TimesPerDay()
	)
	v := &variables{
		placement:     make([][][]z.Lit, nc),
		teaches:       make([][]z.Lit, np),
		activeAt:      make([]sat.Int, nc),
		courseDay:     make([]sat.Int, nc),
		courseTime:    make([]sat.Int, nc),
		inVenue:       make([][]z.Lit, nc),
		courseVenue:   make([]sat.Int, nc),
		busy:          make([][][]z.Lit, np),
		occupied:      make([][]z.Lit, np),
		occupiedDay:   make([][]z.Lit, np),
		venueOccupied: make([][][]z.Lit, np),
		load:          make([]sat.Int, np),
	}

	for c := 0; c < nc; c++ {
		v.placement[c] = make([][]z.Lit, ns)
		for s := 0; s < ns; s++ {
			v.placement[c][s] = make([]z.Lit, nr)
			for r := 0; r < nr; r++ {
				v.placement[c][s][r] = m.Bool()
			}
		}
	}
	for t := 0; t < np; t++ {
		v.teaches[t] = make([]z.Lit, nc)
		for c := 0; c < nc; c++ {
			v.teaches[t][c] = m.Bool()
		}
	}

	for c := 0; c < nc; c++ {
		at := make([]z.Lit, ns)
		for s := 0; s < ns; s++ {
			at[s] = m.ReifyEquals(sat.Lits(v.placement[c][s]...), 1)
		}
		v.activeAt[c] = m.IntFromIndicators(0, at)
		v.courseDay[c] = m.Div(v.activeAt[c], nt)
		v.courseTime[c] = m.Mod(v.activeAt[c], nt)

		v.inVenue[c] = make([]z.Lit, nv)
		for ven := 0; ven < nv; ven++ {
			var ls []z.Lit
			for _, r := range cfg.RoomsIn(ven) {
				for s := 0; s < ns; s++ {
					ls = append(ls, v.placement[c][s][r])
				}
			}
			v.inVenue[c][ven] = m.Or(ls...)
		}
		v.courseVenue[c] = m.IntFromIndicators(0, v.inVenue[c])
	}

	for t, p := range cfg.People {
		v.busy[t] = make([][]z.Lit, ns)
		v.occupied[t] = make([]z.Lit, ns)
		for s := 0; s < ns; s++ {
			v.busy[t][s] = make([]z.Lit, nc)
			for c, course := range cfg.Courses {
				if !course.IsEligible(t) {
					v.busy[t][s][c] = m.False()
					continue
				}
				v.busy[t][s][c] = m.And(v.activeAt[c].Eq(s), v.teaches[t][c])
			}
			if p.IsPlaceholder() {
				// placeholders may stand in on several courses at once
				v.occupied[t][s] = m.Or(v.busy[t][s]...)
			} else {
				v.occupied[t][s] = m.ReifyEquals(sat.Lits(v.busy[t][s]...), 1)
			}
		}

		v.occupiedDay[t] = make([]z.Lit, nd)
		for d := 0; d < nd; d++ {
			ls := make([]z.Lit, 0, nt)
			for tm := 0; tm < nt; tm++ {
				ls = append(ls, v.occupied[t][cfg.SlotIndex(d, tm)])
			}
			v.occupiedDay[t][d] = m.Or(ls...)
		}

		v.venueOccupied[t] = make([][]z.Lit, nv)
		for ven := 0; ven < nv; ven++ {
			v.venueOccupied[t][ven] = make([]z.Lit, nd)
			for d := 0; d < nd; d++ {
				var ls []z.Lit
				for tm := 0; tm < nt; tm++ {
					s := cfg.SlotIndex(d, tm)
					for c := range cfg.Courses {
						if b := v.busy[t][s][c]; b != m.False() {
							ls = append(ls, m.And(b, v.inVenue[c][ven]))
						}
					}
				}
				v.venueOccupied[t][ven][d] = m.Or(ls...)
			}
		}

		v.load[t] = m.Count(v.eligibleTeaches(cfg, t)...)
	}
	return v
}

// eligibleTeaches returns the teaches literals of person t restricted to
// the courses t may teach; the others are forced false.
func (v *variables) eligibleTeaches(cfg *swsched.Config, t int) []z.Lit {
	var ls []z.Lit
	for c, course := range cfg.Courses {
		if course.IsEligible(t) {
			ls = append(ls, v.teaches[t][c])
		}
	}
	return ls
}

// slotsOf returns the slot indices of day d.
func slotsOf(cfg *swsched.Config, d int) []int {
	out := make([]int, cfg.TimesPerDay())
	for tm := range out {
		out[tm] = cfg.SlotIndex(d, tm)
	}
	return out
}
