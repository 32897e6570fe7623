package compiler

import (
	"fmt"
	"strings"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// objective sums every weighted term into one linear expression.
func (b *builder) objective() sat.Linear {
	var obj sat.Linear
	for _, t := range b.terms {
		obj = obj.Plus(t.Linear().Scale(t.Weight))
	}
	return obj
}

// Breakdown evaluates every term under an assignment. Causes list the
// items with a nonzero value.
func (c *Compiled) Breakdown(a *sat.Assignment) []swsched.Penalty {
	out := make([]swsched.Penalty, 0, len(c.terms))
	for _, t := range c.terms {
		p := swsched.Penalty{Name: t.Name, Weight: t.Weight}
		for _, it := range t.Items {
			v := a.Linear(it.Expr)
			if v == 0 {
				continue
			}
			p.Raw += int64(v)
			if v == 1 {
				p.Causes = append(p.Causes, it.Cause)
			} else {
				p.Causes = append(p.Causes, fmt.Sprintf("%s (%d)", it.Cause, v))
			}
		}
		p.Weighted = p.Raw * int64(t.Weight)
		out = append(out, p)
	}
	return out
}

// Total adds up the weighted values of a breakdown.
func Total(ps []swsched.Penalty) int64 {
	var n int64
	for _, p := range ps {
		n += p.Weighted
	}
	return n
}

// Describe renders the objective as name*weight pairs for logging.
func (c *Compiled) Describe() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = fmt.Sprintf("%d*%s[%d]", t.Weight, t.Name, len(t.Items))
	}
	return strings.Join(parts, " + ")
}
