// Package selector picks the next lesson to surface for a context.
//
// Candidates are catalog lessons sharing at least one tag with the context or
// the learner's skills. Each candidate is weighted by 1/(seen+1), so lessons
// opened often are pushed down but never excluded. With no candidates the
// pick falls back to a uniform draw over the whole catalog.
package selector

import (
	"github.com/abhisek/nudge/internal/ambient"
	"github.com/abhisek/nudge/internal/catalog"
)

// Candidates returns the lessons whose tags overlap the context tags or the
// skill interests, in catalog order.
func Candidates(c *catalog.Catalog, ctx ambient.Context, skills []string) []catalog.Lesson {
	want := make(map[string]bool, len(ctx.Tags)+len(skills))
	for _, t := range ctx.Tags {
		want[t] = true
	}
	for _, s := range skills {
		want[s] = true
	}

	var out []catalog.Lesson
	for i := 0; i < c.Len(); i++ {
		if l := c.At(i); l.HasAnyTag(want) {
			out = append(out, l)
		}
	}
	return out
}

// Weight returns the selection weight for a lesson opened seen times.
func Weight(seen int) float64 {
	if seen < 0 {
		seen = 0
	}
	return 1 / float64(seen+1)
}

// Pick selects one lesson. It always returns a lesson from the catalog.
func Pick(c *catalog.Catalog, ctx ambient.Context, skills []string, seen map[string]int, r ambient.Rand) catalog.Lesson {
	candidates := Candidates(c, ctx, skills)
	if len(candidates) == 0 {
		return c.At(r.IntN(c.Len()))
	}
	return weighted(candidates, seen, r)
}

// weighted is a roulette-wheel draw over candidates.
func weighted(candidates []catalog.Lesson, seen map[string]int, r ambient.Rand) catalog.Lesson {
	weights := make([]float64, len(candidates))
	var total float64
	for i, l := range candidates {
		weights[i] = Weight(seen[l.ID])
		total += weights[i]
	}

	draw := r.Float64() * total
	for i, w := range weights {
		if draw < w {
			return candidates[i]
		}
		draw -= w
	}
	// Rounding can leave a sliver past the last weight.
	return candidates[len(candidates)-1]
}
