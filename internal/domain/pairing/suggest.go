package pairing

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// splits lists the three distinct ways to divide positions 0..3 into two
// pairs. The first pair always holds position 0, so team order never
// produces a duplicate.
var splits = [3][4]int{
	{0, 1, 2, 3},
	{0, 2, 1, 3},
	{0, 3, 1, 2},
}

func newSuggestion(mode Mode, a1, a2, b1, b2 Candidate) Suggestion {
	weightA := a1.Weight + a2.Weight
	weightB := b1.Weight + b2.Weight
	diff := weightA - weightB
	if diff < 0 {
		diff = -diff
	}
	return Suggestion{
		Mode:        mode,
		TeamA:       [2]Candidate{a1, a2},
		TeamB:       [2]Candidate{b1, b2},
		TeamAWeight: weightA,
		TeamBWeight: weightB,
		Difference:  diff,
	}
}

func bestSplit(mode Mode, group [4]Candidate) Suggestion {
	var best Suggestion
	for i, sp := range splits {
		cand := newSuggestion(mode, group[sp[0]], group[sp[1]], group[sp[2]], group[sp[3]])
		if i == 0 || cand.Difference < best.Difference {
			best = cand
		}
	}
	return best
}

// Exhaustive returns the minimum-difference pairing over every 4-subset
// of pool. Ties keep the first pairing in combinatorial order.
func Exhaustive(pool []Candidate) (Suggestion, error) {
	if len(pool) < 4 {
		return Suggestion{}, errors.Wrapf(ErrPoolTooSmall, "got %d", len(pool))
	}

	best, _ := searchFrom(pool, 0)
	for i := 1; i <= len(pool)-4 && best.Difference > 0; i++ {
		cand, ok := searchFrom(pool, i)
		if ok && cand.Difference < best.Difference {
			best = cand
		}
	}
	return best, nil
}

// searchFrom scans all subsets whose lowest index is i.
func searchFrom(pool []Candidate, i int) (Suggestion, bool) {
	n := len(pool)
	var best Suggestion
	found := false
	for j := i + 1; j < n; j++ {
		for k := j + 1; k < n; k++ {
			for l := k + 1; l < n; l++ {
				cand := bestSplit(ModeExhaustive, [4]Candidate{pool[i], pool[j], pool[k], pool[l]})
				if !found || cand.Difference < best.Difference {
					best = cand
					found = true
				}
				if best.Difference == 0 {
					return best, true
				}
			}
		}
	}
	return best, found
}

// Constrained picks the best of the three splits of a fixed group.
func Constrained(group []Candidate) (Suggestion, error) {
	if len(group) != 4 {
		return Suggestion{}, errors.Wrapf(ErrInvalidGroupSize, "got %d", len(group))
	}
	return bestSplit(ModeConstrained, [4]Candidate{group[0], group[1], group[2], group[3]}), nil
}

// Ranked sorts the group by weight descending and pairs rank 1 with
// rank 4 against rank 2 with rank 3. Equal weights keep input order.
func Ranked(group []Candidate) (Suggestion, error) {
	if len(group) != 4 {
		return Suggestion{}, errors.Wrapf(ErrInvalidGroupSize, "got %d", len(group))
	}

	ordered := append([]Candidate(nil), group...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})
	return newSuggestion(ModeRanked, ordered[0], ordered[3], ordered[1], ordered[2]), nil
}
