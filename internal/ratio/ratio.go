// Package ratio suggests simple proportion patterns for a vault bay.
// Historic vaults were set out with small integer ratios or square
// roots; matching the measured aspect ratio against those patterns
// gives the surveyor a shortlist of plausible design proportions.
package ratio

import (
	"fmt"
	"math"
	"sort"
)

const (
	// maxDenominator bounds the p/q candidates.
	maxDenominator = 9

	// defaultMaxResults is how many suggestions Suggest returns.
	defaultMaxResults = 5
)

// roots are the square-root candidates: sqrt(2) for ad quadratum
// setting-out, sqrt(3) and friends for the rarer triangulated plans.
var roots = []int{2, 3, 5, 6, 7, 8, 9}

// Suggestion is one candidate proportion with its relative error
// against the target.
type Suggestion struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Err        float64 `json:"err"`
	ErrPercent float64 `json:"err_percentage"`
}

func candidate(label string, value, target float64) Suggestion {
	rel := math.Abs(value-target) / target
	return Suggestion{
		Label:      label,
		Value:      value,
		Err:        rel,
		ErrPercent: rel * 100,
	}
}

// Suggest returns up to defaultMaxResults simple ratio patterns closest
// to the target, best first. Non-positive or non-finite targets yield
// no suggestions.
func Suggest(target float64) []Suggestion {
	if target <= 0 || math.IsInf(target, 0) || math.IsNaN(target) {
		return nil
	}

	var cands []Suggestion
	cands = append(cands, candidate("1", 1.0, target))

	for q := 1; q <= maxDenominator; q++ {
		for p := 1; p <= maxDenominator; p++ {
			cands = append(cands, candidate(fmt.Sprintf("%d/%d", p, q), float64(p)/float64(q), target))
		}
	}

	for _, n := range roots {
		r := math.Sqrt(float64(n))
		cands = append(cands, candidate(fmt.Sprintf("sqrt(%d)", n), r, target))
		cands = append(cands, candidate(fmt.Sprintf("1/sqrt(%d)", n), 1/r, target))
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].ErrPercent < cands[j].ErrPercent
	})

	// Many p/q pairs reduce to the same value; keep the first label for
	// each distinct value.
	seen := make(map[float64]bool)
	out := make([]Suggestion, 0, defaultMaxResults)
	for _, c := range cands {
		key := math.Round(c.Value*1e6) / 1e6
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if len(out) >= defaultMaxResults {
			break
		}
	}
	return out
}
