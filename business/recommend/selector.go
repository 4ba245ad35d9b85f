package recommend

import (
	"fmt"
	"sort"

	"assessMatch/domain"
)

// Select performs balanced top-k selection: it returns at most k candidates,
// best-scored first, while guaranteeing each category its configured minimum
// whenever enough candidates of that category exist.
//
// Candidates are deduplicated by assessment name (first occurrence wins) and
// ties in score keep the original candidate order, so the result is fully
// deterministic. An unsatisfiable floor (minimums summing past k, or a
// category short on candidates) degrades to best effort rather than failing.
func Select(candidates []domain.ScoredAssessment, k int, minPerCategory map[string]int) ([]domain.ScoredAssessment, error) {
	if k < 0 {
		return nil, fmt.Errorf("k must not be negative, got %d", k)
	}
	for cat, min := range minPerCategory {
		if min < 0 {
			return nil, fmt.Errorf("floor for category %q must not be negative, got %d", cat, min)
		}
	}

	if k == 0 {
		return []domain.ScoredAssessment{}, nil
	}

	// Dedupe by name, keeping the first (and for equal names, best-positioned)
	// occurrence.
	seen := make(map[string]struct{}, len(candidates))
	pool := make([]domain.ScoredAssessment, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Assessment.Name]; ok {
			continue
		}
		seen[c.Assessment.Name] = struct{}{}
		pool = append(pool, c)
	}

	// Global descending-score order; SliceStable keeps original order on ties.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	if len(pool) <= k {
		return pool, nil
	}

	selected := make([]bool, len(pool))
	taken := 0

	// Satisfy floors first, visiting categories in sorted-name order so the
	// degraded (sum of floors > k) case is deterministic too.
	cats := make([]string, 0, len(minPerCategory))
	for cat := range minPerCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		need := minPerCategory[cat]
		for i := range pool {
			if need == 0 || taken == k {
				break
			}
			if selected[i] || pool[i].Assessment.Category() != cat {
				continue
			}
			selected[i] = true
			taken++
			need--
		}
	}

	// Fill the remaining slots from the globally best unselected candidates.
	for i := range pool {
		if taken == k {
			break
		}
		if selected[i] {
			continue
		}
		selected[i] = true
		taken++
	}

	// pool is already in descending-score order, so collecting in index order
	// yields the final ordering.
	out := make([]domain.ScoredAssessment, 0, taken)
	for i := range pool {
		if selected[i] {
			out = append(out, pool[i])
		}
	}

	return out, nil
}
