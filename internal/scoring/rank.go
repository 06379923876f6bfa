package scoring

import (
	"sort"

	"github.com/priorank/sitemap-prioritizer/internal/models"
)

// SortByPriority orders results by priority score descending, then URL depth
// descending. The sort is stable, so entries with equal keys keep the order
// they were produced in (sitemap traversal order).
func SortByPriority(results []models.ScoredURL) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PriorityScore != results[j].PriorityScore {
			return results[i].PriorityScore > results[j].PriorityScore
		}
		return results[i].URLDepth > results[j].URLDepth
	})
}
