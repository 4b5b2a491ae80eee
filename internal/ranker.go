package internal

import "sort"

// RankResults orders results by descending relevance score.
// The sort is stable: equal scores keep their input (store) order.
func RankResults(results []SearchResult) []SearchResult {
	ranked := make([]SearchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	return ranked
}
