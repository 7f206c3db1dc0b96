// Package match implements the fuzzy suggestion matcher. It is a thin
// ranking layer over github.com/sahilm/fuzzy: pure, stateless, and
// deterministic for a given input.
package match

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// keyedSource adapts a candidate slice to fuzzy.Source through a key
// extractor.
type keyedSource[T any] struct {
	items []T
	key   func(T) string
}

func (s keyedSource[T]) String(i int) string { return s.key(s.items[i]) }
func (s keyedSource[T]) Len() int            { return len(s.items) }

// Top returns at most limit candidates whose extracted key approximately
// matches query, best match first. Ties are broken by original candidate
// order. An empty query or empty candidate list yields nil; there is no
// implicit "show all".
func Top[T any](query string, candidates []T, key func(T) string, limit int) []T {
	if query == "" || len(candidates) == 0 || limit <= 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, keyedSource[T]{items: candidates, key: key})

	// FindFrom ranks by score but leaves equal-score ordering up to the
	// library. Re-sort so ties follow candidate order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = candidates[m.Index]
	}
	return out
}
