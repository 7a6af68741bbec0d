package playlist

import (
	"context"
	"sort"

	"apollo/internal/catalog"
	"apollo/internal/textutil"
)

// Scorer rates how alike two strings are, in [0,1].
type Scorer func(a, b string) float64

// Candidate is a catalog track proposed as a replacement.
type Candidate struct {
	Path  string
	Title string
	Score float64
}

type entry struct {
	title string
	path  string
}

// Index holds the catalog's (title, path) pairs in insertion order.
type Index struct {
	entries []entry
	score   Scorer
}

// NewIndex snapshots the catalog. A nil scorer uses textutil.Similarity.
func NewIndex(ctx context.Context, q catalog.Querier, score Scorer) (*Index, error) {
	tracks, err := q.QueryTracks(ctx, catalog.AllTracks())
	if err != nil {
		return nil, err
	}
	if score == nil {
		score = textutil.Similarity
	}
	idx := &Index{entries: make([]entry, 0, len(tracks)), score: score}
	for _, t := range tracks {
		idx.entries = append(idx.entries, entry{title: t.Title, path: t.Path})
	}
	return idx, nil
}

// Len returns the number of indexed tracks.
func (i *Index) Len() int {
	return len(i.entries)
}

// Rank scores every title against key and returns the best n candidates,
// highest first. Ties keep catalog order. Only an empty catalog yields no
// candidates.
func (i *Index) Rank(key string, n int) []Candidate {
	if n <= 0 {
		return nil
	}
	scored := make([]Candidate, 0, len(i.entries))
	for _, e := range i.entries {
		scored = append(scored, Candidate{Path: e.path, Title: e.title, Score: i.score(key, e.title)})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
