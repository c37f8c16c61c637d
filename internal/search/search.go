package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/mediaclubs/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is a filter match with metadata for highlighting
type Result struct {
	Item           domain.MediaItem
	MatchedIndexes []int // Character positions that matched
	Score          int   // Higher is better
}

// Index is a title index over media items. It implements sahilm/fuzzy.Source
// so filtering does not copy titles per query.
type Index struct {
	items       []domain.MediaItem
	titles      []string
	lowerTitles []string // Pre-computed lowercase titles
}

// NewIndex builds an index; items without a title are indexed under their ID
func NewIndex(items []domain.MediaItem) *Index {
	idx := &Index{
		items:       items,
		titles:      make([]string, len(items)),
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		title := item.GetTitle()
		if title == "" {
			title = item.GetID()
		}
		idx.titles[i] = title
		idx.lowerTitles[i] = strings.ToLower(title)
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.items) }

// Filter returns items whose title contains the query characters in order,
// best matches first. kinds restricts results to the given media kinds (none = all).
func (idx *Index) Filter(query string, kinds ...domain.MediaKind) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	allowed := makeKindSet(kinds)
	matches := fuzzy.FindFrom(query, idx)

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		item := idx.items[match.Index]
		if allowed != nil && !allowed[item.Kind] {
			continue
		}
		results = append(results, Result{
			Item:           item,
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		})
	}
	return results
}

// Rank returns items matching the query ordered by edit distance (closest first)
func (idx *Index) Rank(query string) []domain.MediaItem {
	query = strings.TrimSpace(query)
	if query == "" || idx.Len() == 0 {
		return nil
	}

	ranks := lfuzzy.RankFindFold(query, idx.titles)
	sort.Stable(ranks)

	results := make([]domain.MediaItem, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, idx.items[r.OriginalIndex])
	}
	return results
}

func makeKindSet(kinds []domain.MediaKind) map[domain.MediaKind]bool {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[domain.MediaKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
