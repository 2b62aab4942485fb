package catalog

import (
	"slices"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// suggestIndex completes model numbers from a lower-case prefix trie.
type suggestIndex struct {
	trie *patricia.Trie
}

func newSuggestIndex(records []models.Processor) *suggestIndex {
	idx := &suggestIndex{trie: patricia.NewTrie()}
	for i := range records {
		model := strings.TrimSpace(records[i].Model)
		if model == "" {
			continue
		}
		idx.trie.Insert(patricia.Prefix(strings.ToLower(model)), model)
	}
	return idx
}

// complete returns up to n model numbers under prefix, sorted. An empty
// prefix lists every model.
func (s *suggestIndex) complete(prefix string, n int) []string {
	if n <= 0 {
		return nil
	}
	key := strings.ToLower(strings.TrimSpace(prefix))

	var out []string
	_ = s.trie.VisitSubtree(patricia.Prefix(key), func(_ patricia.Prefix, item patricia.Item) error {
		if model, ok := item.(string); ok {
			out = append(out, model)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out[:min(n, len(out))]
}
