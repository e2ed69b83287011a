package index

import (
	"fmt"
	"io"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
)

// Index maps keywords to their ranked occurrence lists. It is built one
// document at a time and is not safe for concurrent mutation; once built it
// may be read from many goroutines.
type Index struct {
	lists    map[string]OccurrenceList
	docCount int
}

func New() *Index {
	return &Index{
		lists: make(map[string]OccurrenceList, 1024),
	}
}

// Tally counts the keywords among tokens for a single document.
func Tally(docID string, tokens []string, normalizer *tokenizer.Normalizer) map[string]*Occurrence {
	kws := make(map[string]*Occurrence)
	for _, tok := range tokens {
		kw, ok := normalizer.Normalize(tok)
		if !ok {
			continue
		}
		occ, exists := kws[kw]
		if !exists {
			occ = &Occurrence{DocID: docID}
			kws[kw] = occ
		}
		occ.Frequency++
	}
	return kws
}

// MergeDocument folds one document's tally into the index. Each occurrence is
// appended to its keyword's list and moved into ranked position.
func (x *Index) MergeDocument(kws map[string]*Occurrence) {
	for kw, occ := range kws {
		if occ == nil || occ.Frequency <= 0 {
			continue
		}
		list, exists := x.lists[kw]
		if !exists {
			x.lists[kw] = OccurrenceList{*occ}
			continue
		}
		list = append(list, *occ)
		InsertLast(list)
		x.lists[kw] = list
	}
	x.docCount++
}

// Lookup returns a copy of the ranked list for keyword.
func (x *Index) Lookup(keyword string) (OccurrenceList, bool) {
	list, ok := x.lists[keyword]
	if !ok {
		return nil, false
	}
	out := make(OccurrenceList, len(list))
	copy(out, list)
	return out, true
}

// Contains reports whether keyword has been indexed.
func (x *Index) Contains(keyword string) bool {
	_, ok := x.lists[keyword]
	return ok
}

// Keywords returns every indexed keyword in lexical order.
func (x *Index) Keywords() []string {
	kws := make([]string, 0, len(x.lists))
	for kw := range x.lists {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// Len returns the number of distinct keywords.
func (x *Index) Len() int {
	return len(x.lists)
}

// DocCount returns the number of documents merged so far.
func (x *Index) DocCount() int {
	return x.docCount
}

// Dump writes one line per keyword: the keyword followed by its ranked list.
func (x *Index) Dump(w io.Writer) error {
	for _, kw := range x.Keywords() {
		if _, err := fmt.Fprintf(w, "%s %v\n", kw, x.lists[kw]); err != nil {
			return fmt.Errorf("writing keyword %q: %w", kw, err)
		}
	}
	return nil
}
