// Package merger combines the ranked occurrence lists of two keywords into a
// single top-N document list.
package merger

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

// DefaultLimit is the number of documents returned when no limit is given.
const DefaultLimit = 5

// candidate is one document in the merged ranking.
type candidate struct {
	docID     string
	frequency int
	origin    int // 0 for the first keyword's list, 1 for the second
	rank      int // position in the origin list
}

// TopSearch merges first and second, each ranked by descending frequency,
// and returns up to limit document IDs. A document in both lists counts once
// at the higher of its two frequencies. Equal frequencies favour the
// document drawn from first, then earlier list position. limit <= 0 means
// DefaultLimit.
func TopSearch(first, second index.OccurrenceList, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	merged := make([]candidate, 0, len(first)+len(second))
	seen := make(map[string]int, len(first)+len(second))
	for origin, list := range []index.OccurrenceList{first, second} {
		for rank, occ := range list {
			c := candidate{docID: occ.DocID, frequency: occ.Frequency, origin: origin, rank: rank}
			if i, ok := seen[occ.DocID]; ok {
				if c.frequency > merged[i].frequency {
					merged[i] = c
				}
				continue
			}
			seen[occ.DocID] = len(merged)
			merged = append(merged, c)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.frequency != b.frequency {
			return a.frequency > b.frequency
		}
		if a.origin != b.origin {
			return a.origin < b.origin
		}
		return a.rank < b.rank
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	docs := make([]string, len(merged))
	for i, c := range merged {
		docs[i] = c.docID
	}
	return docs
}
