package index

import "fmt"

// Occurrence records that a document contains a keyword Frequency times.
type Occurrence struct {
	DocID     string `json:"doc_id"`
	Frequency int    `json:"frequency"`
}

func (o Occurrence) String() string {
	return fmt.Sprintf("(%s,%d)", o.DocID, o.Frequency)
}

// OccurrenceList is kept in non-increasing frequency order. Where equal
// frequencies land relative to each other is decided by InsertLast.
type OccurrenceList []Occurrence

// IsRanked reports whether the list satisfies the descending-frequency order.
func (l OccurrenceList) IsRanked() bool {
	for i := 1; i < len(l); i++ {
		if l[i-1].Frequency < l[i].Frequency {
			return false
		}
	}
	return true
}

// DocIDs returns the document IDs in list order.
func (l OccurrenceList) DocIDs() []string {
	ids := make([]string, len(l))
	for i, o := range l {
		ids[i] = o.DocID
	}
	return ids
}

// InsertLast moves the last element of list into its ranked position. The
// elements before it must already be ranked. The search is a binary search
// over list[0:len-1]; the returned slice holds every midpoint probed, in
// order, and is nil when the list has fewer than two elements.
func InsertLast(list OccurrenceList) []int {
	n := len(list)
	if n < 2 {
		return nil
	}
	last := list[n-1]
	probes := make([]int, 0, 8)
	lo, hi := 0, n-2
	for lo <= hi {
		mid := (lo + hi) / 2
		probes = append(probes, mid)
		switch f := list[mid].Frequency; {
		case last.Frequency == f:
			moveLast(list, mid)
			return probes
		case last.Frequency > f:
			hi = mid - 1
			if hi < lo {
				moveLast(list, mid)
				return probes
			}
		default:
			lo = mid + 1
			if hi < lo {
				moveLast(list, mid+1)
				return probes
			}
		}
	}
	return probes
}

// Insert places occ into its ranked position in a copy of list and returns the
// new list along with the midpoints probed by the search. list is not
// modified.
func Insert(list OccurrenceList, occ Occurrence) (OccurrenceList, []int) {
	out := make(OccurrenceList, len(list), len(list)+1)
	copy(out, list)
	out = append(out, occ)
	probes := InsertLast(out)
	return out, probes
}

// moveLast shifts list[at:len-1] one slot right and puts the old last element
// at index at.
func moveLast(list OccurrenceList, at int) {
	last := list[len(list)-1]
	copy(list[at+1:], list[at:len(list)-1])
	list[at] = last
}
