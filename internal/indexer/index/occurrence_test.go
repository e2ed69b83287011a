package index

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listOf(doc string, freqs ...int) OccurrenceList {
	l := make(OccurrenceList, len(freqs))
	for i, f := range freqs {
		l[i] = Occurrence{DocID: doc, Frequency: f}
	}
	return l
}

func frequencies(l OccurrenceList) []int {
	out := make([]int, len(l))
	for i, o := range l {
		out[i] = o.Frequency
	}
	return out
}

func TestInsertLastPlacesBetweenNeighbours(t *testing.T) {
	list := listOf("olivia", 38, 35, 31, 28, 22, 17, 12, 11, 9, 4, 3, 2, 1, 21)

	probes := InsertLast(list)

	assert.Equal(t, []int{38, 35, 31, 28, 22, 21, 17, 12, 11, 9, 4, 3, 2, 1}, frequencies(list))
	assert.Equal(t, []int{6, 2, 4, 5}, probes)
}

func TestInsertLastCases(t *testing.T) {
	tests := []struct {
		name   string
		freqs  []int
		want   []int
		probes []int
	}{
		{"single element", []int{7}, []int{7}, nil},
		{"lands mid list", []int{12, 8, 7, 5, 3, 2, 6}, []int{12, 8, 7, 6, 5, 3, 2}, []int{2, 4, 3}},
		{"goes first", []int{5, 3, 9}, []int{9, 5, 3}, []int{0}},
		{"goes last", []int{5, 3, 1}, []int{5, 3, 1}, []int{0, 1}},
		{"equal at mid", []int{9, 5, 3, 5}, []int{9, 5, 5, 3}, []int{1}},
		{"two elements smaller", []int{4, 2}, []int{4, 2}, []int{0}},
		{"two elements larger", []int{4, 6}, []int{6, 4}, []int{0}},
		{"two elements equal", []int{4, 4}, []int{4, 4}, []int{0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := listOf("d", tc.freqs...)
			probes := InsertLast(list)
			assert.Equal(t, tc.want, frequencies(list))
			assert.Equal(t, tc.probes, probes)
		})
	}
}

func TestInsertLastEqualGoesBeforePeer(t *testing.T) {
	list := OccurrenceList{
		{DocID: "a", Frequency: 9},
		{DocID: "b", Frequency: 5},
		{DocID: "c", Frequency: 3},
		{DocID: "new", Frequency: 5},
	}
	InsertLast(list)
	assert.Equal(t, []string{"a", "new", "b", "c"}, list.DocIDs())
}

func TestInsertDoesNotModifyInput(t *testing.T) {
	prefix := listOf("p", 10, 8, 4)
	out, probes := Insert(prefix, Occurrence{DocID: "q", Frequency: 9})

	assert.Equal(t, []int{10, 8, 4}, frequencies(prefix))
	assert.Equal(t, []int{10, 9, 8, 4}, frequencies(out))
	assert.Equal(t, []int{1, 0}, probes)

	out, probes = Insert(nil, Occurrence{DocID: "q", Frequency: 1})
	assert.Len(t, out, 1)
	assert.Nil(t, probes)
}

func TestInsertKeepsRankAndBoundsProbes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var list OccurrenceList
	for i := 0; i < 500; i++ {
		var probes []int
		list, probes = Insert(list, Occurrence{DocID: "d", Frequency: rng.Intn(40) + 1})
		require.True(t, list.IsRanked(), "after insert %d: %v", i, frequencies(list))
		limit := int(math.Ceil(math.Log2(float64(len(list))))) + 1
		assert.LessOrEqual(t, len(probes), limit)
	}
}

func TestIsRanked(t *testing.T) {
	assert.True(t, OccurrenceList(nil).IsRanked())
	assert.True(t, listOf("d", 3, 3, 1).IsRanked())
	assert.False(t, listOf("d", 1, 3).IsRanked())
}
