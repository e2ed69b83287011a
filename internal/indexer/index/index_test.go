package index

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
)

func TestTally(t *testing.T) {
	n := tokenizer.NewNormalizer(tokenizer.NewNoiseWords([]string{"the", "a"}))
	tokens := strings.Fields("The cat saw a Cat. The cat? Dog, 42 dog's")

	kws := Tally("doc1", tokens, n)

	require.Len(t, kws, 3)
	assert.Equal(t, Occurrence{DocID: "doc1", Frequency: 3}, *kws["cat"])
	assert.Equal(t, Occurrence{DocID: "doc1", Frequency: 1}, *kws["saw"])
	assert.Equal(t, Occurrence{DocID: "doc1", Frequency: 1}, *kws["dog"])
}

func TestMergeDocumentKeepsListsRanked(t *testing.T) {
	x := New()
	x.MergeDocument(map[string]*Occurrence{
		"say": {DocID: "A", Frequency: 10},
		"saw": {DocID: "A", Frequency: 1},
	})
	x.MergeDocument(map[string]*Occurrence{
		"say": {DocID: "B", Frequency: 4},
		"saw": {DocID: "B", Frequency: 4},
	})
	x.MergeDocument(map[string]*Occurrence{
		"saw": {DocID: "C", Frequency: 9},
	})

	assert.Equal(t, 3, x.DocCount())
	assert.Equal(t, []string{"saw", "say"}, x.Keywords())

	say, ok := x.Lookup("say")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, say.DocIDs())

	saw, ok := x.Lookup("saw")
	require.True(t, ok)
	assert.Equal(t, []string{"C", "B", "A"}, saw.DocIDs())

	for _, kw := range x.Keywords() {
		l, _ := x.Lookup(kw)
		assert.NotEmpty(t, l)
		assert.True(t, l.IsRanked(), kw)
	}
}

func TestMergeDocumentSkipsEmptyOccurrences(t *testing.T) {
	x := New()
	x.MergeDocument(map[string]*Occurrence{"ghost": nil, "zero": {DocID: "A"}})
	assert.Equal(t, 0, x.Len())
	assert.False(t, x.Contains("ghost"))
}

func TestLookupReturnsCopy(t *testing.T) {
	x := New()
	x.MergeDocument(map[string]*Occurrence{"kw": {DocID: "A", Frequency: 2}})

	l, ok := x.Lookup("kw")
	require.True(t, ok)
	l[0].DocID = "mutated"

	again, _ := x.Lookup("kw")
	assert.Equal(t, "A", again[0].DocID)

	_, ok = x.Lookup("missing")
	assert.False(t, ok)
	assert.True(t, x.Contains("kw"))
	assert.False(t, x.Contains("missing"))
}

func TestDump(t *testing.T) {
	x := New()
	x.MergeDocument(map[string]*Occurrence{"beta": {DocID: "d1", Frequency: 2}, "alpha": {DocID: "d1", Frequency: 1}})
	x.MergeDocument(map[string]*Occurrence{"beta": {DocID: "d2", Frequency: 5}})

	var buf bytes.Buffer
	require.NoError(t, x.Dump(&buf))
	assert.Equal(t, "alpha [(d1,1)]\nbeta [(d2,5) (d1,2)]\n", buf.String())
}
