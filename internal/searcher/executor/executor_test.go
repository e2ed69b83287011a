package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

type staticIndex struct {
	x *index.Index
}

func (s staticIndex) Index() (*index.Index, error) {
	if s.x == nil {
		return nil, apperrors.ErrIndexNotReady
	}
	return s.x, nil
}

func sayAndSaw() *index.Index {
	x := index.New()
	x.MergeDocument(map[string]*index.Occurrence{"say": {DocID: "A", Frequency: 10}})
	x.MergeDocument(map[string]*index.Occurrence{
		"say": {DocID: "B", Frequency: 4},
		"saw": {DocID: "B", Frequency: 4},
	})
	x.MergeDocument(map[string]*index.Occurrence{"saw": {DocID: "C", Frequency: 9}})
	x.MergeDocument(map[string]*index.Occurrence{"lonely": {DocID: "D", Frequency: 1}})
	return x
}

func TestExecute(t *testing.T) {
	e := New(staticIndex{x: sayAndSaw()})

	res, err := e.Execute(context.Background(), "say", "saw", 5)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, []string{"A", "C", "B"}, res.Documents)
	assert.Equal(t, map[string]int{"say": 2, "saw": 2}, res.TermStats)

	res, err = e.Execute(context.Background(), "say", "saw", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, res.Documents)
}

func TestExecuteNeitherIndexed(t *testing.T) {
	res, err := New(staticIndex{x: sayAndSaw()}).Execute(context.Background(), "xyz", "abc", 5)
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Nil(t, res.Documents)
	assert.Equal(t, map[string]int{"xyz": 0, "abc": 0}, res.TermStats)
}

func TestExecuteOneIndexed(t *testing.T) {
	res, err := New(staticIndex{x: sayAndSaw()}).Execute(context.Background(), "xyz", "saw", 0)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, []string{"C", "B"}, res.Documents)
}

func TestExecuteSameKeywordTwice(t *testing.T) {
	res, err := New(staticIndex{x: sayAndSaw()}).Execute(context.Background(), "lonely", "lonely", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, res.Documents)
}

func TestExecuteBeforeIndexReady(t *testing.T) {
	_, err := New(staticIndex{}).Execute(context.Background(), "say", "saw", 5)
	assert.ErrorIs(t, err, apperrors.ErrIndexNotReady)
}
