package corpus

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"docs.txt":       {Data: []byte("a.txt\nb.txt\n")},
		"noisewords.txt": {Data: []byte("the\nof\n")},
		"a.txt":          {Data: []byte("The tale of two cities.")},
		"b.txt":          {Data: []byte("")},
		"sub/c.txt":      {Data: []byte("deep  word")},
	}
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	src := NewFSSource(testFS(), "docs.txt", "noisewords.txt")

	ids, err := src.ListDocumentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, ids)

	noise, err := src.LoadNoiseWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of"}, noise)

	tokens, err := src.Tokenize(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"The", "tale", "of", "two", "cities."}, tokens)

	tokens, err = src.Tokenize(ctx, "b.txt")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = src.Tokenize(ctx, "sub/c.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"deep", "word"}, tokens)
}

func TestFileSourceMissingResources(t *testing.T) {
	ctx := context.Background()

	_, err := NewFSSource(testFS(), "missing.txt", "noisewords.txt").ListDocumentIDs(ctx)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, err = NewFSSource(testFS(), "docs.txt", "nope.txt").LoadNoiseWords(ctx)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, err = NewFSSource(testFS(), "docs.txt", "noisewords.txt").Tokenize(ctx, "ghost.txt")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, err = NewFSSource(testFS(), "docs.txt", "noisewords.txt").Tokenize(ctx, "../escape.txt")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify("document x", sql.ErrNoRows), apperrors.ErrDocumentNotFound)
	assert.ErrorIs(t, classify("documents", &pq.Error{Code: undefinedTable}), apperrors.ErrDocumentNotFound)

	err := classify("documents", errors.New("connection reset"))
	assert.NotErrorIs(t, err, apperrors.ErrDocumentNotFound)
	assert.Contains(t, err.Error(), "querying documents")
}
