package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"docs.txt":       "A.txt\nB.txt\n",
		"noisewords.txt": "the\n",
		"A.txt":          "Say say say. The end",
		"B.txt":          "saw saw",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestRunQuery(t *testing.T) {
	dir := writeCorpus(t)
	require.NoError(t, run(dir, "docs.txt", "noisewords.txt", 5, false, []string{"say", "saw"}))
	require.NoError(t, run(dir, "docs.txt", "noisewords.txt", 5, false, []string{"Missing!"}))
	require.NoError(t, run(dir, "docs.txt", "noisewords.txt", 5, true, nil))
}

func TestRunErrors(t *testing.T) {
	dir := writeCorpus(t)

	err := run(dir, "docs.txt", "noisewords.txt", 5, false, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = run(dir, "docs.txt", "noisewords.txt", 5, false, []string{"x1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = run(dir, "nope.txt", "noisewords.txt", 5, false, []string{"say"})
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	require.NoError(t, os.Remove(filepath.Join(dir, "B.txt")))
	err = run(dir, "docs.txt", "noisewords.txt", 5, false, []string{"say"})
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
