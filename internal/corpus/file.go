// Package corpus implements the document sources an index is built from: a
// directory of plain-text files with a manifest, or a PostgreSQL database.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// FileSource reads a manifest of document names, a noise-word list and the
// documents themselves from a file system. Document IDs are the names listed
// in the manifest, resolved relative to the file system root.
type FileSource struct {
	fsys       fs.FS
	docsFile   string
	noiseWords string
}

// NewFileSource serves the files under cfg.BaseDir.
func NewFileSource(cfg config.CorpusConfig) *FileSource {
	return NewFSSource(os.DirFS(cfg.BaseDir), cfg.DocsFile, cfg.NoiseWordsFile)
}

// NewFSSource serves files from fsys.
func NewFSSource(fsys fs.FS, docsFile, noiseWordsFile string) *FileSource {
	return &FileSource{fsys: fsys, docsFile: docsFile, noiseWords: noiseWordsFile}
}

// ListDocumentIDs returns the whitespace-separated names in the manifest.
func (s *FileSource) ListDocumentIDs(ctx context.Context) ([]string, error) {
	return s.words(s.docsFile)
}

// LoadNoiseWords returns the whitespace-separated words in the noise file.
func (s *FileSource) LoadNoiseWords(ctx context.Context) ([]string, error) {
	return s.words(s.noiseWords)
}

// Tokenize returns the raw tokens of one document.
func (s *FileSource) Tokenize(ctx context.Context, docID string) ([]string, error) {
	return s.words(docID)
}

func (s *FileSource) words(name string) ([]string, error) {
	name = path.Clean(name)
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, apperrors.NotFound(name, err)
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()
	tokens, err := tokenizer.Fields(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return tokens, nil
}
