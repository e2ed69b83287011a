// Command lse builds a keyword index from a document manifest and a noise-word
// list, then either dumps the index or answers one "kw1 OR kw2" query.
//
//	lse -docs docs.txt -noise noisewords.txt say saw
//	lse -dir corpus -dump
//
// All file names, including those in the manifest, are relative to -dir.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the manifest, noise words and documents")
	docs := flag.String("docs", "docs.txt", "file listing one document file per line")
	noise := flag.String("noise", "noisewords.txt", "file listing one noise word per line")
	limit := flag.Int("limit", merger.DefaultLimit, "maximum documents to return")
	dump := flag.Bool("dump", false, "print every keyword with its ranked occurrences")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	slog.SetDefault(logger.New(os.Stderr, *logLevel, "text"))

	if err := run(*dir, *docs, *noise, *limit, *dump, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "lse: %v\n", err)
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(dir, docs, noise string, limit int, dump bool, args []string) error {
	if !dump && (len(args) < 1 || len(args) > 2) {
		return fmt.Errorf("%w: want one or two keywords, got %d", apperrors.ErrInvalidInput, len(args))
	}

	src := corpus.NewFileSource(config.CorpusConfig{
		BaseDir:        dir,
		DocsFile:       filepath.ToSlash(docs),
		NoiseWordsFile: filepath.ToSlash(noise),
	})

	ctx := context.Background()
	engine := indexer.NewEngine(src, nil)
	stats, err := engine.Rebuild(ctx)
	if err != nil {
		return err
	}
	slog.Info("index built", "documents", stats.Documents, "keywords", stats.Keywords)

	x, err := engine.Index()
	if err != nil {
		return err
	}
	if dump {
		return x.Dump(os.Stdout)
	}

	keywords := make([]string, 2)
	for i := range keywords {
		raw := args[min(i, len(args)-1)]
		kw, ok := tokenizer.Clean(raw)
		if !ok {
			return fmt.Errorf("%w: %q is not a word", apperrors.ErrInvalidInput, raw)
		}
		keywords[i] = kw
	}

	res, err := executor.New(engine).Execute(ctx, keywords[0], keywords[1], limit)
	if err != nil {
		return err
	}
	if !res.Matched {
		fmt.Println("no matches")
		return nil
	}
	for i, doc := range res.Documents {
		fmt.Printf("%d. %s\n", i+1, doc)
	}
	return nil
}
