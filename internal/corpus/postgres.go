package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// undefinedTable is the SQLSTATE PostgreSQL reports for a missing relation.
const undefinedTable pq.ErrorCode = "42P01"

const (
	listDocumentsQuery = `SELECT id FROM documents ORDER BY position, id`
	noiseWordsQuery    = `SELECT word FROM noise_words`
	documentBodyQuery  = `SELECT body FROM documents WHERE id = $1`
)

// PostgresSource reads the corpus from two tables:
//
//	documents(id text primary key, position int, body text)
//	noise_words(word text primary key)
//
// The manifest order is the position column.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) ListDocumentIDs(ctx context.Context) ([]string, error) {
	return s.column(ctx, "documents", listDocumentsQuery)
}

func (s *PostgresSource) LoadNoiseWords(ctx context.Context) ([]string, error) {
	return s.column(ctx, "noise_words", noiseWordsQuery)
}

func (s *PostgresSource) Tokenize(ctx context.Context, docID string) ([]string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, documentBodyQuery, docID).Scan(&body)
	if err != nil {
		return nil, classify("document "+docID, err)
	}
	return tokenizer.Fields(strings.NewReader(body))
}

func (s *PostgresSource) column(ctx context.Context, resource, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(resource, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", resource, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(resource, err)
	}
	return out, nil
}

// classify turns missing rows and missing tables into not-found errors.
func classify(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return apperrors.NotFound(resource, err)
	}
	return fmt.Errorf("querying %s: %w", resource, err)
}
