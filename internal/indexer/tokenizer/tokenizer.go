// Package tokenizer turns raw document text into keywords. Text is split on
// whitespace, trailing punctuation is stripped, tokens with any remaining
// non-letter are rejected, and what is left is lower-cased and checked
// against a noise-word set.
package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// NoiseWords is an immutable set of words that never become keywords.
type NoiseWords struct {
	words map[string]struct{}
}

// NewNoiseWords builds a set from the given words. Words are stored
// lower-cased since keywords are compared after lower-casing.
func NewNoiseWords(words []string) *NoiseWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[strings.ToLower(w)] = struct{}{}
	}
	return &NoiseWords{words: set}
}

// Contains reports whether word is a noise word. A nil set contains nothing.
func (n *NoiseWords) Contains(word string) bool {
	if n == nil {
		return false
	}
	_, ok := n.words[word]
	return ok
}

// Len returns the number of distinct noise words.
func (n *NoiseWords) Len() int {
	if n == nil {
		return 0
	}
	return len(n.words)
}

// Normalizer classifies raw tokens as keywords.
type Normalizer struct {
	noise *NoiseWords
}

func NewNormalizer(noise *NoiseWords) *Normalizer {
	return &Normalizer{noise: noise}
}

// Normalize returns the keyword for token and true, or "" and false when the
// token is not a keyword.
func (n *Normalizer) Normalize(token string) (string, bool) {
	word, ok := Clean(token)
	if !ok {
		return "", false
	}
	if n.noise.Contains(word) {
		return "", false
	}
	return word, true
}

// Clean applies the keyword shape rules without the noise-word check:
// trailing punctuation is dropped, the rest must be all letters, and the
// result is lower-cased. Digits are not punctuation, so "test123" is
// rejected rather than trimmed to "test".
func Clean(token string) (string, bool) {
	word := strings.TrimRightFunc(token, isPunct)
	if word == "" {
		return "", false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return strings.ToLower(word), true
}

func isPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Fields reads r to the end and returns its whitespace-delimited tokens.
func Fields(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	tokens := make([]string, 0, 64)
	for sc.Scan() {
		tokens = append(tokens, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning tokens: %w", err)
	}
	return tokens, nil
}
