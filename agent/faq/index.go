package faq

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"unicode"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

const defaultThreshold = 2

// Match is a scored FAQ lookup result. Score counts the question/tag tokens
// shared with the query.
type Match struct {
	Entry contractx.FaqEntry
	Score int
}

// Index is an immutable FAQ snapshot with deterministic keyword matching. It
// never consults the language model, so it keeps answering in degraded mode.
type Index struct {
	threshold int
	snap      atomic.Pointer[snapshot]
}

type snapshot struct {
	entries []indexed
}

type indexed struct {
	source contractx.FaqEntry
	tokens map[string]struct{}
}

type Option func(*Index)

// WithThreshold sets the minimum shared-token count an entry must reach to be
// considered a match. Values below 1 are ignored.
func WithThreshold(n int) Option {
	return func(i *Index) {
		if n >= 1 {
			i.threshold = n
		}
	}
}

func New(entries []contractx.FaqEntry, opts ...Option) *Index {
	idx := &Index{threshold: defaultThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(idx)
		}
	}
	idx.Reload(entries)
	return idx
}

func (i *Index) Reload(entries []contractx.FaqEntry) {
	snap := &snapshot{entries: make([]indexed, 0, len(entries))}
	for _, e := range entries {
		tokens := make(map[string]struct{})
		for _, tok := range Tokenize(e.Question) {
			tokens[tok] = struct{}{}
		}
		for _, tag := range e.Tags {
			for _, tok := range Tokenize(tag) {
				tokens[tok] = struct{}{}
			}
		}
		snap.entries = append(snap.entries, indexed{source: e, tokens: tokens})
	}
	i.snap.Store(snap)
}

func (i *Index) Len() int {
	return len(i.snap.Load().entries)
}

// Match returns the single best-matching entry, or ErrNoMatch when no entry
// reaches the score threshold. Ties break toward the earliest-registered
// entry, so identical input always yields the identical result.
func (i *Index) Match(query string) (Match, error) {
	queryTokens := Tokenize(query)

	snap := i.snap.Load()
	best := -1
	bestScore := 0
	for idx, e := range snap.entries {
		score := 0
		for _, tok := range queryTokens {
			if _, ok := e.tokens[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			best = idx
			bestScore = score
		}
	}

	if best < 0 || bestScore < i.threshold {
		return Match{}, fmt.Errorf("%w: best score %d below threshold %d", contractx.ErrNoMatch, bestScore, i.threshold)
	}
	return Match{Entry: snap.entries[best].source, Score: bestScore}, nil
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "can": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"get": {}, "has": {}, "have": {}, "how": {}, "i": {}, "if": {},
	"in": {}, "is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "s": {}, "t": {}, "that": {}, "the": {}, "there": {},
	"this": {}, "to": {}, "was": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "why": {}, "will": {}, "with": {}, "you": {},
	"your": {},
}

// Tokenize lowercases text, splits on non-alphanumeric runes, and drops
// stopwords and duplicates. Order of first occurrence is preserved.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stopped := stopwords[f]; stopped {
			continue
		}
		if !slices.Contains(tokens, f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
