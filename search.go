package docsearch

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scoring and result limits.
const (
	// TitleWeight is the score of one occurrence of a term in a title.
	TitleWeight = 5
	// ContentWeight is the score of one occurrence of a term in content.
	ContentWeight = 1
	// MinTermLength is the shortest query token, in runes, that is searched for.
	MinTermLength = 3
	// MaxResults is the default number of ranked results kept.
	MaxResults = 20
)

// Term is a lowercase query token of at least MinTermLength runes.
type Term string

// Tokenize splits query on whitespace, folds case and drops tokens shorter
// than MinTermLength. Order and duplicates are preserved.
func Tokenize(query string) []Term {
	fields := strings.Fields(query)
	terms := make([]Term, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTermLength {
			continue
		}
		terms = append(terms, Term(foldCase(f)))
	}
	return terms
}

// foldCase lowercases s without changing its byte length, so offsets into the
// result address the same text in s. Runes whose lowercase form has a
// different encoded width are left untouched, as are invalid bytes.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if l := unicode.ToLower(r); r != utf8.RuneError && utf8.RuneLen(l) == size {
			b.WriteRune(l)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// MatchResult is the outcome of matching one record against one query.
type MatchResult struct {
	Record *Record

	// Score is the weighted occurrence sum multiplied by Terms.
	Score int

	// Terms is the number of distinct terms with at least one occurrence.
	Terms int

	// TitleMatches and ContentMatches hold the distinct matched substrings,
	// in their original case, in the order they were first found.
	TitleMatches   []string
	ContentMatches []string
}

// Match scans the record's title and content for every non-overlapping,
// case-insensitive occurrence of each term. A substring that matches two
// different terms counts for both.
func Match(r *Record, terms []Term) *MatchResult {
	m := &MatchResult{Record: r}
	title, content := foldCase(r.Title), foldCase(r.Content)

	matched := make(map[Term]struct{}, len(terms))
	sum := 0
	for _, term := range terms {
		inTitle := scan(title, string(term), func(start, end int) {
			m.TitleMatches = appendUnique(m.TitleMatches, r.Title[start:end])
		})
		inContent := scan(content, string(term), func(start, end int) {
			m.ContentMatches = appendUnique(m.ContentMatches, r.Content[start:end])
		})
		sum += inTitle*TitleWeight + inContent*ContentWeight
		if inTitle+inContent > 0 {
			matched[term] = struct{}{}
		}
	}

	m.Terms = len(matched)
	m.Score = sum * m.Terms
	return m
}

// scan reports each non-overlapping occurrence of term in s and returns the
// count. The search resumes right after the end of the previous occurrence.
func scan(s, term string, found func(start, end int)) int {
	if term == "" {
		return 0
	}
	n := 0
	for pos := 0; pos < len(s); {
		i := strings.Index(s[pos:], term)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(term)
		found(start, end)
		n++
		pos = end
	}
	return n
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

// Results is a ranked, possibly truncated, list of matches for a query.
type Results struct {
	Query   string
	Terms   []Term
	Matches []*MatchResult

	// Total is the number of records that scored, before truncation.
	Total int
}

// Truncated reports whether more records scored than Matches holds.
func (r *Results) Truncated() bool {
	return r.Total > len(r.Matches)
}

// Main returns the top-ranked match, or nil when nothing matched.
func (r *Results) Main() *MatchResult {
	if r == nil || len(r.Matches) == 0 {
		return nil
	}
	return r.Matches[0]
}

// Rank drops zero scores, orders matches by score descending and keeps at
// most limit of them. Equal scores keep their input order. A limit of zero
// or less means MaxResults. The returned total counts every positive score.
func Rank(matches []*MatchResult, limit int) (ranked []*MatchResult, total int) {
	if limit <= 0 {
		limit = MaxResults
	}

	ranked = make([]*MatchResult, 0, len(matches))
	for _, m := range matches {
		if m.Score > 0 {
			ranked = append(ranked, m)
		}
	}
	slices.SortStableFunc(ranked, func(a, b *MatchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	total = len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, total
}

// Search runs the whole pipeline over idx: tokenize, match every record,
// rank. It has no side effects.
func Search(idx Index, query string, limit int) *Results {
	res := &Results{Query: query, Terms: Tokenize(query)}
	if len(res.Terms) == 0 {
		return res
	}

	matches := make([]*MatchResult, 0, len(idx))
	for _, r := range idx {
		matches = append(matches, Match(r, res.Terms))
	}
	res.Matches, res.Total = Rank(matches, limit)
	return res
}
