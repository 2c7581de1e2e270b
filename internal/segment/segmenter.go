package segment

import (
	"regexp"
	"strings"
)

// Segmenter splits a possibly multi-constraint input into candidate
// single-constraint statements. Splitting is conservative: a split is kept
// only when it produces at least two keyword-bearing parts, otherwise the
// undivided text survives, so a non-empty input always yields at least one
// segment.
type Segmenter struct {
	keywords  []string
	minLength int
}

// constraintKeywords gates every split. A candidate part that carries none
// of these is treated as an incidental clause (a team name, a conjunction)
// rather than a standalone constraint.
var constraintKeywords = []string{
	"team", "field", "game", "no more", "at least", "maximum", "minimum",
	"cannot", "must", "need", "require", "between", "home", "venue",
	"court", "exceed", "duration", "supervision", "minutes", "hours",
	"before", "after", "played",
}

// NewSegmenter creates a segmenter with the given minimum segment length
func NewSegmenter(minLength int) *Segmenter {
	if minLength <= 0 {
		minLength = 10
	}
	return &Segmenter{
		keywords:  constraintKeywords,
		minLength: minLength,
	}
}

// sentenceBreak matches a period followed by whitespace and a capitalized clause
var sentenceBreak = regexp.MustCompile(`\.\s+[A-Z]`)

// Segment splits text into candidate constraint statements, in input order.
// Returns nil only for blank input.
func (s *Segmenter) Segment(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	// Newline separators take priority: users pasting rule lists almost
	// always separate constraints with line breaks.
	for _, sep := range []string{"\n\n", "\n"} {
		if parts := s.accept(strings.Split(trimmed, sep)); len(parts) >= 2 {
			return parts
		}
	}

	// Pattern cascade, only attempted while the input is still one segment
	splitters := []func(string) []string{
		s.splitOnConjunction,
		s.splitOnSemicolon,
		s.splitOnSentence,
		s.splitOnComma,
	}
	for _, split := range splitters {
		if parts := s.accept(split(trimmed)); len(parts) >= 2 {
			return parts
		}
	}

	// Undivided input is always returned, even when it fails the
	// length/keyword filter, so the caller gets at least one segment.
	return []string{trimmed}
}

// accept filters split candidates through the length and keyword gates.
// Fewer than two surviving parts means the split is rejected.
func (s *Segmenter) accept(candidates []string) []string {
	var parts []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if s.qualifies(c) {
			parts = append(parts, c)
		}
	}
	if len(parts) < 2 {
		return nil
	}
	return parts
}

// qualifies reports whether a part looks like a standalone constraint
func (s *Segmenter) qualifies(part string) bool {
	if len(part) <= s.minLength {
		return false
	}
	return s.hasKeyword(part)
}

func (s *Segmenter) hasKeyword(part string) bool {
	lower := strings.ToLower(part)
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitOnConjunction splits on " and " when the following clause carries a
// constraint keyword. Non-keyword clauses are folded back into the current
// segment so team names like "Tigers and Lions" never split.
func (s *Segmenter) splitOnConjunction(text string) []string {
	pieces := strings.Split(text, " and ")
	if len(pieces) < 2 {
		return nil
	}

	parts := []string{pieces[0]}
	for _, piece := range pieces[1:] {
		if s.hasKeyword(piece) {
			parts = append(parts, piece)
		} else {
			parts[len(parts)-1] += " and " + piece
		}
	}
	return parts
}

func (s *Segmenter) splitOnSemicolon(text string) []string {
	return strings.Split(text, ";")
}

// splitOnSentence splits at sentence-final periods that precede a
// capitalized clause
func (s *Segmenter) splitOnSentence(text string) []string {
	locs := sentenceBreak.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var parts []string
	start := 0
	for _, loc := range locs {
		// loc[0] is the period; the capital letter is the last byte matched
		parts = append(parts, text[start:loc[0]+1])
		start = loc[1] - 1
	}
	parts = append(parts, text[start:])
	return parts
}

// splitOnComma splits at commas whose following clause opens with a
// constraint keyword
func (s *Segmenter) splitOnComma(text string) []string {
	pieces := strings.Split(text, ",")
	if len(pieces) < 2 {
		return nil
	}

	parts := []string{pieces[0]}
	for _, piece := range pieces[1:] {
		if s.startsWithKeyword(piece) {
			parts = append(parts, piece)
		} else {
			parts[len(parts)-1] += "," + piece
		}
	}
	return parts
}

func (s *Segmenter) startsWithKeyword(part string) bool {
	lower := strings.ToLower(strings.TrimSpace(part))
	for _, kw := range s.keywords {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	return false
}
