package valueobject

import "strings"

// ReferenceSet is an ordered collection of unique external reference tokens.
// Tokens are trimmed, non-empty and case-preserving; duplicates are ignored.
// Serialization is deterministic: tokens joined by single spaces in first-seen
// order, so recomputing from the same sources always yields the same string.
type ReferenceSet struct {
	tokens []string
	seen   map[string]struct{}
}

// NewReferenceSet creates an empty reference set
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{
		tokens: make([]string, 0),
		seen:   make(map[string]struct{}),
	}
}

// ParseReferenceSet creates a reference set from a serialized reference string
func ParseReferenceSet(s string) *ReferenceSet {
	set := NewReferenceSet()
	set.Add(s)
	return set
}

// Add splits the given text into whitespace-separated tokens and adds each
// non-empty token that is not already present. Consolidation always operates
// at token granularity so repeated recomputation never concatenates the same
// text twice.
func (s *ReferenceSet) Add(text string) {
	for _, token := range strings.Fields(text) {
		if _, ok := s.seen[token]; ok {
			continue
		}
		s.seen[token] = struct{}{}
		s.tokens = append(s.tokens, token)
	}
}

// Contains reports whether the exact token is present
func (s *ReferenceSet) Contains(token string) bool {
	_, ok := s.seen[token]
	return ok
}

// Tokens returns the tokens in first-seen order
func (s *ReferenceSet) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Len returns the number of unique tokens
func (s *ReferenceSet) Len() int {
	return len(s.tokens)
}

// IsEmpty reports whether the set has no tokens
func (s *ReferenceSet) IsEmpty() bool {
	return len(s.tokens) == 0
}

// String serializes the set as a single space-separated string in
// first-seen order
func (s *ReferenceSet) String() string {
	return strings.Join(s.tokens, " ")
}
