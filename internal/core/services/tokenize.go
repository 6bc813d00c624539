package services

import (
	"strings"
	"unicode/utf8"
)

// Minimum token lengths are exclusive: a token is kept when it is longer.
const (
	// ClassifierMinLen keeps two-letter tokens such as "hr" for routing.
	ClassifierMinLen = 1
	// BuilderMinLen keeps only tokens of three or more characters for record filtering.
	BuilderMinLen = 2
)

var stopwords = toSet(`a an the is are was were be been being have has had do does did
will would shall should may might must can could i me my we our you your he she it they
what which who whom this that these those am if or and but not no so too very just about
all also any because before between both by each for from get give go here her him his
how in into its let like make many more most much of on one only other out over own same
show some still such tell than then there to under up us want when where with list find
need know`)

func toSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether w is ignored during tokenization
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// Tokens is a tokenized question.
type Tokens struct {
	// Lower is the whole question lowercased, used for phrase and regex matching.
	Lower string
	// Words are the kept tokens in question order.
	Words []string
	set   map[string]struct{}
}

// Tokenize lowercases the question, splits it on whitespace and keeps tokens
// longer than minLen that are not stopwords.
func Tokenize(question string, minLen int) Tokens {
	lower := strings.ToLower(question)
	t := Tokens{
		Lower: lower,
		set:   make(map[string]struct{}),
	}
	for _, w := range strings.Fields(lower) {
		if utf8.RuneCountInString(w) <= minLen || IsStopword(w) {
			continue
		}
		t.Words = append(t.Words, w)
		t.set[w] = struct{}{}
	}
	return t
}

// Has reports whether w is one of the kept tokens
func (t Tokens) Has(w string) bool {
	_, ok := t.set[w]
	return ok
}

// Empty reports whether no token survived
func (t Tokens) Empty() bool {
	return len(t.Words) == 0
}

// MatchesAny reports whether any token is a substring of the lowercased text.
func (t Tokens) MatchesAny(lowerText string) bool {
	for _, w := range t.Words {
		if strings.Contains(lowerText, w) {
			return true
		}
	}
	return false
}
