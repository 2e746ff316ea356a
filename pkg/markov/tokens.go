package markov

import "strings"

// Tokenizer is an interface that defines the contract for splitting input
// text into tokens and joining generated tokens back into output text. This
// keeps the model builder and generator independent of whether the chain
// runs over words or characters.
type Tokenizer interface {
	// Split breaks a raw text entry into the token sequence the chain
	// models.
	Split(text string) []string
	// Join builds the final output string from a generated token sequence.
	Join(tokens []string) string
	// Boundary returns the token that should be inserted into the output
	// when a chain restarts from a fresh head, and whether one is needed
	// at all.
	Boundary() (string, bool)
}

// WordTokenizer models whitespace-separated words. Joining inserts a single
// space between tokens, so restarts need no extra boundary token.
type WordTokenizer struct{}

// Split breaks text into whitespace-separated words.
func (WordTokenizer) Split(text string) []string {
	return strings.Fields(text)
}

// Join concatenates tokens with a single space between each pair.
func (WordTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Boundary reports that word chains need no restart separator.
func (WordTokenizer) Boundary() (string, bool) {
	return "", false
}

// CharTokenizer models individual characters (runes). Joining concatenates
// tokens directly, so a space is inserted before each restart to keep the
// words of separate chains visually distinct.
type CharTokenizer struct{}

// Split breaks text into its runes, one token per rune.
func (CharTokenizer) Split(text string) []string {
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Join concatenates tokens with no separator.
func (CharTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, "")
}

// Boundary returns the space inserted before a restarted character chain.
func (CharTokenizer) Boundary() (string, bool) {
	return " ", true
}
