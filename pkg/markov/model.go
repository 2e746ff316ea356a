package markov

import (
	"slices"
	"strconv"
	"strings"
)

// Model holds everything built from a single corpus: the token vocabulary,
// the chain mapping from each order-length prefix window to the distinct
// tokens observed to follow it, and the head set of windows eligible to
// start a generated sequence. A Model is immutable once built and is tied
// to the order and tokenizer it was built with; word and character models
// are not interchangeable.
type Model struct {
	order  int
	vocab  map[string]int // token text -> token id
	tokens []string       // token id -> token text
	chains map[string][]int
	heads  [][]int
}

// ModelStats holds aggregated statistics for a built Model.
type ModelStats struct {
	Tokens      int // distinct tokens in the vocabulary
	Prefixes    int // distinct prefix windows with at least one successor
	Heads       int // distinct chain-start windows
	Transitions int // distinct prefix->successor links
}

func newModel(order int) *Model {
	return &Model{
		order:  order,
		vocab:  make(map[string]int),
		chains: make(map[string][]int),
	}
}

// prefixKey encodes a window of token ids as a space-joined decimal string,
// giving windows structural equality as map keys regardless of what the
// token texts contain.
func prefixKey(ids []int) string {
	var keyBuf []byte
	for i, id := range ids {
		if i > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(id), 10)
	}
	return string(keyBuf)
}

// intern returns the id for a token, adding it to the vocabulary if absent.
func (m *Model) intern(token string) int {
	if id, ok := m.vocab[token]; ok {
		return id
	}
	id := len(m.tokens)
	m.vocab[token] = id
	m.tokens = append(m.tokens, token)
	return id
}

// finalize converts the builder's successor sets into the Model's chain
// slices and orders everything. The layout is sorted so that index-based
// selection from a seeded Rand is reproducible between builds.
func (m *Model) finalize(seen map[string]map[int]struct{}) {
	for key, set := range seen {
		successors := make([]int, 0, len(set))
		for id := range set {
			successors = append(successors, id)
		}
		slices.Sort(successors)
		m.chains[key] = successors
	}
	slices.SortFunc(m.heads, func(a, b []int) int {
		return strings.Compare(prefixKey(a), prefixKey(b))
	})
}

// Order returns the order the model was built with.
func (m *Model) Order() int {
	return m.order
}

// Stats returns a snapshot of the model's size.
func (m *Model) Stats() ModelStats {
	transitions := 0
	for _, successors := range m.chains {
		transitions += len(successors)
	}
	return ModelStats{
		Tokens:      len(m.tokens),
		Prefixes:    len(m.chains),
		Heads:       len(m.heads),
		Transitions: transitions,
	}
}

// Successors returns the distinct tokens observed to follow the given
// prefix window anywhere in the corpus, or false if the window was never
// observed as a prefix (or has the wrong length).
func (m *Model) Successors(prefix []string) ([]string, bool) {
	if len(prefix) != m.order {
		return nil, false
	}
	ids := make([]int, len(prefix))
	for i, token := range prefix {
		id, ok := m.vocab[token]
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	successors, ok := m.chains[prefixKey(ids)]
	if !ok {
		return nil, false
	}
	texts := make([]string, len(successors))
	for i, id := range successors {
		texts[i] = m.tokens[id]
	}
	return texts, true
}

// Heads returns every window eligible to start a generated sequence, as
// token texts.
func (m *Model) Heads() [][]string {
	heads := make([][]string, len(m.heads))
	for i, head := range m.heads {
		texts := make([]string, len(head))
		for j, id := range head {
			texts[j] = m.tokens[id]
		}
		heads[i] = texts
	}
	return heads
}
