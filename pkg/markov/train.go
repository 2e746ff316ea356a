package markov

import (
	"fmt"
	"log/slog"
)

// Build folds a corpus of raw text entries into a Model of the given order.
//
// Each entry is tokenized and contributes its first order-length window to
// the head set and one prefix->successor link for every consecutive
// (order+1)-length window. Entries too short to yield even one transition
// (fewer than order+1 tokens) are skipped silently. Successors are recorded
// as a set: how often a token followed a prefix is discarded, so every
// recorded successor is equally likely during generation.
//
// A corpus where every entry is skipped produces a model with an empty head
// set; Generate rejects such a model with ErrEmptyModel.
func (g *Generator) Build(corpus []string, order int) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("order %d: %w", order, ErrInvalidOrder)
	}

	model := newModel(order)
	seen := make(map[string]map[int]struct{})
	headSet := make(map[string]bool)
	skipped := 0

	for _, entry := range corpus {
		tokens := g.tokenizer.Split(entry)
		if len(tokens) < order+1 {
			skipped++
			continue
		}

		ids := make([]int, len(tokens))
		for i, token := range tokens {
			ids[i] = model.intern(token)
		}

		head := ids[:order]
		if key := prefixKey(head); !headSet[key] {
			headSet[key] = true
			model.heads = append(model.heads, head)
		}

		for window := range NGrams(ids, order+1) {
			key := prefixKey(window[:order])
			suffix := window[order]
			set, ok := seen[key]
			if !ok {
				set = make(map[int]struct{})
				seen[key] = set
			}
			set[suffix] = struct{}{}
		}
	}

	model.finalize(seen)

	stats := model.Stats()
	g.logger.Debug("model built",
		slog.Int("order", order),
		slog.Int("corpus_entries", len(corpus)),
		slog.Int("entries_skipped", skipped),
		slog.Int("vocab_size", stats.Tokens),
		slog.Int("prefixes", stats.Prefixes),
		slog.Int("heads", stats.Heads),
	)

	return model, nil
}
