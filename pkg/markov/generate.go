package markov

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// DefaultLength is the minimum number of output tokens generated when
// WithLength is not supplied.
const DefaultLength = 160

// generateOptions Is used by Generate to configure default options.
type generateOptions struct {
	length int
	rand   *rand.Rand
}

// GenerateOption is a function that configures generation parameters. It's
// used as a variadic argument to Generate.
type GenerateOption func(*generateOptions)

// WithLength sets the minimum number of tokens to generate. The output may
// exceed it by up to order-1 tokens when the final step is a chain restart,
// plus the restart boundary token if the tokenizer uses one.
func WithLength(n int) GenerateOption {
	return func(o *generateOptions) { o.length = n }
}

// WithRand sets the random source used for head and successor selection.
// Passing a seeded Rand makes generation fully deterministic, which is how
// the tests exercise the walk. By default a freshly seeded source is used.
func WithRand(r *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rand = r }
}

// Generate synthesizes new text by a random walk over the model's chains.
//
// The walk starts from a uniformly random head window and repeatedly
// appends a uniformly random successor of the current prefix, sliding the
// prefix forward one token each step. When the current prefix has no
// recorded successor the walk hard-restarts: a fresh random head is
// appended whole (with the tokenizer's boundary token in front, if it has
// one) and the chain continues from there. The loop runs until at least
// the requested number of tokens has accumulated, then the tokens are
// joined by the tokenizer.
func (g *Generator) Generate(model *Model, opts ...GenerateOption) (string, error) {
	options := &generateOptions{length: DefaultLength}
	for _, opt := range opts {
		opt(options)
	}

	if options.length < 1 {
		return "", fmt.Errorf("length %d: %w", options.length, ErrInvalidLength)
	}
	if len(model.heads) == 0 {
		return "", ErrEmptyModel
	}

	rng := options.rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	head := model.heads[rng.IntN(len(model.heads))]
	out := make([]string, 0, options.length+model.order)
	for _, id := range head {
		out = append(out, model.tokens[id])
	}
	prefix := make([]int, model.order)
	copy(prefix, head)

	restarts := 0
	for len(out) < options.length {
		successors, ok := model.chains[prefixKey(prefix)]
		if ok {
			id := successors[rng.IntN(len(successors))]
			out = append(out, model.tokens[id])
			prefix = append(prefix[1:], id)
		} else {
			// Dead end: this window only ever appeared at the end of an
			// entry. Start a new chain from a random head.
			restarts++
			if boundary, need := g.tokenizer.Boundary(); need {
				out = append(out, boundary)
			}
			head = model.heads[rng.IntN(len(model.heads))]
			for _, id := range head {
				out = append(out, model.tokens[id])
			}
			prefix = append(prefix[:0], head...)
		}
	}

	g.logger.Debug("text generated",
		slog.Int("order", model.order),
		slog.Int("min_length", options.length),
		slog.Int("tokens", len(out)),
		slog.Int("restarts", restarts),
	)

	return g.tokenizer.Join(out), nil
}
