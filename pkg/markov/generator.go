package markov

import (
	"errors"
	"io"
	"log/slog"
)

var (
	// ErrInvalidOrder is returned by Build when the requested order is
	// less than 1.
	ErrInvalidOrder = errors.New("markov: order must be at least 1")

	// ErrInvalidLength is returned by Generate when the requested minimum
	// output length is less than 1.
	ErrInvalidLength = errors.New("markov: length must be at least 1")

	// ErrEmptyModel is returned by Generate when the model's head set is
	// empty, which happens when every corpus entry was too short to yield
	// a single transition. There is no window to start a walk from.
	ErrEmptyModel = errors.New("markov: model has no chain heads")
)

// Generator is the main entry point for the library. It pairs a Tokenizer
// with a logger and provides model building and text generation. A
// Generator holds no per-corpus state; each Build returns a fresh Model.
type Generator struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewGenerator creates a Generator that models the token stream produced
// by the given tokenizer.
func NewGenerator(tokenizer Tokenizer) *Generator {
	return &Generator{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are
// discarded. Providing a `log/slog.Logger` enables logging for model
// building and generation.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}
