package markov

import "iter"

// ngramOptions Is used by NGrams to configure optional boundary padding.
type ngramOptions[T any] struct {
	padLeft  bool
	padRight bool
	pad      T
}

// NGramOption is a function that configures the NGrams windower.
type NGramOption[T any] func(*ngramOptions[T])

// WithLeftPad extends the sequence with n-1 copies of pad before the first
// element, so the first real element appears in every window position.
func WithLeftPad[T any](pad T) NGramOption[T] {
	return func(o *ngramOptions[T]) {
		o.padLeft = true
		o.pad = pad
	}
}

// WithRightPad extends the sequence with n-1 copies of pad after the last
// element, so the last real element appears in every window position.
func WithRightPad[T any](pad T) NGramOption[T] {
	return func(o *ngramOptions[T]) {
		o.padRight = true
		o.pad = pad
	}
}

// NGrams returns an iterator over every consecutive window of n elements in
// seq, in order. A sequence shorter than n yields no windows, as does n < 1.
// Each yielded window is a fresh slice that the caller may retain. The
// iterator is restartable: ranging over it again reproduces the same windows.
func NGrams[T any](seq []T, n int, opts ...NGramOption[T]) iter.Seq[[]T] {
	var o ngramOptions[T]
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func([]T) bool) {
		if n < 1 {
			return
		}

		src := seq
		if o.padLeft || o.padRight {
			padded := make([]T, 0, len(seq)+2*(n-1))
			if o.padLeft {
				for range n - 1 {
					padded = append(padded, o.pad)
				}
			}
			padded = append(padded, seq...)
			if o.padRight {
				for range n - 1 {
					padded = append(padded, o.pad)
				}
			}
			src = padded
		}

		for i := 0; i+n <= len(src); i++ {
			window := make([]T, n)
			copy(window, src[i:i+n])
			if !yield(window) {
				return
			}
		}
	}
}
