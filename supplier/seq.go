package supplier

import (
	"context"
	"iter"
)

// liftScan adapts a plain cache scan into the supplier sequence shape,
// stopping with the context error once the caller's context is done.
func liftScan[T any](ctx context.Context, src iter.Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for v := range src {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// takeSeq passes through at most n elements of src; an error element
// terminates the sequence regardless.
func takeSeq[T any](src iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		remaining := n
		for v, err := range src {
			if remaining <= 0 {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
			remaining--
		}
	}
}

// concatSeq yields every sequence in order, stopping at the first error.
func concatSeq[T any](seqs ...iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, seq := range seqs {
			for v, err := range seq {
				if !yield(v, err) || err != nil {
					return
				}
			}
		}
	}
}

// switchIfEmpty yields first in its entirety; only when first produces no
// elements at all does it switch to second. An error counts as production,
// so failures never trigger the switch.
func switchIfEmpty[T any](first, second iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		produced := false
		for v, err := range first {
			produced = true
			if !yield(v, err) {
				return
			}
		}
		if produced {
			return
		}
		for v, err := range second {
			if !yield(v, err) {
				return
			}
		}
	}
}

func emptySeq[T any]() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {}
}
