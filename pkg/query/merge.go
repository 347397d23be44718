package query

import (
	"cmp"
	"context"
)

// AcceptFunc is evaluated once per value found in every iterator; a false
// result or error excludes the value from Merge's results. It is itself a
// suspension point, consistent with the single-threaded cooperative model.
type AcceptFunc[T cmp.Ordered] func(ctx context.Context, v T) (bool, error)

// Merge performs the sorted-merge intersection: repeatedly compare the
// current value of every iterator, accept it when all agree, then advance
// the iterator holding the minimal value (the first such on a tie). It
// stops when any iterator is exhausted or the result count reaches max.
func Merge[T cmp.Ordered](ctx context.Context, iters []Iterator[T], max int, accept AcceptFunc[T]) ([]T, error) {
	switch len(iters) {
	case 0:
		return nil, nil
	case 1:
		return drainSingle(ctx, iters[0], max, accept)
	}

	values := make([]T, len(iters))

	for i, it := range iters {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, nil
		}

		values[i] = v
	}

	var results []T

	for {
		if allEqual(values) {
			keep := true

			if accept != nil {
				var err error

				keep, err = accept(ctx, values[0])
				if err != nil {
					return nil, err
				}
			}

			if keep {
				results = append(results, values[0])

				if len(results) >= max {
					return results, nil
				}
			}
		}

		minIdx := indexOfMin(values)

		v, ok, err := iters[minIdx].Next(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			return results, nil
		}

		values[minIdx] = v
	}
}

func drainSingle[T cmp.Ordered](ctx context.Context, it Iterator[T], max int, accept AcceptFunc[T]) ([]T, error) {
	var out []T

	for len(out) < max {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		keep := true

		if accept != nil {
			var err error

			keep, err = accept(ctx, v)
			if err != nil {
				return nil, err
			}
		}

		if keep {
			out = append(out, v)
		}
	}

	return out, nil
}

func allEqual[T cmp.Ordered](values []T) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}

func indexOfMin[T cmp.Ordered](values []T) int {
	min := 0

	for i, v := range values[1:] {
		if v < values[min] {
			min = i + 1
		}
	}

	return min
}
