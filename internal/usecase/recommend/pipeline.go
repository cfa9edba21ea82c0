package recommend

import (
	"context"

	"github.com/google/uuid"
)

// stage is one tier of the fallback cascade. It receives the number of slots
// still unfilled and returns candidate IDs in the tier's own preference order;
// the pipeline owns dedup and merging.
type stage[T any] func(ctx context.Context, need int) ([]T, error)

// runPipeline executes the tiers in order, merging each tier's results into
// the accumulated set after dropping IDs already present, and short-circuits
// once limit candidates are collected. A failing tier aborts the whole run:
// an empty tier caused by a fault must not masquerade as a legitimately empty
// tier.
func runPipeline[T any](ctx context.Context, stages []stage[T], idOf func(T) uuid.UUID, limit int) ([]T, error) {
	acc := make([]T, 0, limit)
	seen := make(map[uuid.UUID]struct{}, limit)

	for _, st := range stages {
		if len(acc) >= limit {
			break
		}

		extra, err := st(ctx, limit-len(acc))
		if err != nil {
			return nil, err
		}

		for _, item := range extra {
			id := idOf(item)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			acc = append(acc, item)
			if len(acc) >= limit {
				break
			}
		}
	}

	return acc, nil
}
