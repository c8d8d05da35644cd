package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WatchCollection opens a change stream on coll and emits a signal for every
// change event. Signals are coalesced: a slow reader sees at least one pending
// signal, never a backlog. The channel closes when ctx ends or the stream fails.
func WatchCollection(ctx context.Context, coll *mongo.Collection) (<-chan struct{}, error) {
	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", coll.Name(), err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			select {
			case out <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			zap.L().Error("change stream stopped",
				zap.String("collection", coll.Name()),
				zap.Error(err),
			)
		}
	}()
	return out, nil
}
