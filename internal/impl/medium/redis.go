package medium

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "redis",
			Args: docs.ArgSpecs{
				{Dest: "redis_addr", Type: docs.FieldString, Description: "redis server address", Required: true},
				{Dest: "redis_key", Type: docs.FieldString, Description: "list key batches are RPUSH'd onto", Required: true},
			},
		},
		AutoSelectFlag: "redis_addr",
		Constructor:    newRedis,
	}))
}

type redisMedium struct {
	client *redis.Client
	key    string
}

func newRedis(attrs map[string]any) (medium.Type, error) {
	addr, _ := attrs["addr"].(string)
	key, _ := attrs["key"].(string)
	return &redisMedium{client: redis.NewClient(&redis.Options{Addr: addr}), key: key}, nil
}

func (m *redisMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	if err := m.client.RPush(ctx, m.key, b.Payload).Err(); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *redisMedium) Close(ctx context.Context) error {
	return m.client.Close()
}
