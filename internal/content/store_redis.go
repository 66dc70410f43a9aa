package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// RedisCacheRepository caches derived aggregates in Redis.
//
// Aggregates are cheap to rebuild from Postgres, so every cache failure is
// survivable; callers treat errors as a miss.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

func aggregateKey(bookID int) string {
	return constants.RedisPrefixContentAggregate + strconv.Itoa(bookID)
}

func (repository *RedisCacheRepository) GetAggregate(context context.Context, bookID int) (*Aggregate, error) {
	payload, err := repository.client.Get(context, aggregateKey(bookID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get aggregate: %w", err)
	}

	aggregate := &Aggregate{}
	if err := json.Unmarshal(payload, aggregate); err != nil {
		// A corrupt entry is a miss; the service will overwrite it.
		return nil, nil
	}

	return aggregate, nil
}

func (repository *RedisCacheRepository) SetAggregate(context context.Context, aggregate *Aggregate) error {
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}

	if err := repository.client.Set(context, aggregateKey(aggregate.BookID), payload, constants.AggregateCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set aggregate: %w", err)
	}
	return nil
}

func (repository *RedisCacheRepository) Invalidate(context context.Context, bookID int) error {
	if err := repository.client.Del(context, aggregateKey(bookID)).Err(); err != nil {
		return fmt.Errorf("redis del aggregate: %w", err)
	}
	return nil
}
