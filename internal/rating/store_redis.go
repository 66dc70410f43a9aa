package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// RedisCacheRepository caches fingerprints in Redis.
//
// The Postgres row is the durable copy; cache failures are survivable and
// callers treat errors as a miss.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

func fingerprintKey(bookID int) string {
	return constants.RedisPrefixFingerprint + strconv.Itoa(bookID)
}

func (repository *RedisCacheRepository) GetFingerprint(context context.Context, bookID int) (*Fingerprint, error) {
	payload, err := repository.client.Get(context, fingerprintKey(bookID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get fingerprint: %w", err)
	}

	fingerprint := &Fingerprint{}
	if err := json.Unmarshal(payload, fingerprint); err != nil {
		// A corrupt entry is a miss; the service will overwrite it.
		return nil, nil
	}

	return fingerprint, nil
}

func (repository *RedisCacheRepository) SetFingerprint(context context.Context, fingerprint *Fingerprint) error {
	payload, err := json.Marshal(fingerprint)
	if err != nil {
		return fmt.Errorf("marshal fingerprint: %w", err)
	}

	if err := repository.client.Set(context, fingerprintKey(fingerprint.BookID), payload, constants.AggregateCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set fingerprint: %w", err)
	}
	return nil
}

func (repository *RedisCacheRepository) Invalidate(context context.Context, bookID int) error {
	if err := repository.client.Del(context, fingerprintKey(bookID)).Err(); err != nil {
		return fmt.Errorf("redis del fingerprint: %w", err)
	}
	return nil
}
