package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const generationKey = "slots:gen"

// RedisSlotCache versiona as chaves por uma geração global: invalidar é
// um INCR, e as entradas antigas expiram sozinhas pelo TTL.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisSlotCache {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSlotCache{client: client, ttl: ttl, log: log}
}

func slotKey(gen int64, k usecase.SlotKey) string {
	return fmt.Sprintf("slots:%d:%d:%s:%d:%d", gen, k.BarberID, k.Date, k.Duration, k.Step)
}

func (c *RedisSlotCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisSlotCache) Get(ctx context.Context, k usecase.SlotKey) ([]string, int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("slot cache: read generation", zap.Error(err))
		return nil, -1, false
	}

	raw, err := c.client.Get(ctx, slotKey(gen, k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slot cache: get", zap.Error(err))
		}
		return nil, gen, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, gen, false
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, gen, true
}

// Set grava sob a geração lida no Get. Se houve Invalidate no meio, a
// chave já nasce morta e nenhum leitor a encontra.
func (c *RedisSlotCache) Set(ctx context.Context, k usecase.SlotKey, gen int64, slots []string) {
	if gen < 0 {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(gen, k), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache: set", zap.Error(err))
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

var _ usecase.SlotCache = (*RedisSlotCache)(nil)
