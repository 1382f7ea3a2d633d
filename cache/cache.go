package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/logger"
)

type Cache struct {
	Rdb *redis.Client
	Ctx context.Context
	log *logger.Logger
}

// NewCache returns an initiated Redis client
func NewCache(log *logger.Logger) *Cache {
	var err error
	var opt *redis.Options

	if uri := config.Current.RedisURL; len(uri) > 0 {
		opt, err = redis.ParseURL(uri)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL value")
		}
	} else {
		opt = &redis.Options{
			Addr:     config.Current.RedisHost,
			Password: config.Current.RedisPassword,
			DB:       0, // use default DB
		}
	}
	rdb := redis.NewClient(opt)

	return &Cache{
		Rdb: rdb,
		Ctx: context.Background(),
		log: log,
	}
}

func (c *Cache) Get(key string) (string, error) {
	return c.Rdb.Get(c.Ctx, key).Result()
}

func (c *Cache) SetTTL(key, value string, ttl time.Duration) error {
	if _, err := c.Rdb.Set(c.Ctx, key, value, ttl).Result(); err != nil {
		return err
	}
	return nil
}

// consumeScript reads and deletes the key in one server-side step, so
// concurrent callers can never both observe the value.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v then redis.call('DEL', KEYS[1]) end
return v`)

func (c *Cache) Consume(key string) (string, error) {
	val, err := consumeScript.Run(c.Ctx, c.Rdb, []string{key}).Result()
	if err != nil {
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("unexpected grant ledger reply")
	}
	return s, nil
}
