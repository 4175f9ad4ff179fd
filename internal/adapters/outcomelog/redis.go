package outcomelog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// RedisRecorder зеркалит результаты в Redis: список номеров на каждый исход
// и хэш "номер -> последний исход".
type RedisRecorder struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRecorder(addr, password string, db int, prefix string) *RedisRecorder {
	return &RedisRecorder{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: prefix,
	}
}

func (r *RedisRecorder) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisRecorder) Record(ctx context.Context, phone string, outcome domain.TerminationOutcome) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, listKey(r.prefix, outcome), phone)
		pipe.HSet(ctx, lastKey(r.prefix), phone, outcome.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record %s: %w", phone, err)
	}
	return nil
}

func (r *RedisRecorder) Close() error {
	return r.rdb.Close()
}

// ok и fail совпадают с файлами new_number/old_number
func listKey(prefix string, outcome domain.TerminationOutcome) string {
	if outcome == domain.TerminationSucceeded {
		return prefix + ":terminate:ok"
	}
	return prefix + ":terminate:fail"
}

func lastKey(prefix string) string {
	return prefix + ":terminate:last"
}
