package reminderstore

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/reminder"
)

const DefaultKey = "reminders:due"

// Redis guarda os intents num sorted set: score = unix do disparo,
// member = id do agendamento.
type Redis struct {
	rdb *redis.Client
	key string
}

func NewRedis(rdb *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{rdb: rdb, key: key}
}

// Connect abre o cliente a partir de uma URL redis:// e valida com PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return rdb, nil
}

func (r *Redis) Put(ctx context.Context, in reminder.Intent) error {
	err := r.rdb.ZAdd(ctx, r.key, &redis.Z{
		Score:  float64(in.FireAt.Unix()),
		Member: in.AppointmentID,
	}).Err()
	return errors.Wrap(err, "zadd reminder")
}

func (r *Redis) Remove(ctx context.Context, appointmentID string) error {
	return errors.Wrap(r.rdb.ZRem(ctx, r.key, appointmentID).Err(), "zrem reminder")
}

// ClaimDue lê os vencidos e remove um a um; só quem consegue o ZREM
// fica com o intent, então instâncias concorrentes não disparam em dobro.
func (r *Redis) ClaimDue(ctx context.Context, now time.Time, limit int) ([]reminder.Intent, error) {
	opt := &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}
	if limit > 0 {
		opt.Count = int64(limit)
	}

	members, err := r.rdb.ZRangeByScoreWithScores(ctx, r.key, opt).Result()
	if err != nil {
		return nil, errors.Wrap(err, "zrangebyscore reminders")
	}

	claimed := make([]reminder.Intent, 0, len(members))
	for _, z := range members {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		n, err := r.rdb.ZRem(ctx, r.key, id).Result()
		if err != nil {
			return claimed, errors.Wrap(err, "claim reminder")
		}
		if n == 1 {
			claimed = append(claimed, reminder.Intent{
				AppointmentID: id,
				FireAt:        time.Unix(int64(z.Score), 0),
			})
		}
	}

	return claimed, nil
}

var _ reminder.Store = (*Redis)(nil)
