package storage

import (
	"context"
	"strconv"
	"time"

	"chatchat-order/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const itemNamesKey = "orders:item_names"

// RedisTally counts ordered units per menu item per day.
type RedisTally struct {
	Client *redis.Client
	TTL    time.Duration
	Now    func() time.Time
}

func NewRedisTally(client *redis.Client, ttl time.Duration) *RedisTally {
	return &RedisTally{Client: client, TTL: ttl, Now: time.Now}
}

func (t *RedisTally) DailyKey(day time.Time) string {
	return "orders:daily:" + day.UTC().Format("2006-01-02")
}

func (t *RedisTally) Record(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	key := t.DailyKey(t.Now())
	_, err := t.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range items {
			member := strconv.FormatInt(item.MenuItemID, 10)
			pipe.ZIncrBy(ctx, key, float64(item.Qty), member)
			pipe.HSet(ctx, itemNamesKey, member, item.Name)
		}
		pipe.Expire(ctx, key, t.TTL)
		return nil
	})
	return err
}

func (t *RedisTally) Top(ctx context.Context, n int64) ([]domain.ItemCount, error) {
	result, err := t.Client.ZRevRangeWithScores(ctx, t.DailyKey(t.Now()), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return []domain.ItemCount{}, nil
	}

	members := make([]string, 0, len(result))
	for _, z := range result {
		members = append(members, z.Member.(string))
	}
	names, err := t.Client.HMGet(ctx, itemNamesKey, members...).Result()
	if err != nil {
		return nil, err
	}

	counts := make([]domain.ItemCount, 0, len(result))
	for i, z := range result {
		id, _ := strconv.ParseInt(members[i], 10, 64)
		name, _ := names[i].(string)
		counts = append(counts, domain.ItemCount{MenuItemID: id, Name: name, Qty: int64(z.Score)})
	}
	return counts, nil
}
