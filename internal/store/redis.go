package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
}

// NewRedis 基于已建立的客户端构造存储适配器
func NewRedis(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

// wrap 把驱动错误归入两类：服务端回复异常算协议错误，其余（超时、断连）算不可用
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return fmt.Errorf("%w: %s: %v", ErrProtocol, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func (s *redisStore) GetScalar(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap("GET "+key, err)
	}
	return v, true, nil
}

func (s *redisStore) SetScalar(ctx context.Context, key, value string) error {
	return wrap("SET "+key, s.rdb.Set(ctx, key, value, 0).Err())
}

func (s *redisStore) IncrScalar(ctx context.Context, key string) (int64, error) {
	v, err := s.rdb.Incr(ctx, key).Result()
	return v, wrap("INCR "+key, err)
}

func (s *redisStore) ScalarExists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, wrap("EXISTS "+key, err)
	}
	return n > 0, nil
}

func (s *redisStore) GetHash(ctx context.Context, key string) (map[string]string, error) {
	h, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrap("HGETALL "+key, err)
	}
	return h, nil
}

func (s *redisStore) GetHashField(ctx context.Context, key, field string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap("HGET "+key, err)
	}
	return v, true, nil
}

func (s *redisStore) SetHashFields(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return wrap("HSET "+key, s.rdb.HSet(ctx, key, args...).Err())
}

func (s *redisStore) IncrHashField(ctx context.Context, key, field string, delta int64) (int64, error) {
	v, err := s.rdb.HIncrBy(ctx, key, field, delta).Result()
	return v, wrap("HINCRBY "+key, err)
}

func (s *redisStore) ZUpsert(ctx context.Context, set, member string, score float64) (int64, error) {
	n, err := s.rdb.ZAdd(ctx, set, redis.Z{Score: score, Member: member}).Result()
	return n, wrap("ZADD "+set, err)
}

func (s *redisStore) ZScore(ctx context.Context, set, member string) (float64, bool, error) {
	v, err := s.rdb.ZScore(ctx, set, member).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrap("ZSCORE "+set, err)
	}
	return v, true, nil
}

func (s *redisStore) ZRange(ctx context.Context, set string, start, stop int64, reverse bool) ([]string, error) {
	var (
		vs  []string
		err error
	)
	if reverse {
		vs, err = s.rdb.ZRevRange(ctx, set, start, stop).Result()
	} else {
		vs, err = s.rdb.ZRange(ctx, set, start, stop).Result()
	}
	if err != nil {
		return nil, wrap("ZRANGE "+set, err)
	}
	return vs, nil
}

func (s *redisStore) ZRangeWithScores(ctx context.Context, set string, start, stop int64, reverse bool) ([]Member, error) {
	var (
		zs  []redis.Z
		err error
	)
	if reverse {
		zs, err = s.rdb.ZRevRangeWithScores(ctx, set, start, stop).Result()
	} else {
		zs, err = s.rdb.ZRangeWithScores(ctx, set, start, stop).Result()
	}
	if err != nil {
		return nil, wrap("ZRANGE "+set, err)
	}
	res := make([]Member, len(zs))
	for i, z := range zs {
		res[i] = Member{Member: fmt.Sprint(z.Member), Score: z.Score}
	}
	return res, nil
}

func (s *redisStore) ZCard(ctx context.Context, set string) (int64, error) {
	n, err := s.rdb.ZCard(ctx, set).Result()
	return n, wrap("ZCARD "+set, err)
}
