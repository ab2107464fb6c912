package store

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable 存储不可达（网络、超时、连接池耗尽）
	ErrUnavailable = errors.New("store unavailable")
	// ErrProtocol 存储返回了无法解释的内容（类型错误、脏数据）
	ErrProtocol = errors.New("store protocol error")
)

// Member 有序集合成员及其分值
type Member struct {
	Member string
	Score  float64
}

// Store 键值/有序集合存储的最小原语集。
// 纯协议转换，不含业务语义；失败原样上抛，由调用方决定策略。
type Store interface {
	GetScalar(ctx context.Context, key string) (string, bool, error)
	SetScalar(ctx context.Context, key, value string) error
	IncrScalar(ctx context.Context, key string) (int64, error)
	ScalarExists(ctx context.Context, key string) (bool, error)

	GetHash(ctx context.Context, key string) (map[string]string, error)
	GetHashField(ctx context.Context, key, field string) (string, bool, error)
	SetHashFields(ctx context.Context, key string, fields map[string]string) error
	IncrHashField(ctx context.Context, key, field string, delta int64) (int64, error)

	// ZUpsert 写入或更新成员分值，返回新增成员数（刷新已有成员时为 0）
	ZUpsert(ctx context.Context, set, member string, score float64) (int64, error)
	ZScore(ctx context.Context, set, member string) (float64, bool, error)
	ZRange(ctx context.Context, set string, start, stop int64, reverse bool) ([]string, error)
	ZRangeWithScores(ctx context.Context, set string, start, stop int64, reverse bool) ([]Member, error)
	ZCard(ctx context.Context, set string) (int64, error)
}
