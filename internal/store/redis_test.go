package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) Store {
	t.Helper()
	m := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb)
}

func TestScalarOps(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, ok, err := st.GetScalar(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetScalar(ctx, "k", "v"))
	v, ok, err := st.GetScalar(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)

	exists, err := st.ScalarExists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = st.ScalarExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := st.IncrScalar(ctx, "ctr")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = st.IncrScalar(ctx, "ctr")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestHashOps(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	h, err := st.GetHash(ctx, "h")
	require.NoError(t, err)
	assert.Empty(t, h)

	require.NoError(t, st.SetHashFields(ctx, "h", map[string]string{"a": "1", "b": "x"}))
	require.NoError(t, st.SetHashFields(ctx, "h", map[string]string{"b": "y"}))

	h, err = st.GetHash(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "y"}, h)

	v, ok, err := st.GetHashField(ctx, "h", "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok, err = st.GetHashField(ctx, "h", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := st.IncrHashField(ctx, "h", "a", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = st.IncrHashField(ctx, "h", "c", -1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)
}

func TestSortedSetOps(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	added, err := st.ZUpsert(ctx, "z", "a", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), added)

	// 已有成员刷新分值：返回新增 0
	added, err = st.ZUpsert(ctx, "z", "a", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), added)

	_, err = st.ZUpsert(ctx, "z", "b", 3)
	require.NoError(t, err)
	_, err = st.ZUpsert(ctx, "z", "c", 4)
	require.NoError(t, err)

	sc, ok, err := st.ZScore(ctx, "z", "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5.0, sc)
	_, ok, err = st.ZScore(ctx, "z", "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	asc, err := st.ZRange(ctx, "z", 0, -1, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, asc)

	desc, err := st.ZRange(ctx, "z", 0, 1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, desc)

	withScores, err := st.ZRangeWithScores(ctx, "z", 0, -1, true)
	require.NoError(t, err)
	require.Len(t, withScores, 3)
	assert.Equal(t, Member{Member: "a", Score: 5}, withScores[0])

	n, err := st.ZCard(ctx, "z")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestWrongTypeIsProtocolError(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetScalar(ctx, "k", "v"))
	// 对 string 键做 hash 操作，服务端回 WRONGTYPE
	_, err := st.IncrHashField(ctx, "k", "f", 1)
	require.ErrorIs(t, err, ErrProtocol)
}

func TestUnreachableIsUnavailable(t *testing.T) {
	m := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	st := NewRedis(rdb)
	m.Close()

	_, err := st.IncrScalar(context.Background(), "k")
	require.ErrorIs(t, err, ErrUnavailable)
}
