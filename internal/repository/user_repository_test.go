package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkrank/internal/model"
)

func seedUser(t *testing.T, repo UserRepository, name string) *model.User {
	t.Helper()
	u := &model.User{
		Username:  name,
		Email:     name + "@example.com",
		Password:  "hash",
		CreatedAt: time.Now().Unix(),
		Karma:     1,
		Auth:      "tok-" + name,
		APISecret: "sec-" + name,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserCreateMappingsAndAdminFlag(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	first := seedUser(t, repo, "Alice")
	assert.Equal(t, uint64(1), first.ID)
	assert.True(t, first.IsAdmin()) // 首个用户即管理员

	second := seedUser(t, repo, "bob")
	assert.Equal(t, uint64(2), second.ID)
	assert.False(t, second.IsAdmin())

	// 用户名映射大小写不敏感
	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got, err = repo.GetByAuth(ctx, "tok-bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	taken, err := repo.UsernameTaken(ctx, "ALICE")
	require.NoError(t, err)
	assert.True(t, taken)
	used, err := repo.EmailUsed(ctx, "Bob@example.com")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestUserLookupMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = repo.GetByAuth(ctx, "bogus")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserIncrKarma(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()
	u := seedUser(t, repo, "alice")

	n, err := repo.IncrKarma(ctx, u.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// karma 允许为负
	n, err = repo.IncrKarma(ctx, u.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), n)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), got.Karma)
}

func TestUserUsernameField(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	u := seedUser(t, repo, "alice")

	name, err := repo.Username(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	name, err = repo.Username(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, name)
}
