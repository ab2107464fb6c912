package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, interval time.Duration) (UserService, *fixture) {
	t.Helper()
	f := newFixture(t)
	return NewUserService(f.users, interval, 1), f
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t, 0)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass", "1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
	assert.Equal(t, int64(1), u.Karma) // 注册赠 1 点
	assert.NotEmpty(t, u.Auth)
	assert.NotEmpty(t, u.APISecret)
	assert.NotEqual(t, "s3cretpass", u.Password) // 明文不落库

	got, err := svc.Login(ctx, "alice", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "s3cretpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _ := newUserService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass", "1.1.1.1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ALICE", "other@example.com", "s3cretpass", "2.2.2.2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, "bob", "Alice@Example.com", "s3cretpass", "3.3.3.3")
	require.ErrorIs(t, err, ErrEmailUsed)
}

func TestRegisterRateLimitedPerIP(t *testing.T) {
	svc, _ := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass", "1.1.1.1")
	require.NoError(t, err)

	// 同一 IP 紧接着再注册被限
	_, err = svc.Register(ctx, "bob", "bob@example.com", "s3cretpass", "1.1.1.1")
	require.ErrorIs(t, err, ErrSignupRateLimited)

	// 其他 IP 不受影响
	_, err = svc.Register(ctx, "carol", "carol@example.com", "s3cretpass", "2.2.2.2")
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService(t, 0)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass", "1.1.1.1")
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, u.Auth)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = svc.Authenticate(ctx, "bogus")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Authenticate(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}
