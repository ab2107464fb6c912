package repository

import (
	"context"
	"strings"

	"linkrank/internal/model"
	"linkrank/internal/store"
)

type UserRepository interface {
	// Create 分配 id、落哈希，并登记 username/email/auth 三个映射键。
	// u.ID 由本方法填写；唯一性检查由调用方先行完成。
	Create(ctx context.Context, u *model.User) error
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByAuth(ctx context.Context, token string) (*model.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailUsed(ctx context.Context, email string) (bool, error)
	// Username 轻量取回用户名，用于列表装配
	Username(ctx context.Context, id uint64) (string, error)
	// IncrKarma 原子调整声望，允许为负
	IncrKarma(ctx context.Context, id uint64, delta int64) (int64, error)
}

type userRepository struct {
	st store.Store
}

func NewUserRepository(st store.Store) UserRepository { return &userRepository{st: st} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	id, err := r.st.IncrScalar(ctx, KeyUsersCount)
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	if id == 1 {
		// 首个注册用户即管理员
		u.Flags = "a"
	}
	if err := r.st.SetHashFields(ctx, UserKey(u.ID), userToHash(u)); err != nil {
		return err
	}
	idStr := userIDString(u.ID)
	if err := r.st.SetScalar(ctx, UsernameKey(strings.ToLower(u.Username)), idStr); err != nil {
		return err
	}
	if err := r.st.SetScalar(ctx, EmailKey(strings.ToLower(u.Email)), idStr); err != nil {
		return err
	}
	return r.st.SetScalar(ctx, AuthKey(u.Auth), idStr)
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	h, err := r.st.GetHash(ctx, UserKey(id))
	if err != nil {
		return nil, err
	}
	return userFromHash(h)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getByMapping(ctx, UsernameKey(strings.ToLower(username)))
}

func (r *userRepository) GetByAuth(ctx context.Context, token string) (*model.User, error) {
	return r.getByMapping(ctx, AuthKey(token))
}

func (r *userRepository) getByMapping(ctx context.Context, key string) (*model.User, error) {
	v, ok, err := r.st.GetScalar(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	id, err := parseUint(map[string]string{"id": v}, "id")
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.st.ScalarExists(ctx, UsernameKey(strings.ToLower(username)))
}

func (r *userRepository) EmailUsed(ctx context.Context, email string) (bool, error) {
	return r.st.ScalarExists(ctx, EmailKey(strings.ToLower(email)))
}

func (r *userRepository) Username(ctx context.Context, id uint64) (string, error) {
	v, _, err := r.st.GetHashField(ctx, UserKey(id), "username")
	return v, err
}

func (r *userRepository) IncrKarma(ctx context.Context, id uint64, delta int64) (int64, error) {
	return r.st.IncrHashField(ctx, UserKey(id), "karma", delta)
}
