package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"linkrank/internal/model"
	"linkrank/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken, please try a different one")
	ErrEmailUsed          = errors.New("email already used, please recover the password if you can't login")
	ErrInvalidCredentials = errors.New("no match for the specified username / password pair")
	ErrSignupRateLimited  = errors.New("please wait some time before creating a new user")
)

// UserService 注册、登录与令牌鉴权
type UserService interface {
	Register(ctx context.Context, username, email, password, clientIP string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	// Authenticate 令牌无效时返回 (nil, nil)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type userService struct {
	users   repository.UserRepository
	limiter *ipLimiter
}

func NewUserService(users repository.UserRepository, signupInterval time.Duration, signupBurst int) UserService {
	return &userService{
		users:   users,
		limiter: newIPLimiter(signupInterval, signupBurst),
	}
}

func (s *userService) Register(ctx context.Context, username, email, password, clientIP string) (*model.User, error) {
	if !s.limiter.allow(clientIP) {
		return nil, ErrSignupRateLimited
	}
	if used, err := s.users.EmailUsed(ctx, email); err != nil {
		return nil, err
	} else if used {
		return nil, ErrEmailUsed
	}
	if taken, err := s.users.UsernameTaken(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now().Unix(),
		Karma:     1, // 注册赠 1 点声望
		Auth:      newToken(),
		APISecret: newToken(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.users.GetByAuth(ctx, token)
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ipLimiter 按客户端 IP 限制注册频率
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newIPLimiter(interval time.Duration, burst int) *ipLimiter {
	if interval <= 0 {
		interval = time.Minute
	}
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
		burst:    burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
