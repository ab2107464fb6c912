package model

import "strings"

// User 用户（user:{id} 哈希的强类型视图）
type User struct {
	ID        uint64
	Username  string
	Email     string
	Password  string // bcrypt 哈希
	CreatedAt int64
	Karma     int64
	About     string
	Auth      string // 会话令牌，auth:{token} -> id
	APISecret string
	Flags     string
}

// IsAdmin 首个注册用户带 "a" 标记
func (u *User) IsAdmin() bool { return strings.Contains(u.Flags, "a") }
