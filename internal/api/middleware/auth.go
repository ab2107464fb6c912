package middleware

import (
	"github.com/gin-gonic/gin"

	"linkrank/internal/model"
	"linkrank/internal/service"
)

// CurrentUserKey 已鉴权用户在 gin context 中的键
const CurrentUserKey = "currentUser"

// Auth 解析 auth 令牌（header 优先，cookie 兜底）并注入当前用户。
// 不强制登录，是否要求身份由各 handler 决定。
func Auth(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Auth-Token")
		if token == "" {
			token, _ = c.Cookie("auth")
		}
		if token != "" {
			if u, err := users.Authenticate(c.Request.Context(), token); err == nil && u != nil {
				c.Set(CurrentUserKey, u)
			}
		}
		c.Next()
	}
}

// CurrentUser 取出已鉴权用户
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok
}
