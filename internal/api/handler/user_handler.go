package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"linkrank/internal/service"
	"linkrank/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register 注册新用户
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Router /api/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password, c.ClientIP())
	switch {
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailUsed):
		response.BadRequest(c, err.Error())
		return
	case errors.Is(err, service.ErrSignupRateLimited):
		response.TooManyRequests(c, err.Error())
		return
	case err != nil:
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": u.ID, "auth": u.Auth, "apisecret": u.APISecret})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录，返回会话令牌
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "凭证"
// @Success 200 {object} response.Response
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": u.ID, "auth": u.Auth, "apisecret": u.APISecret, "karma": u.Karma})
}
