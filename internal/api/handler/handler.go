package handler

import (
	"linkrank/internal/service"
)

// Handler 聚合 HTTP 层依赖；只做解析与派发，策略全部在 service 层
type Handler struct {
	userService service.UserService
	postService service.PostService
	voteService service.VoteService
	pageSize    int
}

func New(users service.UserService, posts service.PostService, votes service.VoteService, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = 30
	}
	return &Handler{
		userService: users,
		postService: posts,
		voteService: votes,
		pageSize:    pageSize,
	}
}
