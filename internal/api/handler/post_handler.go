package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkrank/internal/model"
	"linkrank/internal/repository"
	"linkrank/pkg/response"
)

type submitRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// Submit 提交链接或讨论帖
// @Summary 提交帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body submitRequest true "帖子内容"
// @Success 200 {object} response.Response
// @Router /api/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Submit(c.Request.Context(), req.Title, req.URL, req.Text, user.ID)
	if errors.Is(err, repository.ErrTitleRequired) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		// 帖子可能已创建而自动投票失败：不回滚，如实报错
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID, "score": post.Score})
}

// GetPost 帖子详情，讨论帖附带渲染后的正文
// @Summary 帖子详情
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.Success(c, post)
}

// Top 按衰减分值倒序的首页
// @Summary 排行榜
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/top [get]
func (h *Handler) Top(c *gin.Context) {
	h.listPosts(c, func(page, size int) ([]*model.Post, error) {
		return h.postService.Top(c.Request.Context(), page, size)
	})
}

// Newest 按提交时间倒序
// @Summary 最新
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/newest [get]
func (h *Handler) Newest(c *gin.Context) {
	h.listPosts(c, func(page, size int) ([]*model.Post, error) {
		return h.postService.Newest(c.Request.Context(), page, size)
	})
}

// Saved 当前用户赞过的帖子
// @Summary 我的收藏
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/saved [get]
func (h *Handler) Saved(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	h.listPosts(c, func(page, size int) ([]*model.Post, error) {
		return h.postService.Saved(c.Request.Context(), user.ID, page, size)
	})
}

// Posted 当前用户提交过的帖子
// @Summary 我的发布
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/posted [get]
func (h *Handler) Posted(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	h.listPosts(c, func(page, size int) ([]*model.Post, error) {
		return h.postService.Posted(c.Request.Context(), user.ID, page, size)
	})
}

func (h *Handler) listPosts(c *gin.Context, fetch func(page, size int) ([]*model.Post, error)) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.pageSize)))
	posts, err := fetch(page, size)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "list": posts})
}
