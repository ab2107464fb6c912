package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"linkrank/internal/api/middleware"
	"linkrank/internal/model"
	"linkrank/internal/service"
	"linkrank/pkg/response"
)

type voteRequest struct {
	PostID    uint64 `json:"post_id" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// Vote 投票
// @Summary 给帖子投票
// @Tags 投票
// @Accept json
// @Produce json
// @Param request body voteRequest true "投票请求"
// @Success 200 {object} response.Response
// @Router /api/vote [post]
func (h *Handler) Vote(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dir, _ := model.ParseDirection(req.Direction)
	score, err := h.voteService.CastVote(c.Request.Context(), req.PostID, user.ID, dir)
	switch {
	case errors.Is(err, service.ErrDuplicateVote),
		errors.Is(err, service.ErrBadDirection),
		errors.Is(err, service.ErrNotEnoughKarma):
		response.BadRequest(c, err.Error())
		return
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, err.Error())
		return
	case err != nil:
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"post_id": req.PostID, "score": score})
}

func (h *Handler) requireUser(c *gin.Context) (*model.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "please log in first")
		return nil, false
	}
	return u, true
}
