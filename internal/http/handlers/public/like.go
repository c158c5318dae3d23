package public

import (
	"github.com/marron-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ToggleLikeRequest 点赞切换请求
type ToggleLikeRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   uint   `json:"target_id" binding:"required"`
}

// ToggleLike 切换帖子或回复的点赞状态
func (h *Handler) ToggleLike(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.LikeService.Toggle(uid, req.TargetType, req.TargetID)
	if err != nil {
		respondWithMappedError(c, err, likeToggleErrorRules, response.CodeInternal, "error.like_failed")
		return
	}
	response.Success(c, result)
}
