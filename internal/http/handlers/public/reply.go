package public

import (
	"strconv"

	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateReplyRequest 回复请求
type CreateReplyRequest struct {
	Content       string `json:"content" binding:"required"`
	ParentReplyID *uint  `json:"parent_reply_id"`
}

// CreateReply 发表回复
func (h *Handler) CreateReply(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	reply, serr := h.ReplyService.Create(uid, uint(postID), req.ParentReplyID, req.Content)
	if serr != nil {
		respondWithMappedError(c, serr, replyWriteErrorRules, response.CodeInternal, "error.reply_create_failed")
		return
	}

	views, verr := h.buildReplyViews([]models.Reply{*reply})
	if verr != nil {
		respondError(c, response.CodeInternal, "error.reply_create_failed", verr)
		return
	}
	response.Success(c, views[0])
}

// ListReplies 获取帖子的回复列表
func (h *Handler) ListReplies(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	replies, total, serr := h.ReplyService.List(repository.ReplyListFilter{
		Page:     page,
		PageSize: pageSize,
		PostID:   uint(postID),
	})
	if serr != nil {
		respondError(c, response.CodeInternal, "error.reply_fetch_failed", serr)
		return
	}

	views, verr := h.buildReplyViews(replies)
	if verr != nil {
		respondError(c, response.CodeInternal, "error.reply_fetch_failed", verr)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, views, pagination)
}

// DeleteReply 删除自己的回复
func (h *Handler) DeleteReply(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	replyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || replyID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.ReplyService.Delete(uint(replyID), uid, false); err != nil {
		respondWithMappedError(c, err, replyWriteErrorRules, response.CodeInternal, "error.reply_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
