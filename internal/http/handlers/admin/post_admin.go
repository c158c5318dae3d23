package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/repository"
	"github.com/marron-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminPosts 获取帖子列表（含已删除）
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:           page,
		PageSize:       pageSize,
		Category:       strings.TrimSpace(c.Query("category")),
		Keyword:        strings.TrimSpace(c.Query("keyword")),
		IncludeDeleted: true,
	}
	if userIDRaw := strings.TrimSpace(c.Query("user_id")); userIDRaw != "" {
		raw, err := strconv.ParseUint(userIDRaw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.UserID = uint(raw)
	}

	posts, total, err := h.PostService.List(filter)
	if err != nil {
		if errors.Is(err, service.ErrCategoryInvalid) {
			respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, posts, pagination)
}

// DeleteAdminPost 管理员删除帖子
func (h *Handler) DeleteAdminPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.PostService.Delete(uint(postID), 0, true); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.post_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RestoreAdminPost 管理员恢复已删除帖子
func (h *Handler) RestoreAdminPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.PostService.Restore(uint(postID)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"restored": true})
}

// GetAdminReplies 获取回复列表（含已删除）
func (h *Handler) GetAdminReplies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ReplyListFilter{
		Page:           page,
		PageSize:       pageSize,
		Keyword:        strings.TrimSpace(c.Query("keyword")),
		IncludeDeleted: true,
	}
	if postIDRaw := strings.TrimSpace(c.Query("post_id")); postIDRaw != "" {
		raw, err := strconv.ParseUint(postIDRaw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.PostID = uint(raw)
	}
	if userIDRaw := strings.TrimSpace(c.Query("user_id")); userIDRaw != "" {
		raw, err := strconv.ParseUint(userIDRaw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.UserID = uint(raw)
	}

	replies, total, err := h.ReplyService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reply_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, replies, pagination)
}

// DeleteAdminReply 管理员删除回复
func (h *Handler) DeleteAdminReply(c *gin.Context) {
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || replyID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.ReplyService.Delete(uint(replyID), 0, true); err != nil {
		if errors.Is(err, service.ErrReplyNotFound) {
			respondError(c, response.CodeNotFound, "error.reply_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.reply_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RestoreAdminReply 管理员恢复已删除回复
func (h *Handler) RestoreAdminReply(c *gin.Context) {
	replyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || replyID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.ReplyService.Restore(uint(replyID)); err != nil {
		if errors.Is(err, service.ErrReplyNotFound) {
			respondError(c, response.CodeNotFound, "error.reply_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"restored": true})
}
