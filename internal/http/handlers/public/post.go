package public

import (
	"strconv"
	"time"

	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// authorView 帖子/回复作者的匿名展示信息
type authorView struct {
	UserNumber  uint64 `json:"user_number"`
	DisplayName string `json:"display_name"`
}

// postView 帖子响应结构
type postView struct {
	ID           uint       `json:"id"`
	Category     string     `json:"category"`
	Content      string     `json:"content"`
	LikesCount   int64      `json:"likes_count"`
	RepliesCount int64      `json:"replies_count"`
	CreatedAt    time.Time  `json:"created_at"`
	Author       authorView `json:"author"`
}

// replyView 回复响应结构
type replyView struct {
	ID            uint       `json:"id"`
	PostID        uint       `json:"post_id"`
	ParentReplyID *uint      `json:"parent_reply_id,omitempty"`
	Content       string     `json:"content"`
	LikesCount    int64      `json:"likes_count"`
	CreatedAt     time.Time  `json:"created_at"`
	Author        authorView `json:"author"`
}

// ListPosts 获取帖子列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
	}

	posts, total, err := h.PostService.List(filter)
	if err != nil {
		respondWithMappedError(c, err, postWriteErrorRules, response.CodeInternal, "error.post_fetch_failed")
		return
	}

	views, err := h.buildPostViews(posts)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
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

// GetPost 获取单帖及其回复
func (h *Handler) GetPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	post, replies, serr := h.PostService.GetWithReplies(uint(postID))
	if serr != nil {
		respondWithMappedError(c, serr, postWriteErrorRules, response.CodeInternal, "error.post_fetch_failed")
		return
	}

	postViews, verr := h.buildPostViews([]models.Post{*post})
	if verr != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", verr)
		return
	}
	replyViews, verr := h.buildReplyViews(replies)
	if verr != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", verr)
		return
	}

	response.Success(c, gin.H{
		"post":    postViews[0],
		"replies": replyViews,
	})
}

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Category string `json:"category" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// CreatePost 发布帖子
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Create(uid, req.Category, req.Content)
	if err != nil {
		respondWithMappedError(c, err, postWriteErrorRules, response.CodeInternal, "error.post_create_failed")
		return
	}

	views, verr := h.buildPostViews([]models.Post{*post})
	if verr != nil {
		respondError(c, response.CodeInternal, "error.post_create_failed", verr)
		return
	}
	response.Success(c, views[0])
}

// DeletePost 删除自己的帖子
func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.PostService.Delete(uint(postID), uid, false); err != nil {
		respondWithMappedError(c, err, postWriteErrorRules, response.CodeInternal, "error.post_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListMyPosts 获取当前用户发布的帖子
func (h *Handler) ListMyPosts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}

	views, verr := h.buildPostViews(posts)
	if verr != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", verr)
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

func (h *Handler) buildPostViews(posts []models.Post) ([]postView, error) {
	userIDs := make([]uint, 0, len(posts))
	for _, post := range posts {
		userIDs = append(userIDs, post.UserID)
	}
	authors, err := h.loadAuthors(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, postView{
			ID:           post.ID,
			Category:     post.Category,
			Content:      post.Content,
			LikesCount:   post.LikesCount,
			RepliesCount: post.RepliesCount,
			CreatedAt:    post.CreatedAt,
			Author:       authors[post.UserID],
		})
	}
	return views, nil
}

func (h *Handler) buildReplyViews(replies []models.Reply) ([]replyView, error) {
	userIDs := make([]uint, 0, len(replies))
	for _, reply := range replies {
		userIDs = append(userIDs, reply.UserID)
	}
	authors, err := h.loadAuthors(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]replyView, 0, len(replies))
	for _, reply := range replies {
		views = append(views, replyView{
			ID:            reply.ID,
			PostID:        reply.PostID,
			ParentReplyID: reply.ParentReplyID,
			Content:       reply.Content,
			LikesCount:    reply.LikesCount,
			CreatedAt:     reply.CreatedAt,
			Author:        authors[reply.UserID],
		})
	}
	return views, nil
}

func (h *Handler) loadAuthors(userIDs []uint) (map[uint]authorView, error) {
	result := make(map[uint]authorView, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	users, err := h.UserRepo.ListByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		result[user.ID] = authorView{
			UserNumber:  user.UserNumber,
			DisplayName: user.DisplayName,
		}
	}
	return result, nil
}
