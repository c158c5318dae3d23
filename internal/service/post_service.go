package service

import (
	"strings"
	"unicode/utf8"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"
)

// PostService 帖子服务
type PostService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
}

// NewPostService 创建帖子服务
func NewPostService(postRepo repository.PostRepository, replyRepo repository.ReplyRepository) *PostService {
	return &PostService{postRepo: postRepo, replyRepo: replyRepo}
}

// Create 发布帖子
func (s *PostService) Create(userID uint, category, content string) (*models.Post, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if !IsSupportedCategory(category) {
		return nil, ErrCategoryInvalid
	}
	content = strings.TrimSpace(content)
	length := utf8.RuneCountInString(content)
	if length < constants.PostContentMinLen || length > constants.PostContentMaxLen {
		return nil, ErrPostContentLength
	}

	post := &models.Post{
		UserID:   userID,
		Category: category,
		Content:  content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get 获取单帖
func (s *PostService) Get(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetWithReplies 获取单帖及其全部回复
func (s *PostService) GetWithReplies(id uint) (*models.Post, []models.Reply, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	replies, err := s.replyRepo.ListByPost(post.ID)
	if err != nil {
		return nil, nil, err
	}
	return post, replies, nil
}

// List 帖子列表
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	if filter.Category != "" {
		filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
		if !IsSupportedCategory(filter.Category) {
			return nil, 0, ErrCategoryInvalid
		}
	}
	return s.postRepo.List(filter)
}

// Delete 删除帖子。普通用户只能删除自己的帖子，版主可删任意帖子。
func (s *PostService) Delete(postID, actorID uint, isModerator bool) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !isModerator && post.UserID != actorID {
		return ErrForbidden
	}
	_, err = s.postRepo.SoftDelete(postID)
	return err
}

// Restore 恢复已删除的帖子（管理端）
func (s *PostService) Restore(postID uint) error {
	post, err := s.postRepo.GetByIDUnscoped(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	_, err = s.postRepo.Restore(postID)
	return err
}

// IsSupportedCategory 判断分类是否受支持
func IsSupportedCategory(category string) bool {
	for _, c := range constants.SupportedPostCategories {
		if c == category {
			return true
		}
	}
	return false
}
