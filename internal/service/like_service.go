package service

import (
	"strings"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"gorm.io/gorm"
)

// LikeService 点赞服务
// 切换点赞与计数调整在同一事务内完成，并发重复插入由唯一索引兜底。
type LikeService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
	likeRepo  repository.LikeRepository
}

// NewLikeService 创建点赞服务
func NewLikeService(postRepo repository.PostRepository, replyRepo repository.ReplyRepository, likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{postRepo: postRepo, replyRepo: replyRepo, likeRepo: likeRepo}
}

// LikeToggleResult 点赞切换结果
type LikeToggleResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// Toggle 切换点赞状态
func (s *LikeService) Toggle(userID uint, targetType string, targetID uint) (*LikeToggleResult, error) {
	targetType = strings.ToLower(strings.TrimSpace(targetType))
	if targetType != constants.LikeTargetPost && targetType != constants.LikeTargetReply {
		return nil, ErrLikeTargetInvalid
	}

	if err := s.ensureTargetExists(targetType, targetID); err != nil {
		return nil, err
	}

	liked := false
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)

		removed, err := likeRepo.Delete(userID, targetType, targetID)
		if err != nil {
			return err
		}
		if removed {
			liked = false
			return s.addLikesCount(tx, targetType, targetID, -1)
		}

		insertErr := likeRepo.Insert(&models.Like{
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
		})
		if insertErr != nil {
			// 并发下双方都没删到行又同时插入：输掉的一方视为已点赞，不再调整计数
			if repository.IsDuplicateKeyError(insertErr) {
				liked = true
				return nil
			}
			return insertErr
		}
		liked = true
		return s.addLikesCount(tx, targetType, targetID, 1)
	})
	if err != nil {
		return nil, err
	}

	count, err := s.likesCount(targetType, targetID)
	if err != nil {
		return nil, err
	}
	return &LikeToggleResult{Liked: liked, LikesCount: count}, nil
}

// HasLiked 判断用户是否已点赞
func (s *LikeService) HasLiked(userID uint, targetType string, targetID uint) (bool, error) {
	targetType = strings.ToLower(strings.TrimSpace(targetType))
	return s.likeRepo.Exists(userID, targetType, targetID)
}

func (s *LikeService) ensureTargetExists(targetType string, targetID uint) error {
	switch targetType {
	case constants.LikeTargetPost:
		post, err := s.postRepo.GetByID(targetID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
	case constants.LikeTargetReply:
		reply, err := s.replyRepo.GetByID(targetID)
		if err != nil {
			return err
		}
		if reply == nil {
			return ErrReplyNotFound
		}
	}
	return nil
}

func (s *LikeService) addLikesCount(tx *gorm.DB, targetType string, targetID uint, delta int64) error {
	switch targetType {
	case constants.LikeTargetPost:
		return s.postRepo.WithTx(tx).AddLikesCount(targetID, delta)
	case constants.LikeTargetReply:
		return s.replyRepo.WithTx(tx).AddLikesCount(targetID, delta)
	}
	return ErrLikeTargetInvalid
}

func (s *LikeService) likesCount(targetType string, targetID uint) (int64, error) {
	switch targetType {
	case constants.LikeTargetPost:
		post, err := s.postRepo.GetByID(targetID)
		if err != nil || post == nil {
			return 0, err
		}
		return post.LikesCount, nil
	case constants.LikeTargetReply:
		reply, err := s.replyRepo.GetByID(targetID)
		if err != nil || reply == nil {
			return 0, err
		}
		return reply.LikesCount, nil
	}
	return 0, ErrLikeTargetInvalid
}
