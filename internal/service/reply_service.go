package service

import (
	"strings"
	"unicode/utf8"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"gorm.io/gorm"
)

// ReplyService 回复服务
// 回复计数与回复行的增删在同一事务内完成。
type ReplyService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
}

// NewReplyService 创建回复服务
func NewReplyService(postRepo repository.PostRepository, replyRepo repository.ReplyRepository) *ReplyService {
	return &ReplyService{postRepo: postRepo, replyRepo: replyRepo}
}

// Create 发表回复，帖子回复数同事务加一
func (s *ReplyService) Create(userID, postID uint, parentReplyID *uint, content string) (*models.Reply, error) {
	content = strings.TrimSpace(content)
	length := utf8.RuneCountInString(content)
	if length < constants.ReplyContentMinLen || length > constants.ReplyContentMaxLen {
		return nil, ErrReplyContentLength
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if parentReplyID != nil {
		parent, err := s.replyRepo.GetByID(*parentReplyID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrReplyNotFound
		}
	}

	reply := &models.Reply{
		PostID:        postID,
		UserID:        userID,
		ParentReplyID: parentReplyID,
		Content:       content,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.replyRepo.WithTx(tx).Create(reply); err != nil {
			return err
		}
		return s.postRepo.WithTx(tx).AddRepliesCount(postID, 1)
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// Delete 删除回复。幂等：只有未删除到已删除的转换才扣减帖子回复数。
func (s *ReplyService) Delete(replyID, actorID uint, isModerator bool) error {
	reply, err := s.replyRepo.GetByID(replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if !isModerator && reply.UserID != actorID {
		return ErrForbidden
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.replyRepo.WithTx(tx).SoftDelete(replyID)
		if err != nil {
			return err
		}
		if !deleted {
			return nil
		}
		return s.postRepo.WithTx(tx).AddRepliesCount(reply.PostID, -1)
	})
}

// Restore 恢复已删除的回复（管理端），发生恢复转换时帖子回复数加一
func (s *ReplyService) Restore(replyID uint) error {
	reply, err := s.replyRepo.GetByIDUnscoped(replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		restored, err := s.replyRepo.WithTx(tx).Restore(replyID)
		if err != nil {
			return err
		}
		if !restored {
			return nil
		}
		return s.postRepo.WithTx(tx).AddRepliesCount(reply.PostID, 1)
	})
}

// List 回复列表
func (s *ReplyService) List(filter repository.ReplyListFilter) ([]models.Reply, int64, error) {
	return s.replyRepo.List(filter)
}
