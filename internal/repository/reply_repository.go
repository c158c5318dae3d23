package repository

import (
	"errors"
	"strings"

	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository 回复数据访问接口
type ReplyRepository interface {
	Create(reply *models.Reply) error
	GetByID(id uint) (*models.Reply, error)
	GetByIDUnscoped(id uint) (*models.Reply, error)
	List(filter ReplyListFilter) ([]models.Reply, int64, error)
	ListByPost(postID uint) ([]models.Reply, error)
	SoftDelete(id uint) (bool, error)
	Restore(id uint) (bool, error)
	AddLikesCount(id uint, delta int64) error
	WithTx(tx *gorm.DB) *GormReplyRepository
}

// GormReplyRepository GORM 实现
type GormReplyRepository struct {
	db *gorm.DB
}

// NewReplyRepository 创建回复仓库
func NewReplyRepository(db *gorm.DB) *GormReplyRepository {
	return &GormReplyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReplyRepository) WithTx(tx *gorm.DB) *GormReplyRepository {
	if tx == nil {
		return r
	}
	return &GormReplyRepository{db: tx}
}

// Create 创建回复
func (r *GormReplyRepository) Create(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetByID 根据 ID 获取回复（不含已删除）
func (r *GormReplyRepository) GetByID(id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reply, nil
}

// GetByIDUnscoped 根据 ID 获取回复（含已删除）
func (r *GormReplyRepository) GetByIDUnscoped(id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.Unscoped().First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reply, nil
}

// List 回复列表
func (r *GormReplyRepository) List(filter ReplyListFilter) ([]models.Reply, int64, error) {
	query := r.db.Model(&models.Reply{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.PostID != 0 {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, argCount := buildKeywordLikeCondition(r.db, []string{"content"})
		query = query.Where(condition, repeatLikeArgs("%"+keyword+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var replies []models.Reply
	if err := query.Order("id ASC").Find(&replies).Error; err != nil {
		return nil, 0, err
	}
	return replies, total, nil
}

// ListByPost 获取某帖全部回复（按楼层顺序）
func (r *GormReplyRepository) ListByPost(postID uint) ([]models.Reply, error) {
	replies := make([]models.Reply, 0)
	if err := r.db.Where("post_id = ?", postID).Order("id ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// SoftDelete 软删除回复，返回是否发生了删除转换
func (r *GormReplyRepository) SoftDelete(id uint) (bool, error) {
	res := r.db.Delete(&models.Reply{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Restore 恢复已软删除的回复
func (r *GormReplyRepository) Restore(id uint) (bool, error) {
	res := r.db.Unscoped().Model(&models.Reply{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddLikesCount 调整点赞计数
func (r *GormReplyRepository) AddLikesCount(id uint, delta int64) error {
	return r.db.Model(&models.Reply{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}
