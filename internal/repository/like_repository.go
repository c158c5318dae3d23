package repository

import (
	"strings"

	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// LikeRepository 点赞数据访问接口
type LikeRepository interface {
	Insert(like *models.Like) error
	Delete(userID uint, targetType string, targetID uint) (bool, error)
	Exists(userID uint, targetType string, targetID uint) (bool, error)
	CountByTarget(targetType string, targetID uint) (int64, error)
	Total() (int64, error)
	WithTx(tx *gorm.DB) *GormLikeRepository
}

// GormLikeRepository GORM 实现
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建点赞仓库
func NewLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLikeRepository) WithTx(tx *gorm.DB) *GormLikeRepository {
	if tx == nil {
		return r
	}
	return &GormLikeRepository{db: tx}
}

// Insert 插入点赞记录。并发重复插入由唯一索引兜底，调用方用 IsDuplicateKeyError 判别。
func (r *GormLikeRepository) Insert(like *models.Like) error {
	return r.db.Create(like).Error
}

// Delete 删除点赞记录，返回是否真正删除了行
func (r *GormLikeRepository) Delete(userID uint, targetType string, targetID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists 判断是否已点赞
func (r *GormLikeRepository) Exists(userID uint, targetType string, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByTarget 统计目标的点赞数
func (r *GormLikeRepository) CountByTarget(targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Total 点赞总数
func (r *GormLikeRepository) Total() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsDuplicateKeyError 判断是否唯一索引冲突（兼容 sqlite 与 postgres 的报错文本）
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed")
}
