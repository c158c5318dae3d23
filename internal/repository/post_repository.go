package repository

import (
	"errors"
	"strings"

	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// PostRepository 帖子数据访问接口
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetByIDUnscoped(id uint) (*models.Post, error)
	List(filter PostListFilter) ([]models.Post, int64, error)
	SoftDelete(id uint) (bool, error)
	Restore(id uint) (bool, error)
	AddRepliesCount(id uint, delta int64) error
	AddLikesCount(id uint, delta int64) error
	CountByCategory() (map[string]int64, error)
	WithTx(tx *gorm.DB) *GormPostRepository
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPostRepository) WithTx(tx *gorm.DB) *GormPostRepository {
	if tx == nil {
		return r
	}
	return &GormPostRepository{db: tx}
}

// Create 创建帖子
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据 ID 获取帖子（不含已删除）
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDUnscoped 根据 ID 获取帖子（含已删除，管理端恢复用）
func (r *GormPostRepository) GetByIDUnscoped(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Unscoped().First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List 帖子列表
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
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

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "id DESC"
	}

	var posts []models.Post
	if err := query.Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SoftDelete 软删除帖子。默认作用域只命中未删除行，返回是否发生了删除转换。
func (r *GormPostRepository) SoftDelete(id uint) (bool, error) {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Restore 恢复已软删除的帖子
func (r *GormPostRepository) Restore(id uint) (bool, error) {
	res := r.db.Unscoped().Model(&models.Post{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddRepliesCount 调整回复计数
func (r *GormPostRepository) AddRepliesCount(id uint, delta int64) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("replies_count", gorm.Expr("replies_count + ?", delta)).Error
}

// AddLikesCount 调整点赞计数
func (r *GormPostRepository) AddLikesCount(id uint, delta int64) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

// CountByCategory 按分类统计帖子数量
func (r *GormPostRepository) CountByCategory() (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}
	var rows []row
	err := r.db.Model(&models.Post{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, item := range rows {
		result[item.Category] = item.Total
	}
	return result, nil
}
