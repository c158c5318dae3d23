package repository

import (
	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// StatsRepository 论坛聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatsRepository interface {
	GetTotals() (StatsTotalsRow, error)
	GetPostCountByCategory() (map[string]int64, error)
	GetMostActiveUsers(limit int) ([]StatsActiveUserRow, error)
}

// StatsTotalsRow 总量统计原始结果
type StatsTotalsRow struct {
	Users   int64
	Posts   int64
	Replies int64
	Likes   int64
}

// StatsActiveUserRow 活跃用户排行原始行
type StatsActiveUserRow struct {
	UserID      uint
	UserNumber  uint64
	DisplayName string
	Activity    int64
}

// GormStatsRepository GORM 聚合实现
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// GetTotals 获取总量统计
func (r *GormStatsRepository) GetTotals() (StatsTotalsRow, error) {
	result := StatsTotalsRow{}

	if err := r.db.Model(&models.User{}).Count(&result.Users).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Post{}).Count(&result.Posts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Reply{}).Count(&result.Replies).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Like{}).Count(&result.Likes).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetPostCountByCategory 按分类统计帖子数量
func (r *GormStatsRepository) GetPostCountByCategory() (map[string]int64, error) {
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

// GetMostActiveUsers 获取发帖加回复最多的用户排行
func (r *GormStatsRepository) GetMostActiveUsers(limit int) ([]StatsActiveUserRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]StatsActiveUserRow, 0, limit)
	err := r.db.Raw(`
		SELECT u.id AS user_id,
		       u.user_number AS user_number,
		       u.display_name AS display_name,
		       (SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id AND p.deleted_at IS NULL) +
		       (SELECT COUNT(*) FROM replies rp WHERE rp.user_id = u.id AND rp.deleted_at IS NULL) AS activity
		FROM users u
		WHERE u.deleted_at IS NULL
		ORDER BY activity DESC, u.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
