package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 帖子表
type Post struct {
	ID           uint           `gorm:"primarykey" json:"id"`                          // 主键
	UserID       uint           `gorm:"index;not null" json:"user_id"`                 // 作者ID
	Category     string         `gorm:"index;not null" json:"category"`                // 分类
	Content      string         `gorm:"type:text;not null" json:"content"`             // 内容
	LikesCount   int64          `gorm:"not null;default:0" json:"likes_count"`         // 点赞数（事务内维护）
	RepliesCount int64          `gorm:"not null;default:0" json:"replies_count"`       // 回复数（事务内维护）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
