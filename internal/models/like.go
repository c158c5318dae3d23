package models

import "time"

// Like 点赞表（user_id + target 唯一，靠唯一索引挡并发重复）
type Like struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserID     uint      `gorm:"uniqueIndex:uk_likes_user_target;not null" json:"user_id"` // 点赞用户ID
	TargetType string    `gorm:"uniqueIndex:uk_likes_user_target;not null" json:"target_type"` // 目标类型（post/reply）
	TargetID   uint      `gorm:"uniqueIndex:uk_likes_user_target;not null" json:"target_id"`   // 目标ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (Like) TableName() string {
	return "likes"
}
