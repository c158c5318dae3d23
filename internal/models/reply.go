package models

import (
	"time"

	"gorm.io/gorm"
)

// Reply 回复表
type Reply struct {
	ID            uint           `gorm:"primarykey" json:"id"`                  // 主键
	PostID        uint           `gorm:"index;not null" json:"post_id"`         // 所属帖子ID
	UserID        uint           `gorm:"index;not null" json:"user_id"`         // 作者ID
	ParentReplyID *uint          `gorm:"index" json:"parent_reply_id"`          // 上级回复ID（楼中楼）
	Content       string         `gorm:"type:text;not null" json:"content"`     // 内容
	LikesCount    int64          `gorm:"not null;default:0" json:"likes_count"` // 点赞数（事务内维护）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间
}

// TableName 指定表名
func (Reply) TableName() string {
	return "replies"
}
