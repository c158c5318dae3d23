package models

import (
	"time"

	"gorm.io/gorm"
)

// User 匿名用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                    // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"-"`           // 邮箱（不对外暴露）
	UserNumber         uint64         `gorm:"uniqueIndex;not null" json:"user_number"` // 匿名展示序号（连续无空洞）
	DisplayName        string         `gorm:"not null" json:"display_name"`            // 匿名昵称（Marrón N）
	Locale             string         `gorm:"default:'es-ES'" json:"locale"`           // 语言偏好
	Status             string         `gorm:"default:'active'" json:"status"`          // 账号状态
	IsBanned           bool           `gorm:"not null;default:false;index" json:"is_banned"` // 是否封禁
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`             // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                          // 该时间点前签发的 Token 失效
	EmailVerifiedAt    *time.Time     `json:"email_verified_at"`                       // 邮箱验证时间
	LastLoginAt        *time.Time     `json:"last_login_at"`                           // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                 // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
