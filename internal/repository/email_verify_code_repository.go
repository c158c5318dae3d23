package repository

import (
	"errors"
	"time"

	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// EmailVerifyCodeRepository 邮箱验证码数据访问接口
type EmailVerifyCodeRepository interface {
	Create(code *models.EmailVerifyCode) error
	GetLatest(email, purpose string) (*models.EmailVerifyCode, error)
	InvalidatePending(email, purpose string) error
	Consume(id uint, verifiedAt time.Time) (bool, error)
	IncrementAttempt(id uint) error
	WithTx(tx *gorm.DB) *GormEmailVerifyCodeRepository
}

// GormEmailVerifyCodeRepository GORM 实现
type GormEmailVerifyCodeRepository struct {
	db *gorm.DB
}

// NewEmailVerifyCodeRepository 创建邮箱验证码仓库
func NewEmailVerifyCodeRepository(db *gorm.DB) *GormEmailVerifyCodeRepository {
	return &GormEmailVerifyCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEmailVerifyCodeRepository) WithTx(tx *gorm.DB) *GormEmailVerifyCodeRepository {
	if tx == nil {
		return r
	}
	return &GormEmailVerifyCodeRepository{db: tx}
}

// Create 创建验证码记录
func (r *GormEmailVerifyCodeRepository) Create(code *models.EmailVerifyCode) error {
	return r.db.Create(code).Error
}

// GetLatest 获取最新的未作废验证码记录
func (r *GormEmailVerifyCodeRepository) GetLatest(email, purpose string) (*models.EmailVerifyCode, error) {
	var record models.EmailVerifyCode
	if err := r.db.Where("email = ? AND purpose = ?", email, purpose).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// InvalidatePending 作废该邮箱该用途下所有未消费的验证码（软删除）
func (r *GormEmailVerifyCodeRepository) InvalidatePending(email, purpose string) error {
	return r.db.Where("email = ? AND purpose = ? AND verified_at IS NULL", email, purpose).
		Delete(&models.EmailVerifyCode{}).Error
}

// Consume 消费验证码。条件更新保证单次消费：已被并发消费时返回 false。
func (r *GormEmailVerifyCodeRepository) Consume(id uint, verifiedAt time.Time) (bool, error) {
	res := r.db.Model(&models.EmailVerifyCode{}).
		Where("id = ? AND verified_at IS NULL", id).
		Update("verified_at", verifiedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementAttempt 增加验证次数
func (r *GormEmailVerifyCodeRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.EmailVerifyCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
