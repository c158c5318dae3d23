package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUserNumber(number uint64) (*models.User, error)
	ListByIDs(ids []uint) ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	NextUserNumber() (uint64, error)
	SetBanned(userID uint, banned bool) error
	BatchUpdateStatus(userIDs []uint, status string) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUserNumber 根据匿名序号获取用户
func (r *GormUserRepository) GetByUserNumber(number uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_number = ?", number).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListByIDs 批量获取用户
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// NextUserNumber 分配下一个匿名序号。
// 通过序号行的行内自增保证连续无空洞，需在创建用户的同一事务中调用。
func (r *GormUserRepository) NextUserNumber() (uint64, error) {
	increment := func() (int64, error) {
		res := r.db.Model(&models.Sequence{}).
			Where("name = ?", constants.SequenceUserNumber).
			UpdateColumn("value", gorm.Expr("value + 1"))
		return res.RowsAffected, res.Error
	}

	affected, err := increment()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		seq := models.Sequence{Name: constants.SequenceUserNumber, Value: 1}
		err := r.db.Create(&seq).Error
		if err == nil {
			return 1, nil
		}
		// 首次分配竞争：序号行刚被对方创建，改走自增
		if !IsDuplicateKeyError(err) {
			return 0, err
		}
		if affected, err = increment(); err != nil {
			return 0, err
		}
		if affected == 0 {
			return 0, errors.New("序号行丢失")
		}
	}

	var seq models.Sequence
	if err := r.db.Where("name = ?", constants.SequenceUserNumber).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IsBanned != nil {
		query = query.Where("is_banned = ?", *filter.IsBanned)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetBanned 设置封禁状态，封禁时同时吊销已签发的 Token
func (r *GormUserRepository) SetBanned(userID uint, banned bool) error {
	if userID == 0 {
		return nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"is_banned":  banned,
		"updated_at": now,
	}
	if banned {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// BatchUpdateStatus 批量更新用户状态
func (r *GormUserRepository) BatchUpdateStatus(userIDs []uint, status string) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if strings.ToLower(strings.TrimSpace(status)) == constants.UserStatusDisabled {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(updates).Error
}
