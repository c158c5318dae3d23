package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/marron-next/internal/cache"
	"github.com/marron-next/internal/config"
	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/i18n"
	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/queue"
	"github.com/marron-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// UserAuthService 用户认证服务（邮箱验证码免密登录）
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	codeRepo     repository.EmailVerifyCodeRepository
	emailService *EmailService
	queueClient  *queue.Client
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, codeRepo repository.EmailVerifyCodeRepository, emailService *EmailService, queueClient *queue.Client) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	UserNumber   uint64 `json:"user_number"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveUserJWTExpireHours(s.cfg.UserJWT)
	}
	expiresAt := time.Now().Add(time.Duration(resolvedHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		UserNumber:   user.UserNumber,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token（仅接受 HS256）
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// SendVerifyCode 发送邮箱验证码
// register：邮箱不能已注册；login：邮箱必须已注册且账号可用。
func (s *UserAuthService) SendVerifyCode(email, purpose, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	purpose = strings.ToLower(strings.TrimSpace(purpose))
	if !isVerifyPurposeSupported(purpose) {
		return ErrInvalidVerifyPurpose
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}

	switch purpose {
	case constants.VerifyPurposeRegister:
		if user != nil {
			return ErrEmailExists
		}
	case constants.VerifyPurposeLogin:
		if user == nil {
			return ErrEmailNotFound
		}
		if user.IsBanned {
			return ErrUserBanned
		}
		if strings.ToLower(user.Status) != constants.UserStatusActive {
			return ErrUserDisabled
		}
		if strings.TrimSpace(user.Locale) != "" {
			locale = user.Locale
		}
	}

	return s.issueVerifyCode(normalized, purpose, locale)
}

// VerifyRegister 校验注册验证码并创建匿名用户
// 序号在创建事务内通过序号行自增分配，保证连续无空洞。
func (s *UserAuthService) VerifyRegister(email, code string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	if _, err := s.verifyCode(normalized, constants.VerifyPurposeRegister, code); err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user := &models.User{
		Email:           normalized,
		Locale:          constants.LocaleEsES,
		Status:          constants.UserStatusActive,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.userRepo.WithTx(tx)
		number, err := txRepo.NextUserNumber()
		if err != nil {
			return err
		}
		user.UserNumber = number
		user.DisplayName = fmt.Sprintf("%s %d", constants.DisplayNamePrefix, number)
		if err := txRepo.Create(user); err != nil {
			// 两个并发校验各持有效验证码时，邮箱唯一索引兜底，输掉的一方视为已注册
			if repository.IsDuplicateKeyError(err) {
				return ErrEmailExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// VerifyLogin 校验登录验证码并签发会话
// 封禁或停用的账号在签发会话前被拒绝。
func (s *UserAuthService) VerifyLogin(email, code string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrEmailNotFound
	}
	if user.IsBanned {
		return nil, "", time.Time{}, ErrUserBanned
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	if _, err := s.verifyCode(normalized, constants.VerifyPurposeLogin, code); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

// UpdateLocale 更新用户界面语言
func (s *UserAuthService) UpdateLocale(userID uint, locale string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.Locale = i18n.Normalize(locale)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// verifyCode 校验并消费验证码。
// 超过尝试上限的记录被锁定且不会被消费；验证码错误只在存在未消费记录时累计次数；
// 消费通过条件更新完成，并发竞争失败视为验证码已失效。
func (s *UserAuthService) verifyCode(email, purpose, code string) (*models.EmailVerifyCode, error) {
	record, err := s.codeRepo.GetLatest(email, purpose)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrVerifyCodeInvalid
	}
	if record.VerifiedAt != nil {
		return nil, ErrVerifyCodeInvalid
	}

	now := time.Now()
	if record.ExpiresAt.Before(now) {
		return nil, ErrVerifyCodeExpired
	}

	maxAttempts := resolveMaxAttempts(s.cfg.Email.VerifyCode)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return nil, ErrVerifyCodeAttemptsExceeded
	}

	// 验证码按原样比较，不做任何归一化
	if record.Code != code {
		_ = s.codeRepo.IncrementAttempt(record.ID)
		return nil, ErrVerifyCodeInvalid
	}

	consumed, err := s.codeRepo.Consume(record.ID, now)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrVerifyCodeInvalid
	}
	return record, nil
}

// issueVerifyCode 签发验证码：作废旧记录与落库在同一事务内完成，
// 邮件投递在事务之后进行，投递失败不回滚验证码。
func (s *UserAuthService) issueVerifyCode(email, purpose, locale string) error {
	latest, err := s.codeRepo.GetLatest(email, purpose)
	if err != nil {
		return err
	}
	now := time.Now()
	if latest != nil {
		interval := time.Duration(resolveSendIntervalSeconds(s.cfg.Email.VerifyCode)) * time.Second
		if !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < interval {
			return ErrVerifyCodeTooFrequent
		}
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return err
	}

	record := &models.EmailVerifyCode{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := s.codeRepo.WithTx(tx)
		if err := txRepo.InvalidatePending(email, purpose); err != nil {
			return err
		}
		return txRepo.Create(record)
	})
	if err != nil {
		return err
	}

	return s.deliverVerifyCode(email, code, purpose, locale)
}

// deliverVerifyCode 投递验证码邮件。队列可用时异步投递；
// 同步投递失败只记录日志，验证码保持有效。
func (s *UserAuthService) deliverVerifyCode(email, code, purpose, locale string) error {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueVerifyCodeEmail(queue.VerifyCodeEmailPayload{
			Email:   email,
			Code:    code,
			Purpose: purpose,
			Locale:  locale,
		})
		if err != nil {
			logger.Warnw("verify_code_enqueue_failed", "email", email, "purpose", purpose, "error", err)
		} else {
			return nil
		}
	}

	if s.emailService == nil {
		logger.Warnw("verify_code_delivery_skipped", "email", email, "purpose", purpose, "reason", "email_service_missing")
		return nil
	}
	if err := s.emailService.SendVerifyCode(email, code, purpose, locale); err != nil {
		logger.Warnw("verify_code_delivery_failed", "email", email, "purpose", purpose, "error", err)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func isVerifyPurposeSupported(purpose string) bool {
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case constants.VerifyPurposeRegister, constants.VerifyPurposeLogin:
		return true
	default:
		return false
	}
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 168
	}
	return cfg.ExpireHours
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveSendIntervalSeconds(cfg config.VerifyCodeConfig) int {
	if cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return cfg.SendIntervalSeconds
}

func resolveMaxAttempts(cfg config.VerifyCodeConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

// randomNumericCode 生成指定长度的数字验证码，取值均匀分布在 [10^(n-1), 10^n-1]。
func randomNumericCode(length int) (string, error) {
	lower := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(lower, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, lower).String(), nil
}
