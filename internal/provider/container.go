package provider

import (
	"github.com/marron-next/internal/authz"
	"github.com/marron-next/internal/cache"
	"github.com/marron-next/internal/config"
	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/queue"
	"github.com/marron-next/internal/repository"
	"github.com/marron-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo           repository.AdminRepository
	UserRepo            repository.UserRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	PostRepo            repository.PostRepository
	ReplyRepo           repository.ReplyRepository
	LikeRepo            repository.LikeRepository
	StatsRepo           repository.StatsRepository
	CounterRepo         repository.CounterRepository
	UserLoginLogRepo    repository.UserLoginLogRepository
	AuthzAuditLogRepo   repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	PostService         *service.PostService
	ReplyService        *service.ReplyService
	LikeService         *service.LikeService
	StatsService        *service.StatsService
	CounterService      *service.CounterService
	UserLoginLogService *service.UserLoginLogService
	AuthzAuditService   *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.ReplyRepo = repository.NewReplyRepository(db)
	c.LikeRepo = repository.NewLikeRepository(db)
	c.StatsRepo = repository.NewStatsRepository(db)
	c.CounterRepo = repository.NewCounterRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.EmailVerifyCodeRepo, c.EmailService, c.QueueClient)
	c.PostService = service.NewPostService(c.PostRepo, c.ReplyRepo)
	c.ReplyService = service.NewReplyService(c.PostRepo, c.ReplyRepo)
	c.LikeService = service.NewLikeService(c.PostRepo, c.ReplyRepo, c.LikeRepo)
	c.StatsService = service.NewStatsService(c.StatsRepo)
	c.CounterService = service.NewCounterService(c.CounterRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
