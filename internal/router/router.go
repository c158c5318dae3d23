package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marron-next/internal/authz"
	"github.com/marron-next/internal/cache"
	"github.com/marron-next/internal/config"
	"github.com/marron-next/internal/constants"
	adminhandlers "github.com/marron-next/internal/http/handlers/admin"
	publichandlers "github.com/marron-next/internal/http/handlers/public"
	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	authRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:auth", redisPrefix),
		WindowSeconds: cfg.Security.AuthRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AuthRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.AuthRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.AuthRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AuthRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.AuthRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", redisPrefix),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	writeLimit := RateLimitMiddleware(redisClient, writeRule, KeyByUserID)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/posts", publicHandler.ListPosts)
			public.GET("/posts/:id", publicHandler.GetPost)
			public.GET("/posts/:id/replies", publicHandler.ListReplies)
			public.GET("/stats", publicHandler.GetStats)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 邮箱验证码认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/request-code", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.RequestVerifyCode)
			auth.POST("/verify-register", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.VerifyRegister)
			auth.POST("/verify-login", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.VerifyLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/locale", publicHandler.UpdateUserLocale)
			user.GET("/me/login-logs", publicHandler.GetMyLoginLogs)
			user.GET("/me/posts", publicHandler.ListMyPosts)
			user.POST("/posts", writeLimit, publicHandler.CreatePost)
			user.DELETE("/posts/:id", publicHandler.DeletePost)
			user.POST("/posts/:id/replies", writeLimit, publicHandler.CreateReply)
			user.DELETE("/replies/:id", publicHandler.DeleteReply)
			user.POST("/likes", writeLimit, publicHandler.ToggleLike)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.POST("/users/batch-status", adminHandler.BatchUpdateUserStatus)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PATCH("/users/:id", adminHandler.UpdateAdminUser)
				authorized.POST("/users/:id/ban", adminHandler.BanAdminUser)
				authorized.POST("/users/:id/unban", adminHandler.UnbanAdminUser)
				authorized.GET("/user-login-logs", adminHandler.GetUserLoginLogs)

				// 内容审核
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.DELETE("/posts/:id", adminHandler.DeleteAdminPost)
				authorized.POST("/posts/:id/restore", adminHandler.RestoreAdminPost)
				authorized.GET("/replies", adminHandler.GetAdminReplies)
				authorized.DELETE("/replies/:id", adminHandler.DeleteAdminReply)
				authorized.POST("/replies/:id/restore", adminHandler.RestoreAdminReply)

				// 统计与计数对账
				authorized.GET("/stats", adminHandler.GetAdminStats)
				authorized.POST("/counters/reconcile", adminHandler.ReconcileCounters)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
