package main

import (
	"fmt"
	"time"

	"github.com/marron-next/internal/config"
	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(models.DB)

	// 演示用户（匿名序号按创建顺序连续分配）
	seedEmails := []string{
		"demo-uno@example.com",
		"demo-dos@example.com",
		"demo-tres@example.com",
	}
	userIDs := make([]uint, 0, len(seedEmails))
	for _, email := range seedEmails {
		existing, err := userRepo.GetByEmail(email)
		if err != nil {
			stdLog.Printf("Failed to look up user %s: %v", email, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("User already exists: %s (number %d)", email, existing.UserNumber)
			userIDs = append(userIDs, existing.ID)
			continue
		}
		now := time.Now()
		user := &models.User{
			Email:           email,
			Locale:          "es-ES",
			Status:          constants.UserStatusActive,
			EmailVerifiedAt: &now,
		}
		number, err := userRepo.NextUserNumber()
		if err != nil {
			stdLog.Printf("Failed to allocate user number for %s: %v", email, err)
			continue
		}
		user.UserNumber = number
		user.DisplayName = fmt.Sprintf("%s %d", constants.DisplayNamePrefix, number)
		if err := userRepo.Create(user); err != nil {
			stdLog.Printf("Failed to create user %s: %v", email, err)
			continue
		}
		stdLog.Printf("Created user: %s as %s", email, user.DisplayName)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) == 0 {
		stdLog.Fatalf("No seed users available, aborting")
	}

	// 演示帖子
	posts := []models.Post{
		{
			UserID:   userIDs[0],
			Category: constants.PostCategoryChisme,
			Content:  "Dicen que el de contabilidad lleva tres semanas 'trabajando desde casa' desde la playa.",
		},
		{
			UserID:   userIDs[len(userIDs)-1],
			Category: constants.PostCategoryQueja,
			Content:  "La máquina de café lleva un mes estropeada y nadie hace nada. Así no se puede trabajar.",
		},
		{
			UserID:   userIDs[0],
			Category: constants.PostCategoryHumor,
			Content:  "Mi jefe ha dicho 'sinergia' cuatro veces en una reunión de diez minutos. Nuevo récord.",
		},
	}

	postIDs := make([]uint, 0, len(posts))
	for i := range posts {
		var existing models.Post
		if err := models.DB.Where("user_id = ? AND content = ?", posts[i].UserID, posts[i].Content).First(&existing).Error; err == nil {
			stdLog.Printf("Post already exists: #%d", existing.ID)
			postIDs = append(postIDs, existing.ID)
			continue
		}
		if err := models.DB.Create(&posts[i]).Error; err != nil {
			stdLog.Printf("Failed to create post: %v", err)
			continue
		}
		stdLog.Printf("Created post #%d (%s)", posts[i].ID, posts[i].Category)
		postIDs = append(postIDs, posts[i].ID)
	}

	// 演示回复与点赞（计数列与事实行一起写入）
	if len(postIDs) > 0 && len(userIDs) > 1 {
		reply := models.Reply{
			PostID:  postIDs[0],
			UserID:  userIDs[1],
			Content: "Lo sabía. Siempre tiene el fondo de pantalla con palmeras en las videollamadas.",
		}
		var existingReply models.Reply
		if err := models.DB.Where("post_id = ? AND user_id = ? AND content = ?", reply.PostID, reply.UserID, reply.Content).First(&existingReply).Error; err != nil {
			if err := models.DB.Create(&reply).Error; err != nil {
				stdLog.Printf("Failed to create reply: %v", err)
			} else {
				models.DB.Model(&models.Post{}).Where("id = ?", reply.PostID).
					UpdateColumn("replies_count", gorm.Expr("replies_count + 1"))
				stdLog.Printf("Created reply #%d", reply.ID)
			}
		}

		like := models.Like{
			UserID:     userIDs[1],
			TargetType: constants.LikeTargetPost,
			TargetID:   postIDs[0],
		}
		var existingLike models.Like
		if err := models.DB.Where("user_id = ? AND target_type = ? AND target_id = ?", like.UserID, like.TargetType, like.TargetID).First(&existingLike).Error; err != nil {
			if err := models.DB.Create(&like).Error; err != nil {
				stdLog.Printf("Failed to create like: %v", err)
			} else {
				models.DB.Model(&models.Post{}).Where("id = ?", like.TargetID).
					UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
				stdLog.Printf("Created like on post #%d", like.TargetID)
			}
		}
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Printf("- %d users\n", len(userIDs))
	fmt.Printf("- %d posts\n", len(postIDs))
	fmt.Println("- 1 reply, 1 like")
}
