package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCounterServiceTest(t *testing.T) (*CounterService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Reply{}, &models.Like{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewCounterService(repository.NewCounterRepository(db)), db
}

func TestCounterReconcileFixesDrift(t *testing.T) {
	svc, db := setupCounterServiceTest(t)

	// 计数列与事实行故意错开
	post := &models.Post{UserID: 1, Category: constants.PostCategoryChisme, Content: "hilo con deriva", RepliesCount: 9, LikesCount: 9}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	reply := &models.Reply{PostID: post.ID, UserID: 2, Content: "única respuesta", LikesCount: 9}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	like := &models.Like{UserID: 2, TargetType: constants.LikeTargetPost, TargetID: post.ID}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("create like failed: %v", err)
	}

	result, err := svc.Reconcile()
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.PostRepliesFixed != 1 || result.PostLikesFixed != 1 || result.ReplyLikesFixed != 1 {
		t.Fatalf("reconcile result unexpected: %+v", result)
	}

	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.RepliesCount != 1 || reloaded.LikesCount != 1 {
		t.Fatalf("post counters want 1,1 got %d,%d", reloaded.RepliesCount, reloaded.LikesCount)
	}

	// 幂等：第二轮全部为零
	result, err = svc.Reconcile()
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if result.PostRepliesFixed != 0 || result.PostLikesFixed != 0 || result.ReplyLikesFixed != 0 {
		t.Fatalf("second reconcile should fix nothing: %+v", result)
	}
}

func TestCounterReconcileEmptyDatabase(t *testing.T) {
	svc, _ := setupCounterServiceTest(t)

	result, err := svc.Reconcile()
	if err != nil {
		t.Fatalf("reconcile on empty db failed: %v", err)
	}
	if result.PostRepliesFixed != 0 || result.PostLikesFixed != 0 || result.ReplyLikesFixed != 0 {
		t.Fatalf("empty db should fix nothing: %+v", result)
	}
}
