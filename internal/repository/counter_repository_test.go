package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCounterRepositoryTest(t *testing.T) (*GormCounterRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Reply{}, &models.Like{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewCounterRepository(db), db
}

func TestReconcilePostRepliesCount(t *testing.T) {
	repo, db := setupCounterRepositoryTest(t)

	post := &models.Post{UserID: 1, Category: constants.PostCategoryChisme, Content: "deriva de contadores"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		reply := &models.Reply{PostID: post.ID, UserID: 2, Content: fmt.Sprintf("respuesta %d", i)}
		if err := db.Create(reply).Error; err != nil {
			t.Fatalf("create reply failed: %v", err)
		}
	}
	// 软删除的回复不计入
	deleted := &models.Reply{PostID: post.ID, UserID: 2, Content: "respuesta borrada"}
	if err := db.Create(deleted).Error; err != nil {
		t.Fatalf("create deleted reply failed: %v", err)
	}
	if err := db.Delete(deleted).Error; err != nil {
		t.Fatalf("soft delete reply failed: %v", err)
	}

	fixed, err := repo.ReconcilePostRepliesCount()
	if err != nil {
		t.Fatalf("reconcile replies failed: %v", err)
	}
	if fixed != 1 {
		t.Fatalf("reconcile want 1 fixed row got %d", fixed)
	}

	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.RepliesCount != 2 {
		t.Fatalf("replies count want 2 got %d", reloaded.RepliesCount)
	}

	// 已对齐的行不再被改写
	fixed, err = repo.ReconcilePostRepliesCount()
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if fixed != 0 {
		t.Fatalf("second reconcile should fix nothing, got %d", fixed)
	}
}

func TestReconcileLikesCounts(t *testing.T) {
	repo, db := setupCounterRepositoryTest(t)

	post := &models.Post{UserID: 1, Category: constants.PostCategoryHumor, Content: "con likes desalineados"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	reply := &models.Reply{PostID: post.ID, UserID: 2, Content: "respuesta con likes"}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	likes := []models.Like{
		{UserID: 1, TargetType: constants.LikeTargetPost, TargetID: post.ID},
		{UserID: 2, TargetType: constants.LikeTargetPost, TargetID: post.ID},
		{UserID: 1, TargetType: constants.LikeTargetReply, TargetID: reply.ID},
	}
	for i := range likes {
		if err := db.Create(&likes[i]).Error; err != nil {
			t.Fatalf("create like failed: %v", err)
		}
	}

	fixed, err := repo.ReconcilePostLikesCount()
	if err != nil || fixed != 1 {
		t.Fatalf("reconcile post likes want 1 got %d err %v", fixed, err)
	}
	fixed, err = repo.ReconcileReplyLikesCount()
	if err != nil || fixed != 1 {
		t.Fatalf("reconcile reply likes want 1 got %d err %v", fixed, err)
	}

	var reloadedPost models.Post
	if err := db.First(&reloadedPost, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	var reloadedReply models.Reply
	if err := db.First(&reloadedReply, reply.ID).Error; err != nil {
		t.Fatalf("reload reply failed: %v", err)
	}
	if reloadedPost.LikesCount != 2 || reloadedReply.LikesCount != 1 {
		t.Fatalf("likes counts want 2,1 got %d,%d", reloadedPost.LikesCount, reloadedReply.LikesCount)
	}
}
