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

func setupStatsRepositoryTest(t *testing.T) (*GormStatsRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Sequence{}, &models.Post{}, &models.Reply{}, &models.Like{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewStatsRepository(db), db
}

func createStatsUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	userRepo := NewUserRepository(db)
	number, err := userRepo.NextUserNumber()
	if err != nil {
		t.Fatalf("allocate user number failed: %v", err)
	}
	user := &models.User{
		Email:       email,
		UserNumber:  number,
		DisplayName: fmt.Sprintf("%s %d", constants.DisplayNamePrefix, number),
		Status:      constants.UserStatusActive,
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestStatsGetTotals(t *testing.T) {
	repo, db := setupStatsRepositoryTest(t)

	user := createStatsUser(t, db, "totales@example.com")
	post := &models.Post{UserID: user.ID, Category: constants.PostCategoryChisme, Content: "fila de totales"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	reply := &models.Reply{PostID: post.ID, UserID: user.ID, Content: "respuesta"}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	like := &models.Like{UserID: user.ID, TargetType: constants.LikeTargetPost, TargetID: post.ID}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("create like failed: %v", err)
	}

	totals, err := repo.GetTotals()
	if err != nil {
		t.Fatalf("get totals failed: %v", err)
	}
	if totals.Users != 1 || totals.Posts != 1 || totals.Replies != 1 || totals.Likes != 1 {
		t.Fatalf("totals unexpected: %+v", totals)
	}
}

func TestStatsMostActiveUsers(t *testing.T) {
	repo, db := setupStatsRepositoryTest(t)

	busy := createStatsUser(t, db, "activo@example.com")
	quiet := createStatsUser(t, db, "tranquilo@example.com")

	for i := 0; i < 2; i++ {
		post := &models.Post{UserID: busy.ID, Category: constants.PostCategoryQueja, Content: fmt.Sprintf("queja %d", i)}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}
	post := &models.Post{UserID: quiet.ID, Category: constants.PostCategoryRandom, Content: "aporte puntual"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	reply := &models.Reply{PostID: post.ID, UserID: busy.ID, Content: "y una respuesta"}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	// 已删除的帖子不计入活跃度
	deletedPost := &models.Post{UserID: quiet.ID, Category: constants.PostCategoryRandom, Content: "aporte borrado"}
	if err := db.Create(deletedPost).Error; err != nil {
		t.Fatalf("create deleted post failed: %v", err)
	}
	if err := db.Delete(deletedPost).Error; err != nil {
		t.Fatalf("soft delete post failed: %v", err)
	}

	rows, err := repo.GetMostActiveUsers(10)
	if err != nil {
		t.Fatalf("most active users failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows got %d", len(rows))
	}
	if rows[0].UserID != busy.ID || rows[0].Activity != 3 {
		t.Fatalf("first row want busy user activity 3, got %+v", rows[0])
	}
	if rows[1].UserID != quiet.ID || rows[1].Activity != 1 {
		t.Fatalf("second row want quiet user activity 1, got %+v", rows[1])
	}
}
