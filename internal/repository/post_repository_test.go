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

func setupPostRepositoryTest(t *testing.T) (*GormPostRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Reply{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewPostRepository(db), db
}

func createTestPost(t *testing.T, repo *GormPostRepository, userID uint, category string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   userID,
		Category: category,
		Content:  "contenido de prueba con longitud suficiente",
	}
	if err := repo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func TestPostSoftDeleteAndRestore(t *testing.T) {
	repo, _ := setupPostRepositoryTest(t)

	post := createTestPost(t, repo, 1, constants.PostCategoryChisme)

	deleted, err := repo.SoftDelete(post.ID)
	if err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete transition on first call")
	}

	// 第二次删除不再命中行
	deleted, err = repo.SoftDelete(post.ID)
	if err != nil {
		t.Fatalf("second soft delete failed: %v", err)
	}
	if deleted {
		t.Fatalf("second delete should be a no-op")
	}

	if found, err := repo.GetByID(post.ID); err != nil || found != nil {
		t.Fatalf("deleted post should be invisible, got %+v err %v", found, err)
	}
	unscoped, err := repo.GetByIDUnscoped(post.ID)
	if err != nil || unscoped == nil {
		t.Fatalf("unscoped lookup failed: %v", err)
	}

	restored, err := repo.Restore(post.ID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !restored {
		t.Fatalf("expected restore transition")
	}
	restored, err = repo.Restore(post.ID)
	if err != nil {
		t.Fatalf("second restore failed: %v", err)
	}
	if restored {
		t.Fatalf("second restore should be a no-op")
	}

	if found, err := repo.GetByID(post.ID); err != nil || found == nil {
		t.Fatalf("restored post should be visible, err %v", err)
	}
}

func TestPostCounterColumns(t *testing.T) {
	repo, _ := setupPostRepositoryTest(t)

	post := createTestPost(t, repo, 1, constants.PostCategoryQueja)
	if err := repo.AddRepliesCount(post.ID, 2); err != nil {
		t.Fatalf("add replies count failed: %v", err)
	}
	if err := repo.AddRepliesCount(post.ID, -1); err != nil {
		t.Fatalf("sub replies count failed: %v", err)
	}
	if err := repo.AddLikesCount(post.ID, 1); err != nil {
		t.Fatalf("add likes count failed: %v", err)
	}

	reloaded, err := repo.GetByID(post.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.RepliesCount != 1 || reloaded.LikesCount != 1 {
		t.Fatalf("counters want 1,1 got %d,%d", reloaded.RepliesCount, reloaded.LikesCount)
	}
}

func TestPostListFilters(t *testing.T) {
	repo, _ := setupPostRepositoryTest(t)

	chisme := createTestPost(t, repo, 1, constants.PostCategoryChisme)
	createTestPost(t, repo, 2, constants.PostCategoryHumor)
	deletedPost := createTestPost(t, repo, 1, constants.PostCategoryChisme)
	if _, err := repo.SoftDelete(deletedPost.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	posts, total, err := repo.List(PostListFilter{Category: constants.PostCategoryChisme, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].ID != chisme.ID {
		t.Fatalf("category filter should exclude deleted rows, total=%d", total)
	}

	posts, total, err = repo.List(PostListFilter{Category: constants.PostCategoryChisme, IncludeDeleted: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list including deleted failed: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Fatalf("include deleted want 2 rows got total=%d len=%d", total, len(posts))
	}

	_, total, err = repo.List(PostListFilter{UserID: 2, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("user filter want 1 got %d", total)
	}
}

func TestPostListKeywordSearch(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)

	match := createTestPost(t, repo, 1, constants.PostCategoryChisme)
	if err := db.Model(&models.Post{}).Where("id = ?", match.ID).
		UpdateColumn("content", "la impresora de la tercera planta otra vez").Error; err != nil {
		t.Fatalf("update content failed: %v", err)
	}
	createTestPost(t, repo, 2, constants.PostCategoryHumor)

	posts, total, err := repo.List(PostListFilter{Keyword: "impresora", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("keyword search failed: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].ID != match.ID {
		t.Fatalf("keyword filter want the matching post, total=%d", total)
	}

	// 空白关键字不过滤
	_, total, err = repo.List(PostListFilter{Keyword: "   ", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("blank keyword search failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("blank keyword should not filter, total=%d", total)
	}
}

func TestPostCountByCategory(t *testing.T) {
	repo, _ := setupPostRepositoryTest(t)

	createTestPost(t, repo, 1, constants.PostCategoryChisme)
	createTestPost(t, repo, 1, constants.PostCategoryChisme)
	createTestPost(t, repo, 2, constants.PostCategoryRandom)

	counts, err := repo.CountByCategory()
	if err != nil {
		t.Fatalf("count by category failed: %v", err)
	}
	if counts[constants.PostCategoryChisme] != 2 || counts[constants.PostCategoryRandom] != 1 {
		t.Fatalf("category counts unexpected: %v", counts)
	}
}
