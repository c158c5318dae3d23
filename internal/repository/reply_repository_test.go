package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/marron-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReplyRepositoryTest(t *testing.T) (*GormReplyRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Reply{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewReplyRepository(db), db
}

func createTestReply(t *testing.T, repo *GormReplyRepository, postID, userID uint, content string) *models.Reply {
	t.Helper()
	reply := &models.Reply{PostID: postID, UserID: userID, Content: content}
	if err := repo.Create(reply); err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	return reply
}

func TestReplyListByPostOrder(t *testing.T) {
	repo, _ := setupReplyRepositoryTest(t)

	first := createTestReply(t, repo, 1, 10, "primera respuesta")
	second := createTestReply(t, repo, 1, 11, "segunda respuesta")
	createTestReply(t, repo, 2, 10, "otro hilo")

	replies, err := repo.ListByPost(1)
	if err != nil {
		t.Fatalf("list by post failed: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("want 2 replies got %d", len(replies))
	}
	if replies[0].ID != first.ID || replies[1].ID != second.ID {
		t.Fatalf("replies should keep floor order, got %d,%d", replies[0].ID, replies[1].ID)
	}
}

func TestReplySoftDeleteAndRestore(t *testing.T) {
	repo, _ := setupReplyRepositoryTest(t)

	reply := createTestReply(t, repo, 1, 10, "respuesta a borrar")

	deleted, err := repo.SoftDelete(reply.ID)
	if err != nil || !deleted {
		t.Fatalf("soft delete want transition, deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.SoftDelete(reply.ID)
	if err != nil || deleted {
		t.Fatalf("second soft delete should be a no-op, deleted=%v err=%v", deleted, err)
	}

	if found, err := repo.GetByID(reply.ID); err != nil || found != nil {
		t.Fatalf("deleted reply should be invisible, got %+v err %v", found, err)
	}
	if unscoped, err := repo.GetByIDUnscoped(reply.ID); err != nil || unscoped == nil {
		t.Fatalf("unscoped lookup failed: %v", err)
	}

	restored, err := repo.Restore(reply.ID)
	if err != nil || !restored {
		t.Fatalf("restore want transition, restored=%v err=%v", restored, err)
	}
	restored, err = repo.Restore(reply.ID)
	if err != nil || restored {
		t.Fatalf("second restore should be a no-op, restored=%v err=%v", restored, err)
	}
}

func TestReplyListExcludesDeleted(t *testing.T) {
	repo, _ := setupReplyRepositoryTest(t)

	kept := createTestReply(t, repo, 1, 10, "se queda")
	removed := createTestReply(t, repo, 1, 10, "se borra")
	if _, err := repo.SoftDelete(removed.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	replies, total, err := repo.List(ReplyListFilter{PostID: 1, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(replies) != 1 || replies[0].ID != kept.ID {
		t.Fatalf("default list should exclude deleted, total=%d", total)
	}

	_, total, err = repo.List(ReplyListFilter{PostID: 1, IncludeDeleted: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list including deleted failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("include deleted want 2 got %d", total)
	}
}

func TestReplyAddLikesCount(t *testing.T) {
	repo, _ := setupReplyRepositoryTest(t)

	reply := createTestReply(t, repo, 1, 10, "respuesta popular")
	if err := repo.AddLikesCount(reply.ID, 3); err != nil {
		t.Fatalf("add likes count failed: %v", err)
	}
	if err := repo.AddLikesCount(reply.ID, -1); err != nil {
		t.Fatalf("sub likes count failed: %v", err)
	}

	reloaded, err := repo.GetByID(reply.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload reply failed: %v", err)
	}
	if reloaded.LikesCount != 2 {
		t.Fatalf("likes count want 2 got %d", reloaded.LikesCount)
	}
}
