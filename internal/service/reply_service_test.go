package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReplyServiceTest(t *testing.T) (*ReplyService, *repository.GormPostRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Reply{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	postRepo := repository.NewPostRepository(db)
	return NewReplyService(postRepo, repository.NewReplyRepository(db)), postRepo
}

func createReplyServicePost(t *testing.T, postRepo *repository.GormPostRepository) *models.Post {
	t.Helper()
	post := &models.Post{UserID: 1, Category: constants.PostCategoryChisme, Content: "hilo para respuestas"}
	if err := postRepo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func postRepliesCount(t *testing.T, postRepo *repository.GormPostRepository, postID uint) int64 {
	t.Helper()
	post, err := postRepo.GetByID(postID)
	if err != nil || post == nil {
		t.Fatalf("reload post failed: %v", err)
	}
	return post.RepliesCount
}

func TestReplyCreateValidation(t *testing.T) {
	svc, postRepo := setupReplyServiceTest(t)
	post := createReplyServicePost(t, postRepo)

	if _, err := svc.Create(2, post.ID, nil, "eh"); !errors.Is(err, ErrReplyContentLength) {
		t.Fatalf("short content want ErrReplyContentLength got %v", err)
	}
	if _, err := svc.Create(2, post.ID, nil, strings.Repeat("a", constants.ReplyContentMaxLen+1)); !errors.Is(err, ErrReplyContentLength) {
		t.Fatalf("long content want ErrReplyContentLength got %v", err)
	}
	if _, err := svc.Create(2, 9999, nil, "respuesta a hilo inexistente"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("unknown post want ErrPostNotFound got %v", err)
	}
}

func TestReplyCreateIncrementsPostCounter(t *testing.T) {
	svc, postRepo := setupReplyServiceTest(t)
	post := createReplyServicePost(t, postRepo)

	first, err := svc.Create(2, post.ID, nil, "primera respuesta")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if _, err := svc.Create(3, post.ID, nil, "segunda respuesta"); err != nil {
		t.Fatalf("create second reply failed: %v", err)
	}

	if got := postRepliesCount(t, postRepo, post.ID); got != 2 {
		t.Fatalf("replies count want 2 got %d", got)
	}

	// 楼中楼：父回复必须属于同一帖子
	nested, err := svc.Create(4, post.ID, &first.ID, "respuesta anidada")
	if err != nil {
		t.Fatalf("create nested reply failed: %v", err)
	}
	if nested.ParentReplyID == nil || *nested.ParentReplyID != first.ID {
		t.Fatalf("nested reply should keep parent id")
	}
}

func TestReplyCreateRejectsForeignParent(t *testing.T) {
	svc, postRepo := setupReplyServiceTest(t)
	post := createReplyServicePost(t, postRepo)
	other := createReplyServicePost(t, postRepo)

	parent, err := svc.Create(2, other.ID, nil, "respuesta en otro hilo")
	if err != nil {
		t.Fatalf("create parent reply failed: %v", err)
	}

	if _, err := svc.Create(3, post.ID, &parent.ID, "anidada en hilo equivocado"); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("foreign parent want ErrReplyNotFound got %v", err)
	}

	missing := uint(9999)
	if _, err := svc.Create(3, post.ID, &missing, "anidada sin padre"); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("missing parent want ErrReplyNotFound got %v", err)
	}
}

func TestReplyDeletePermissionsAndCounter(t *testing.T) {
	svc, postRepo := setupReplyServiceTest(t)
	post := createReplyServicePost(t, postRepo)

	reply, err := svc.Create(2, post.ID, nil, "respuesta a borrar")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	if err := svc.Delete(reply.ID, 3, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non owner delete want ErrForbidden got %v", err)
	}
	if err := svc.Delete(reply.ID, 2, false); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if got := postRepliesCount(t, postRepo, post.ID); got != 0 {
		t.Fatalf("replies count after delete want 0 got %d", got)
	}

	// 已删除的回复再删报 not found，计数不再变动
	if err := svc.Delete(reply.ID, 2, false); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("delete twice want ErrReplyNotFound got %v", err)
	}
	if got := postRepliesCount(t, postRepo, post.ID); got != 0 {
		t.Fatalf("replies count should stay 0, got %d", got)
	}
}

func TestReplyRestoreReaddsCounter(t *testing.T) {
	svc, postRepo := setupReplyServiceTest(t)
	post := createReplyServicePost(t, postRepo)

	reply, err := svc.Create(2, post.ID, nil, "respuesta restaurable")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if err := svc.Delete(reply.ID, 99, true); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}

	if err := svc.Restore(reply.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := postRepliesCount(t, postRepo, post.ID); got != 1 {
		t.Fatalf("replies count after restore want 1 got %d", got)
	}

	// 幂等：重复恢复不再加计数
	if err := svc.Restore(reply.ID); err != nil {
		t.Fatalf("second restore failed: %v", err)
	}
	if got := postRepliesCount(t, postRepo, post.ID); got != 1 {
		t.Fatalf("replies count should stay 1, got %d", got)
	}

	if err := svc.Restore(9999); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("restore unknown reply want ErrReplyNotFound got %v", err)
	}
}
