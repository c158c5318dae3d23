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

func setupPostServiceTest(t *testing.T) *PostService {
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

	return NewPostService(repository.NewPostRepository(db), repository.NewReplyRepository(db))
}

func TestPostCreateValidation(t *testing.T) {
	svc := setupPostServiceTest(t)

	if _, err := svc.Create(1, "politica", strings.Repeat("a", 20)); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("unknown category want ErrCategoryInvalid got %v", err)
	}
	if _, err := svc.Create(1, constants.PostCategoryChisme, "corto"); !errors.Is(err, ErrPostContentLength) {
		t.Fatalf("short content want ErrPostContentLength got %v", err)
	}
	if _, err := svc.Create(1, constants.PostCategoryChisme, strings.Repeat("a", constants.PostContentMaxLen+1)); !errors.Is(err, ErrPostContentLength) {
		t.Fatalf("long content want ErrPostContentLength got %v", err)
	}

	// 长度按字符数而非字节数计算
	content := strings.Repeat("ñ", constants.PostContentMinLen)
	post, err := svc.Create(1, " Chisme ", content)
	if err != nil {
		t.Fatalf("create with multibyte content failed: %v", err)
	}
	if post.Category != constants.PostCategoryChisme {
		t.Fatalf("category should be normalized, got %q", post.Category)
	}
}

func TestPostDeletePermissions(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(1, constants.PostCategoryQueja, "una queja con contenido válido")
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := svc.Delete(post.ID, 2, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non owner delete want ErrForbidden got %v", err)
	}
	if err := svc.Delete(post.ID, 1, false); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("deleted post want ErrPostNotFound got %v", err)
	}
	if err := svc.Delete(post.ID, 1, false); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("delete twice want ErrPostNotFound got %v", err)
	}
}

func TestPostModeratorDeleteAndRestore(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(5, constants.PostCategoryHumor, "contenido humorístico de prueba")
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := svc.Delete(post.ID, 99, true); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
	if err := svc.Restore(post.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := svc.Get(post.ID); err != nil {
		t.Fatalf("restored post should be visible, got %v", err)
	}
	if err := svc.Restore(9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("restore unknown post want ErrPostNotFound got %v", err)
	}
}

func TestPostListRejectsUnknownCategory(t *testing.T) {
	svc := setupPostServiceTest(t)

	if _, _, err := svc.List(repository.PostListFilter{Category: "deportes"}); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("want ErrCategoryInvalid got %v", err)
	}

	if _, err := svc.Create(1, constants.PostCategoryRandom, "contenido aleatorio suficiente"); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	posts, total, err := svc.List(repository.PostListFilter{Category: "Random", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(posts) != 1 {
		t.Fatalf("list want 1 post got total=%d", total)
	}
}

func TestPostGetWithReplies(t *testing.T) {
	svc := setupPostServiceTest(t)

	post, err := svc.Create(1, constants.PostCategoryConsejo, "pidiendo consejo sobre la oficina")
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	replyRepo := repository.NewReplyRepository(models.DB)
	for i := 0; i < 2; i++ {
		reply := &models.Reply{PostID: post.ID, UserID: 2, Content: fmt.Sprintf("consejo %d", i)}
		if err := replyRepo.Create(reply); err != nil {
			t.Fatalf("create reply failed: %v", err)
		}
	}

	got, replies, err := svc.GetWithReplies(post.ID)
	if err != nil {
		t.Fatalf("get with replies failed: %v", err)
	}
	if got.ID != post.ID || len(replies) != 2 {
		t.Fatalf("want post with 2 replies got %d", len(replies))
	}

	if _, _, err := svc.GetWithReplies(9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("unknown post want ErrPostNotFound got %v", err)
	}
}

func TestIsSupportedCategory(t *testing.T) {
	for _, category := range constants.SupportedPostCategories {
		if !IsSupportedCategory(category) {
			t.Fatalf("category %q should be supported", category)
		}
	}
	if IsSupportedCategory("politica") {
		t.Fatalf("unknown category should not be supported")
	}
}
