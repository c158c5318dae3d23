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

func setupLikeServiceTest(t *testing.T) (*LikeService, *models.Post, *models.Reply) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Reply{}, &models.Like{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	post := &models.Post{UserID: 1, Category: constants.PostCategoryChisme, Content: "hilo para likes"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	reply := &models.Reply{PostID: post.ID, UserID: 2, Content: "respuesta para likes"}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	svc := NewLikeService(
		repository.NewPostRepository(db),
		repository.NewReplyRepository(db),
		repository.NewLikeRepository(db),
	)
	return svc, post, reply
}

func TestLikeToggleOnPost(t *testing.T) {
	svc, post, _ := setupLikeServiceTest(t)

	result, err := svc.Toggle(3, constants.LikeTargetPost, post.ID)
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !result.Liked || result.LikesCount != 1 {
		t.Fatalf("toggle on want liked=true count=1 got %+v", result)
	}

	liked, err := svc.HasLiked(3, constants.LikeTargetPost, post.ID)
	if err != nil || !liked {
		t.Fatalf("has liked want true got %v err %v", liked, err)
	}

	result, err = svc.Toggle(3, constants.LikeTargetPost, post.ID)
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if result.Liked || result.LikesCount != 0 {
		t.Fatalf("toggle off want liked=false count=0 got %+v", result)
	}
}

func TestLikeToggleOnReply(t *testing.T) {
	svc, _, reply := setupLikeServiceTest(t)

	result, err := svc.Toggle(3, constants.LikeTargetReply, reply.ID)
	if err != nil {
		t.Fatalf("toggle on reply failed: %v", err)
	}
	if !result.Liked || result.LikesCount != 1 {
		t.Fatalf("toggle on reply want liked=true count=1 got %+v", result)
	}

	// 另一个用户的赞独立计数
	result, err = svc.Toggle(4, constants.LikeTargetReply, reply.ID)
	if err != nil {
		t.Fatalf("second user toggle failed: %v", err)
	}
	if !result.Liked || result.LikesCount != 2 {
		t.Fatalf("second user want count=2 got %+v", result)
	}
}

func TestLikeToggleValidation(t *testing.T) {
	svc, post, _ := setupLikeServiceTest(t)

	if _, err := svc.Toggle(3, "comment", post.ID); !errors.Is(err, ErrLikeTargetInvalid) {
		t.Fatalf("unknown target type want ErrLikeTargetInvalid got %v", err)
	}
	if _, err := svc.Toggle(3, constants.LikeTargetPost, 9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing post want ErrPostNotFound got %v", err)
	}
	if _, err := svc.Toggle(3, constants.LikeTargetReply, 9999); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("missing reply want ErrReplyNotFound got %v", err)
	}
}

func TestLikeToggleRoundTripKeepsCounterAligned(t *testing.T) {
	svc, post, _ := setupLikeServiceTest(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Toggle(5, constants.LikeTargetPost, post.ID); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}

	// 第四次切换回到未点赞，计数归零
	result, err := svc.Toggle(5, constants.LikeTargetPost, post.ID)
	if err != nil {
		t.Fatalf("final toggle failed: %v", err)
	}
	if result.Liked || result.LikesCount != 0 {
		t.Fatalf("after even toggles want liked=false count=0 got %+v", result)
	}
}
