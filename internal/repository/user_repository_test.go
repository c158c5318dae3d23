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

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Sequence{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createTestUser(t *testing.T, repo *GormUserRepository, email string) *models.User {
	t.Helper()
	number, err := repo.NextUserNumber()
	if err != nil {
		t.Fatalf("allocate user number failed: %v", err)
	}
	user := &models.User{
		Email:       email,
		UserNumber:  number,
		DisplayName: fmt.Sprintf("%s %d", constants.DisplayNamePrefix, number),
		Status:      constants.UserStatusActive,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestNextUserNumberSequential(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	for want := uint64(1); want <= 3; want++ {
		got, err := repo.NextUserNumber()
		if err != nil {
			t.Fatalf("allocate number %d failed: %v", want, err)
		}
		if got != want {
			t.Fatalf("user number want %d got %d", want, got)
		}
	}
}

func TestUserGetByEmailMissing(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	user, err := repo.GetByEmail("nadie@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user for unknown email, got %+v", user)
	}
}

func TestUserGetByUserNumber(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	created := createTestUser(t, repo, "uno@example.com")
	found, err := repo.GetByUserNumber(created.UserNumber)
	if err != nil {
		t.Fatalf("get by user number failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("get by user number mismatch: %+v", found)
	}
}

func TestSetBannedRevokesTokens(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	user := createTestUser(t, repo, "banned@example.com")
	if err := repo.SetBanned(user.ID, true); err != nil {
		t.Fatalf("set banned failed: %v", err)
	}

	reloaded, err := repo.GetByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if !reloaded.IsBanned {
		t.Fatalf("expected banned user")
	}
	if reloaded.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before to be set")
	}

	// 解封不再追加吊销
	if err := repo.SetBanned(user.ID, false); err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	unbanned, err := repo.GetByID(user.ID)
	if err != nil || unbanned == nil {
		t.Fatalf("reload user after unban failed: %v", err)
	}
	if unbanned.IsBanned {
		t.Fatalf("expected user to be unbanned")
	}
	if unbanned.TokenVersion != reloaded.TokenVersion {
		t.Fatalf("unban should not bump token version, want %d got %d", reloaded.TokenVersion, unbanned.TokenVersion)
	}
}

func TestBatchUpdateStatusDisabledRevokesTokens(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	first := createTestUser(t, repo, "lote-uno@example.com")
	second := createTestUser(t, repo, "lote-dos@example.com")

	if err := repo.BatchUpdateStatus([]uint{first.ID, second.ID}, constants.UserStatusDisabled); err != nil {
		t.Fatalf("batch update status failed: %v", err)
	}

	for _, id := range []uint{first.ID, second.ID} {
		user, err := repo.GetByID(id)
		if err != nil || user == nil {
			t.Fatalf("reload user %d failed: %v", id, err)
		}
		if user.Status != constants.UserStatusDisabled {
			t.Fatalf("user %d status want disabled got %s", id, user.Status)
		}
		if user.TokenVersion != 1 || user.TokenInvalidBefore == nil {
			t.Fatalf("user %d expected token revocation, version=%d", id, user.TokenVersion)
		}
	}

	// 重新启用不吊销 Token
	if err := repo.BatchUpdateStatus([]uint{first.ID}, constants.UserStatusActive); err != nil {
		t.Fatalf("batch enable failed: %v", err)
	}
	enabled, err := repo.GetByID(first.ID)
	if err != nil || enabled == nil {
		t.Fatalf("reload enabled user failed: %v", err)
	}
	if enabled.Status != constants.UserStatusActive || enabled.TokenVersion != 1 {
		t.Fatalf("enable should keep token version, got status=%s version=%d", enabled.Status, enabled.TokenVersion)
	}
}

func TestUserListFilter(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)

	active := createTestUser(t, repo, "activo@example.com")
	banned := createTestUser(t, repo, "vetado@example.com")
	if err := repo.SetBanned(banned.ID, true); err != nil {
		t.Fatalf("set banned failed: %v", err)
	}

	isBanned := true
	users, total, err := repo.List(UserListFilter{IsBanned: &isBanned, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list banned failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].ID != banned.ID {
		t.Fatalf("banned filter unexpected result: total=%d users=%+v", total, users)
	}

	users, total, err = repo.List(UserListFilter{Email: "activo@example.com", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by email failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].ID != active.ID {
		t.Fatalf("email filter unexpected result: total=%d", total)
	}
}
