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

func setupUserLoginLogServiceTest(t *testing.T) (*UserLoginLogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.UserLoginLog{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewUserLoginLogService(repository.NewUserLoginLogRepository(db)), db
}

func TestLoginLogRecordNormalizesFields(t *testing.T) {
	svc, db := setupUserLoginLogServiceTest(t)

	err := svc.Record(RecordUserLoginInput{
		UserID:   7,
		Email:    "  Correo@Example.COM ",
		Status:   " SUCCESS ",
		ClientIP: " 10.0.0.1 ",
	})
	if err != nil {
		t.Fatalf("record success failed: %v", err)
	}

	var entry models.UserLoginLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load log failed: %v", err)
	}
	if entry.Email != "correo@example.com" {
		t.Fatalf("email should be normalized, got %q", entry.Email)
	}
	if entry.Status != constants.LoginLogStatusSuccess || entry.FailReason != "" {
		t.Fatalf("success entry should clear fail reason: %+v", entry)
	}
	if entry.ClientIP != "10.0.0.1" || entry.LoginSource != constants.LoginLogSourceWeb {
		t.Fatalf("fields should be trimmed and defaulted: %+v", entry)
	}
}

func TestLoginLogRecordFailureDefaults(t *testing.T) {
	svc, db := setupUserLoginLogServiceTest(t)

	err := svc.Record(RecordUserLoginInput{
		Email:  "fallo@example.com",
		Status: "weird",
	})
	if err != nil {
		t.Fatalf("record failure failed: %v", err)
	}

	var entry models.UserLoginLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load log failed: %v", err)
	}
	if entry.Status != constants.LoginLogStatusFailed {
		t.Fatalf("unknown status should become failed, got %q", entry.Status)
	}
	if entry.FailReason != constants.LoginLogFailReasonInternalError {
		t.Fatalf("missing fail reason should default, got %q", entry.FailReason)
	}
}

func TestLoginLogListByUserPagination(t *testing.T) {
	svc, _ := setupUserLoginLogServiceTest(t)

	for i := 0; i < 5; i++ {
		err := svc.Record(RecordUserLoginInput{
			UserID: 7,
			Email:  "paginado@example.com",
			Status: constants.LoginLogStatusSuccess,
		})
		if err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}
	if err := svc.Record(RecordUserLoginInput{UserID: 8, Email: "otro@example.com", Status: constants.LoginLogStatusSuccess}); err != nil {
		t.Fatalf("record other user failed: %v", err)
	}

	logs, total, err := svc.ListByUser(7, 1, 3)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 5 || len(logs) != 3 {
		t.Fatalf("page 1 want total=5 len=3 got total=%d len=%d", total, len(logs))
	}

	logs, _, err = svc.ListByUser(7, 2, 3)
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("page 2 want 2 rows got %d", len(logs))
	}

	// userID 为零直接返回空
	logs, total, err = svc.ListByUser(0, 1, 10)
	if err != nil || total != 0 || len(logs) != 0 {
		t.Fatalf("zero user id should return empty, got total=%d err=%v", total, err)
	}
}

func TestLoginLogListForAdminFilters(t *testing.T) {
	svc, _ := setupUserLoginLogServiceTest(t)

	if err := svc.Record(RecordUserLoginInput{UserID: 1, Email: "uno@example.com", Status: constants.LoginLogStatusSuccess}); err != nil {
		t.Fatalf("record success failed: %v", err)
	}
	if err := svc.Record(RecordUserLoginInput{Email: "uno@example.com", Status: constants.LoginLogStatusFailed, FailReason: constants.LoginLogFailReasonCodeInvalid}); err != nil {
		t.Fatalf("record failure failed: %v", err)
	}

	_, total, err := svc.ListForAdmin(repository.UserLoginLogListFilter{Status: constants.LoginLogStatusFailed, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list for admin failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("failed filter want 1 got %d", total)
	}

	_, total, err = svc.ListForAdmin(repository.UserLoginLogListFilter{FailReason: constants.LoginLogFailReasonCodeInvalid, Page: 1, PageSize: 10})
	if err != nil || total != 1 {
		t.Fatalf("fail reason filter want 1 got %d err %v", total, err)
	}
}
