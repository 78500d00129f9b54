package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Role{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Security.LoginLockout.MaxFailCount = 3
	cfg.Security.LoginLockout.LockDurationMinutes = 30

	svc := NewAuthService(cfg, repository.NewUserRepository(db), repository.NewRoleRepository(db), nil)
	return svc, db
}

func seedAuthUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := models.User{
		Username: username,
		Password: hash,
		Nickname: username,
		Status:   constants.UserStatusNormal,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestLoginSuccess(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedAuthUser(t, db, "alice", "Secret123")

	user, token, expiresAt, err := svc.Login(LoginInput{Username: "alice", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expires_at should be in the future, got %v", expiresAt)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login time should be recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestLoginWrongPasswordLocksAfterThreshold(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seed := seedAuthUser(t, db, "bob", "Secret123")

	for attempt := 1; attempt <= 2; attempt++ {
		_, _, _, err := svc.Login(LoginInput{Username: "bob", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d want ErrInvalidCredentials got %v", attempt, err)
		}
		remaining, ok := LoginFailRemaining(err)
		if !ok || remaining != 3-attempt {
			t.Fatalf("attempt %d remaining want %d got %d (ok=%v)", attempt, 3-attempt, remaining, ok)
		}
	}

	// 第三次失败触发锁定
	if _, _, _, err := svc.Login(LoginInput{Username: "bob", Password: "wrong"}); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("third failure want ErrAccountLocked got %v", err)
	}

	var user models.User
	if err := db.First(&user, seed.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if user.Status != constants.UserStatusLocked || user.LockTime == nil {
		t.Fatalf("user should be locked: status=%d lock_time=%v", user.Status, user.LockTime)
	}

	// 锁定期内即使密码正确也拒绝
	if _, _, _, err := svc.Login(LoginInput{Username: "bob", Password: "Secret123"}); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("locked account want ErrAccountLocked got %v", err)
	}
}

func TestLoginLockExpiresAndResets(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seed := seedAuthUser(t, db, "carol", "Secret123")

	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.User{}).Where("id = ?", seed.ID).Updates(map[string]interface{}{
		"status":           constants.UserStatusLocked,
		"lock_time":        past,
		"login_fail_count": 3,
	}).Error; err != nil {
		t.Fatalf("lock user failed: %v", err)
	}

	user, _, _, err := svc.Login(LoginInput{Username: "carol", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login after lock expiry failed: %v", err)
	}
	if user.Status != constants.UserStatusNormal || user.LoginFailCount != 0 || user.LockTime != nil {
		t.Fatalf("lock state should be reset: %+v", user)
	}
}

func TestLoginRejectsDisabledAndUnknown(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seed := seedAuthUser(t, db, "dave", "Secret123")
	if err := db.Model(&models.User{}).Where("id = ?", seed.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login(LoginInput{Username: "dave", Password: "Secret123"}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account want ErrAccountDisabled got %v", err)
	}
	if _, _, _, err := svc.Login(LoginInput{Username: "nobody", Password: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user want ErrUserNotFound got %v", err)
	}
}

func TestLoginPasswordExpired(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seed := seedAuthUser(t, db, "erin", "Secret123")
	expired := time.Now().Add(-24 * time.Hour)
	if err := db.Model(&models.User{}).Where("id = ?", seed.ID).
		Update("password_expire_time", expired).Error; err != nil {
		t.Fatalf("expire password failed: %v", err)
	}

	if _, _, _, err := svc.Login(LoginInput{Username: "erin", Password: "Secret123"}); !errors.Is(err, ErrPasswordExpired) {
		t.Fatalf("want ErrPasswordExpired got %v", err)
	}
}

func TestRegister(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Username:        "frank",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Nickname != "frank" {
		t.Fatalf("nickname should default to username, got %s", user.Nickname)
	}
	if user.PasswordExpireTime == nil {
		t.Fatalf("password expire time should be set")
	}

	if _, err := svc.Register(RegisterInput{
		Username:        "frank",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate register want ErrUsernameExists got %v", err)
	}

	if _, err := svc.Register(RegisterInput{
		Username:        "grace",
		Password:        "Secret123",
		ConfirmPassword: "Different",
	}); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("mismatched passwords want ErrPasswordMismatch got %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count want 1 got %d", count)
	}
}

func TestChangePassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seed := seedAuthUser(t, db, "henry", "Secret123")

	if err := svc.ChangePassword(seed.ID, "wrong", "NewSecret456"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(seed.ID, "Secret123", "NewSecret456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login(LoginInput{Username: "henry", Password: "NewSecret456"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestLoginFailMessage(t *testing.T) {
	if got := LoginFailMessage(2); got != "密码错误，还剩2次机会" {
		t.Fatalf("message mismatch: %s", got)
	}
}
