package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	captcha  *CaptchaService
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, roleRepo repository.RoleRepository, captcha *CaptchaService) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		roleRepo: roleRepo,
		captcha:  captcha,
	}
}

// LoginInput 登录请求
type LoginInput struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	CaptchaID  string `json:"captcha_id"`
	Captcha    string `json:"captcha"`
}

// RegisterInput 注册请求
type RegisterInput struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	CaptchaID       string `json:"captcha_id"`
	Captcha         string `json:"captcha"`
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

func (s *AuthService) lockDuration() time.Duration {
	minutes := s.cfg.Security.LoginLockout.LockDurationMinutes
	if minutes <= 0 {
		minutes = constants.LockDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func (s *AuthService) maxFailCount() int {
	max := s.cfg.Security.LoginLockout.MaxFailCount
	if max <= 0 {
		max = constants.MaxLoginFailCount
	}
	return max
}

// Login 用户登录。
// 连续失败超过阈值后锁定账户，锁定期满由下次登录复位。
func (s *AuthService) Login(input LoginInput) (*models.User, string, time.Time, error) {
	if s.captcha.Enabled() {
		if err := s.captcha.Verify(input.CaptchaID, input.Captcha); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	user, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrUserNotFound
	}

	if user.IsLocked(s.lockDuration()) {
		return nil, "", time.Time{}, ErrAccountLocked
	}
	if user.Status == constants.UserStatusDisabled {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	if err := VerifyPassword(user.Password, input.Password); err != nil {
		user.LoginFailCount++
		if user.LoginFailCount >= s.maxFailCount() {
			now := time.Now()
			user.LockTime = &now
			user.Status = constants.UserStatusLocked
			if updateErr := s.userRepo.Update(user); updateErr != nil {
				return nil, "", time.Time{}, updateErr
			}
			return nil, "", time.Time{}, ErrAccountLocked
		}
		if updateErr := s.userRepo.Update(user); updateErr != nil {
			return nil, "", time.Time{}, updateErr
		}
		return nil, "", time.Time{}, loginFailError{remaining: s.maxFailCount() - user.LoginFailCount}
	}

	// 登录成功，复位失败计数与锁定状态
	user.LoginFailCount = 0
	user.LockTime = nil
	if user.Status == constants.UserStatusLocked {
		user.Status = constants.UserStatusNormal
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	if user.IsPasswordExpired() {
		return nil, "", time.Time{}, ErrPasswordExpired
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// Register 用户注册
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if s.captcha.Enabled() {
		if err := s.captcha.Verify(input.CaptchaID, input.Captcha); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = input.Username
	}

	now := time.Now()
	expire := now.AddDate(0, 0, s.passwordExpireDays())
	user := &models.User{
		Username:           input.Username,
		Password:           hash,
		Nickname:           nickname,
		Email:              input.Email,
		Status:             constants.UserStatusNormal,
		PasswordUpdateTime: &now,
		PasswordExpireTime: &expire,
	}

	studentRole, err := s.roleRepo.GetByName("STUDENT")
	if err != nil {
		return nil, err
	}
	if studentRole != nil {
		user.Roles = []models.Role{*studentRole}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 修改密码，成功后重置密码有效期
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := VerifyPassword(user.Password, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	expire := now.AddDate(0, 0, s.passwordExpireDays())
	user.Password = hash
	user.PasswordUpdateTime = &now
	user.PasswordExpireTime = &expire
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), userID)
	return nil
}

func (s *AuthService) passwordExpireDays() int {
	days := s.cfg.Security.PasswordPolicy.ExpireDays
	if days <= 0 {
		days = constants.PasswordExpireDays
	}
	return days
}

// LoginFailRemaining 登录失败错误附带的剩余尝试次数
func LoginFailRemaining(err error) (int, bool) {
	var failErr loginFailError
	if errors.As(err, &failErr) {
		return failErr.Remaining(), true
	}
	return 0, false
}

// LoginFailMessage 登录失败提示
func LoginFailMessage(remaining int) string {
	return fmt.Sprintf("密码错误，还剩%d次机会", remaining)
}
