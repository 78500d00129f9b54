package service

import (
	"context"
	"time"

	"github.com/sms-next/internal/authz"
	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// UserService 用户管理服务
type UserService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	authz    *authz.Service
}

// NewUserService 创建用户管理服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository, roleRepo repository.RoleRepository, authzSvc *authz.Service) *UserService {
	return &UserService{
		cfg:      cfg,
		userRepo: userRepo,
		roleRepo: roleRepo,
		authz:    authzSvc,
	}
}

// UserCreateInput 创建用户请求
type UserCreateInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   *int   `json:"status"`
	RoleIDs  []uint `json:"role_ids"`
}

// UserUpdateInput 更新用户请求
type UserUpdateInput struct {
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Status   *int    `json:"status"`
	RoleIDs  []uint  `json:"role_ids"`
}

// List 用户分页列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 取用户详情（含角色与菜单）
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithRoles(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create 创建用户
func (s *UserService) Create(input UserCreateInput) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = input.Username
	}
	now := time.Now()
	expireAt := now.AddDate(0, 0, s.cfg.Security.PasswordPolicy.ExpireDays)
	user := &models.User{
		Username:           input.Username,
		Password:           hashed,
		Nickname:           nickname,
		Email:              input.Email,
		Phone:              input.Phone,
		Status:             constants.UserStatusNormal,
		PasswordUpdateTime: &now,
		PasswordExpireTime: &expireAt,
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if len(input.RoleIDs) > 0 {
		if err := s.assignRoles(user, input.RoleIDs); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Update 更新用户资料与角色
func (s *UserService) Update(id uint, input UserUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithRoles(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Status != nil {
		user.Status = *input.Status
		if *input.Status == constants.UserStatusNormal {
			user.LoginFailCount = 0
			user.LockTime = nil
		}
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if input.RoleIDs != nil {
		if err := s.assignRoles(user, input.RoleIDs); err != nil {
			return nil, err
		}
	}

	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return user, nil
}

// AssignRoles 覆盖设置用户角色
func (s *UserService) AssignRoles(id uint, roleIDs []uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.assignRoles(user, roleIDs); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return nil
}

// assignRoles 同步角色关联表与授权策略
func (s *UserService) assignRoles(user *models.User, roleIDs []uint) error {
	roles, err := s.roleRepo.ListByIDs(roleIDs)
	if err != nil {
		return err
	}
	if err := s.userRepo.ReplaceRoles(user, roles); err != nil {
		return err
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	if err := s.authz.SetUserRoles(user.ID, names); err != nil {
		logger.Errorw("authz_sync_failed", "user_id", user.ID, "error", err)
		return err
	}
	user.Roles = roles
	return nil
}

// ResetPassword 管理员重置用户密码
func (s *UserService) ResetPassword(id uint, newPassword string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	expireAt := now.AddDate(0, 0, s.cfg.Security.PasswordPolicy.ExpireDays)
	user.Password = hashed
	user.PasswordUpdateTime = &now
	user.PasswordExpireTime = &expireAt
	user.LoginFailCount = 0
	user.LockTime = nil
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return nil
}

// Delete 删除用户并清理授权关联
func (s *UserService) Delete(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	if err := s.authz.RemoveUser(id); err != nil {
		logger.Warnw("authz_cleanup_failed", "user_id", id, "error", err)
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return nil
}
