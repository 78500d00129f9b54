package service

import (
	"context"

	"github.com/sms-next/internal/authz"
	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// RoleService 角色管理服务
type RoleService struct {
	roleRepo repository.RoleRepository
	menuRepo repository.MenuRepository
	authz    *authz.Service
}

// NewRoleService 创建角色管理服务
func NewRoleService(roleRepo repository.RoleRepository, menuRepo repository.MenuRepository, authzSvc *authz.Service) *RoleService {
	return &RoleService{roleRepo: roleRepo, menuRepo: menuRepo, authz: authzSvc}
}

// RoleInput 角色创建/更新请求
type RoleInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MenuIDs     []uint `json:"menu_ids"`
}

// ListAll 全部角色
func (s *RoleService) ListAll() ([]models.Role, error) {
	return s.roleRepo.ListAll()
}

// Get 角色详情（含菜单）
func (s *RoleService) Get(id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return role, nil
}

// Create 创建角色
func (s *RoleService) Create(input RoleInput) (*models.Role, error) {
	role := &models.Role{Name: input.Name, Description: input.Description}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, err
	}
	if len(input.MenuIDs) > 0 {
		if err := s.replaceMenus(role, input.MenuIDs); err != nil {
			return nil, err
		}
	}
	return role, nil
}

// Update 更新角色及菜单授权
func (s *RoleService) Update(id uint, input RoleInput) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}

	oldName := role.Name
	role.Name = input.Name
	role.Description = input.Description
	if err := s.roleRepo.Update(role); err != nil {
		return nil, err
	}
	if input.MenuIDs != nil {
		if err := s.replaceMenus(role, input.MenuIDs); err != nil {
			return nil, err
		}
	}

	// 角色改名会影响授权主体与缓存的角色名
	if oldName != role.Name {
		if err := s.authz.DeleteRole(oldName); err != nil {
			return nil, err
		}
		s.invalidateRoleUsers(id)
	}
	return role, nil
}

// Delete 删除角色。仍有用户关联时拒绝。
func (s *RoleService) Delete(id uint) error {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNotFound
	}

	userIDs, err := s.roleRepo.UserIDsWithRole(id)
	if err != nil {
		return err
	}
	if len(userIDs) > 0 {
		return ErrRoleInUse
	}

	if err := s.roleRepo.Delete(id); err != nil {
		return err
	}
	return s.authz.DeleteRole(role.Name)
}

func (s *RoleService) replaceMenus(role *models.Role, menuIDs []uint) error {
	menus, err := s.menuRepo.ListByIDs(menuIDs)
	if err != nil {
		return err
	}
	if err := s.roleRepo.ReplaceMenus(role, menus); err != nil {
		return err
	}
	role.Menus = menus
	return nil
}

// invalidateRoleUsers 清掉该角色全部用户的登录态缓存
func (s *RoleService) invalidateRoleUsers(roleID uint) {
	userIDs, err := s.roleRepo.UserIDsWithRole(roleID)
	if err != nil {
		return
	}
	for _, userID := range userIDs {
		_ = cache.DelUserAuthState(context.Background(), userID)
	}
}
