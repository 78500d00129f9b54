package service

import (
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// MenuService 菜单管理服务
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService 创建菜单管理服务
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// MenuInput 菜单创建/更新请求
type MenuInput struct {
	Name     string `json:"name" binding:"required"`
	Path     string `json:"path"`
	Icon     string `json:"icon"`
	ParentID uint   `json:"parent_id"`
	OrderNum int    `json:"order_num"`
}

// Tree 全量菜单树
func (s *MenuService) Tree() ([]*models.Menu, error) {
	menus, err := s.menuRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus), nil
}

// TreeForUser 按用户角色过滤后的菜单树。管理员拿全量。
func (s *MenuService) TreeForUser(user *models.User) ([]*models.Menu, error) {
	if user.IsAdmin() {
		return s.Tree()
	}

	seen := make(map[uint]bool)
	var granted []models.Menu
	for _, role := range user.Roles {
		for _, menu := range role.Menus {
			if seen[menu.ID] {
				continue
			}
			seen[menu.ID] = true
			granted = append(granted, menu)
		}
	}
	return BuildMenuTree(granted), nil
}

// Create 创建菜单
func (s *MenuService) Create(input MenuInput) (*models.Menu, error) {
	menu := &models.Menu{
		Name:     input.Name,
		Path:     input.Path,
		Icon:     input.Icon,
		ParentID: input.ParentID,
		OrderNum: input.OrderNum,
	}
	if err := s.menuRepo.Create(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// Update 更新菜单
func (s *MenuService) Update(id uint, input MenuInput) (*models.Menu, error) {
	menu, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, ErrNotFound
	}
	menu.Name = input.Name
	menu.Path = input.Path
	menu.Icon = input.Icon
	menu.ParentID = input.ParentID
	menu.OrderNum = input.OrderNum
	if err := s.menuRepo.Update(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// Delete 删除菜单。有子菜单时拒绝。
func (s *MenuService) Delete(id uint) error {
	menu, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if menu == nil {
		return ErrNotFound
	}
	hasChildren, err := s.menuRepo.HasChildren(id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrMenuHasChildren
	}
	return s.menuRepo.Delete(id)
}

// BuildMenuTree 按 parent_id 组装菜单树，输入需已按 order_num 排序
func BuildMenuTree(menus []models.Menu) []*models.Menu {
	nodes := make(map[uint]*models.Menu, len(menus))
	for i := range menus {
		menu := menus[i]
		menu.Children = nil
		nodes[menu.ID] = &menu
	}

	var roots []*models.Menu
	for _, menu := range menus {
		node := nodes[menu.ID]
		if parent, ok := nodes[menu.ParentID]; ok && menu.ParentID != menu.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}
