package service

import (
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// DepartmentService 院系管理服务
type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
}

// NewDepartmentService 创建院系管理服务
func NewDepartmentService(departmentRepo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// DepartmentInput 院系创建/更新请求
type DepartmentInput struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ListAll 全部院系
func (s *DepartmentService) ListAll() ([]models.Department, error) {
	return s.departmentRepo.ListAll()
}

// Get 院系详情
func (s *DepartmentService) Get(id uint) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrNotFound
	}
	return department, nil
}

// Create 创建院系
func (s *DepartmentService) Create(input DepartmentInput) (*models.Department, error) {
	department := &models.Department{Name: input.Name, Code: input.Code, Description: input.Description}
	if err := s.departmentRepo.Create(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Update 更新院系
func (s *DepartmentService) Update(id uint, input DepartmentInput) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrNotFound
	}
	department.Name = input.Name
	department.Code = input.Code
	department.Description = input.Description
	if err := s.departmentRepo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete 删除院系。名下还有班级时拒绝。
func (s *DepartmentService) Delete(id uint) error {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrNotFound
	}
	count, err := s.departmentRepo.ClazzCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentNotEmpty
	}
	return s.departmentRepo.Delete(id)
}
