package service

import (
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// ClazzService 班级管理服务
type ClazzService struct {
	clazzRepo      repository.ClazzRepository
	departmentRepo repository.DepartmentRepository
}

// NewClazzService 创建班级管理服务
func NewClazzService(clazzRepo repository.ClazzRepository, departmentRepo repository.DepartmentRepository) *ClazzService {
	return &ClazzService{clazzRepo: clazzRepo, departmentRepo: departmentRepo}
}

// ClazzInput 班级创建/更新请求
type ClazzInput struct {
	Name         string `json:"name" binding:"required"`
	Grade        string `json:"grade"`
	DepartmentID uint   `json:"department_id"`
}

// List 班级分页列表
func (s *ClazzService) List(filter repository.ClazzListFilter) ([]models.Clazz, int64, error) {
	return s.clazzRepo.List(filter)
}

// ListAll 全部班级（下拉选项用）
func (s *ClazzService) ListAll() ([]models.Clazz, error) {
	return s.clazzRepo.ListAll()
}

// Get 班级详情
func (s *ClazzService) Get(id uint) (*models.Clazz, error) {
	clazz, err := s.clazzRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if clazz == nil {
		return nil, ErrNotFound
	}
	return clazz, nil
}

// Create 创建班级
func (s *ClazzService) Create(input ClazzInput) (*models.Clazz, error) {
	if input.DepartmentID != 0 {
		department, err := s.departmentRepo.GetByID(input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, ErrNotFound
		}
	}
	clazz := &models.Clazz{
		Name:         input.Name,
		Grade:        input.Grade,
		DepartmentID: input.DepartmentID,
	}
	if err := s.clazzRepo.Create(clazz); err != nil {
		return nil, err
	}
	return clazz, nil
}

// Update 更新班级
func (s *ClazzService) Update(id uint, input ClazzInput) (*models.Clazz, error) {
	clazz, err := s.clazzRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if clazz == nil {
		return nil, ErrNotFound
	}
	clazz.Name = input.Name
	clazz.Grade = input.Grade
	clazz.DepartmentID = input.DepartmentID
	if err := s.clazzRepo.Update(clazz); err != nil {
		return nil, err
	}
	return clazz, nil
}

// Delete 删除班级。班里还有学生时拒绝。
func (s *ClazzService) Delete(id uint) error {
	clazz, err := s.clazzRepo.GetByID(id)
	if err != nil {
		return err
	}
	if clazz == nil {
		return ErrNotFound
	}
	count, err := s.clazzRepo.StudentCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrClazzNotEmpty
	}
	return s.clazzRepo.Delete(id)
}
