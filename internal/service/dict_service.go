package service

import (
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// DictService 数据字典服务
type DictService struct {
	dictRepo repository.DictRepository
}

// NewDictService 创建数据字典服务
func NewDictService(dictRepo repository.DictRepository) *DictService {
	return &DictService{dictRepo: dictRepo}
}

// DictTypeInput 字典类型请求
type DictTypeInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// DictDataInput 字典数据请求
type DictDataInput struct {
	TypeCode string `json:"type_code" binding:"required"`
	Label    string `json:"label" binding:"required"`
	Value    string `json:"value" binding:"required"`
	Sort     int    `json:"sort"`
}

// ListTypes 全部字典类型
func (s *DictService) ListTypes() ([]models.DictType, error) {
	return s.dictRepo.ListTypes()
}

// CreateType 创建字典类型
func (s *DictService) CreateType(input DictTypeInput) (*models.DictType, error) {
	dictType := &models.DictType{Name: input.Name, Code: input.Code}
	if err := s.dictRepo.CreateType(dictType); err != nil {
		return nil, err
	}
	return dictType, nil
}

// DeleteType 删除字典类型及其数据项
func (s *DictService) DeleteType(id uint) error {
	dictType, err := s.dictRepo.GetTypeByID(id)
	if err != nil {
		return err
	}
	if dictType == nil {
		return ErrNotFound
	}
	return s.dictRepo.DeleteType(id)
}

// ListData 按类型编码取字典数据项
func (s *DictService) ListData(typeCode string) ([]models.DictData, error) {
	return s.dictRepo.ListData(typeCode)
}

// CreateData 创建字典数据项
func (s *DictService) CreateData(input DictDataInput) (*models.DictData, error) {
	data := &models.DictData{
		TypeCode: input.TypeCode,
		Label:    input.Label,
		Value:    input.Value,
		Sort:     input.Sort,
	}
	if err := s.dictRepo.CreateData(data); err != nil {
		return nil, err
	}
	return data, nil
}

// DeleteData 删除字典数据项
func (s *DictService) DeleteData(id uint) error {
	data, err := s.dictRepo.GetDataByID(id)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNotFound
	}
	return s.dictRepo.DeleteData(id)
}
