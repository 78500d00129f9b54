package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// DictRepository 字典数据访问接口
type DictRepository interface {
	ListTypes() ([]models.DictType, error)
	GetTypeByID(id uint) (*models.DictType, error)
	GetTypeByCode(code string) (*models.DictType, error)
	CreateType(dictType *models.DictType) error
	UpdateType(dictType *models.DictType) error
	DeleteType(id uint) error
	ListData(typeCode string) ([]models.DictData, error)
	GetDataByID(id uint) (*models.DictData, error)
	CreateData(data *models.DictData) error
	UpdateData(data *models.DictData) error
	DeleteData(id uint) error
}

// GormDictRepository GORM 实现
type GormDictRepository struct {
	db *gorm.DB
}

// NewDictRepository 创建字典仓库
func NewDictRepository(db *gorm.DB) *GormDictRepository {
	return &GormDictRepository{db: db}
}

// ListTypes 全部字典类型
func (r *GormDictRepository) ListTypes() ([]models.DictType, error) {
	var types []models.DictType
	if err := r.db.Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetTypeByID 根据 ID 获取字典类型
func (r *GormDictRepository) GetTypeByID(id uint) (*models.DictType, error) {
	var dictType models.DictType
	if err := r.db.First(&dictType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dictType, nil
}

// GetTypeByCode 根据编码获取字典类型
func (r *GormDictRepository) GetTypeByCode(code string) (*models.DictType, error) {
	var dictType models.DictType
	if err := r.db.Where("code = ?", code).First(&dictType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dictType, nil
}

// CreateType 创建字典类型
func (r *GormDictRepository) CreateType(dictType *models.DictType) error {
	return r.db.Create(dictType).Error
}

// UpdateType 更新字典类型
func (r *GormDictRepository) UpdateType(dictType *models.DictType) error {
	return r.db.Save(dictType).Error
}

// DeleteType 删除字典类型及其数据
func (r *GormDictRepository) DeleteType(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var dictType models.DictType
		if err := tx.First(&dictType, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("type_code = ?", dictType.Code).Delete(&models.DictData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DictType{}, id).Error
	})
}

// ListData 某类型下的字典数据
func (r *GormDictRepository) ListData(typeCode string) ([]models.DictData, error) {
	var data []models.DictData
	if err := r.db.Where("type_code = ?", typeCode).Order("sort ASC, id ASC").Find(&data).Error; err != nil {
		return nil, err
	}
	return data, nil
}

// GetDataByID 根据 ID 获取字典数据
func (r *GormDictRepository) GetDataByID(id uint) (*models.DictData, error) {
	var data models.DictData
	if err := r.db.First(&data, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &data, nil
}

// CreateData 创建字典数据
func (r *GormDictRepository) CreateData(data *models.DictData) error {
	return r.db.Create(data).Error
}

// UpdateData 更新字典数据
func (r *GormDictRepository) UpdateData(data *models.DictData) error {
	return r.db.Save(data).Error
}

// DeleteData 删除字典数据
func (r *GormDictRepository) DeleteData(id uint) error {
	return r.db.Delete(&models.DictData{}, id).Error
}
