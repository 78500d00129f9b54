package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// AttachmentRepository 附件数据访问接口
type AttachmentRepository interface {
	GetByID(id uint) (*models.Attachment, error)
	GetByFilename(filename string) (*models.Attachment, error)
	List(page, pageSize int) ([]models.Attachment, int64, error)
	Create(attachment *models.Attachment) error
	Delete(id uint) error
}

// GormAttachmentRepository GORM 实现
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository 创建附件仓库
func NewAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// GetByID 根据 ID 获取附件
func (r *GormAttachmentRepository) GetByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

// GetByFilename 根据存储文件名获取附件
func (r *GormAttachmentRepository) GetByFilename(filename string) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.Where("filename = ?", filename).First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

// List 附件列表
func (r *GormAttachmentRepository) List(page, pageSize int) ([]models.Attachment, int64, error) {
	query := r.db.Model(&models.Attachment{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var attachments []models.Attachment
	if err := query.Order("created_at DESC").Find(&attachments).Error; err != nil {
		return nil, 0, err
	}
	return attachments, total, nil
}

// Create 创建附件
func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// Delete 删除附件
func (r *GormAttachmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}
