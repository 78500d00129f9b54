package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/google/uuid"
)

// UploadService 文件上传服务
type UploadService struct {
	cfg  *config.Config
	repo repository.AttachmentRepository
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config, repo repository.AttachmentRepository) *UploadService {
	return &UploadService{cfg: cfg, repo: repo}
}

// SaveFile 保存上传的文件并登记附件记录
func (s *UploadService) SaveFile(file *multipart.FileHeader, uploaderID uint) (*models.Attachment, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return nil, ErrFileTypeNotAllowed
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, ErrFileTypeNotAllowed
		}
	}

	// 生成唯一文件名，按年月归档
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	now := time.Now()
	savePath := filepath.Join(s.cfg.Upload.Dir, now.Format("2006"), now.Format("01"), filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return nil, err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		Filename:     filename,
		OriginalName: file.Filename,
		Path:         savePath,
		Size:         file.Size,
		ContentType:  contentType,
		UploaderID:   uploaderID,
	}
	if err := s.repo.Create(attachment); err != nil {
		_ = os.Remove(savePath)
		return nil, err
	}
	return attachment, nil
}

// Resolve 按存储文件名取附件记录
func (s *UploadService) Resolve(filename string) (*models.Attachment, error) {
	attachment, err := s.repo.GetByFilename(filename)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, ErrNotFound
	}
	return attachment, nil
}

// List 附件分页列表
func (s *UploadService) List(page, pageSize int) ([]models.Attachment, int64, error) {
	return s.repo.List(page, pageSize)
}

// Delete 删除附件记录及磁盘文件
func (s *UploadService) Delete(id uint) error {
	attachment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if attachment == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := os.Remove(attachment.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
