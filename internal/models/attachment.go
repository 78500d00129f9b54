package models

import "time"

// Attachment 附件表
type Attachment struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`      // 存储文件名（uuid）
	OriginalName string    `gorm:"not null" json:"original_name"` // 上传时的文件名
	Path         string    `gorm:"not null" json:"-"`             // 磁盘路径
	Size         int64     `gorm:"default:0" json:"size"`
	ContentType  string    `gorm:"default:''" json:"content_type"`
	UploaderID   uint      `gorm:"index" json:"uploader_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Attachment) TableName() string {
	return "attachment"
}
