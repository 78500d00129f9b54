package models

import (
	"time"

	"gorm.io/gorm"
)

// Student 学生表
type Student struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	StudentNo string         `gorm:"uniqueIndex;not null" json:"student_no"` // 学号
	Name      string         `gorm:"not null;index" json:"name"`
	Gender    string         `gorm:"default:''" json:"gender"` // 男 / 女
	Phone     string         `gorm:"default:''" json:"phone"`
	Email     string         `gorm:"default:''" json:"email"`
	Address   string         `gorm:"default:''" json:"address"`
	ClazzID   uint           `gorm:"index" json:"clazz_id"`
	Clazz     *Clazz         `gorm:"foreignKey:ClazzID" json:"clazz,omitempty"`
	UserID    *uint          `gorm:"index" json:"user_id"` // 关联登录账号，可为空
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Student) TableName() string {
	return "student"
}

// ClazzName 所在班级名，未加载班级时为空串
func (s *Student) ClazzName() string {
	if s.Clazz == nil {
		return ""
	}
	return s.Clazz.Name
}
