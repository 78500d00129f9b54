package models

import (
	"time"

	"gorm.io/gorm"
)

// Course 课程表
type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"` // 课程编号
	Name        string         `gorm:"not null;index" json:"name"`
	Credit      float64        `gorm:"default:0" json:"credit"`      // 学分
	Teacher     string         `gorm:"default:''" json:"teacher"`    // 授课教师
	Capacity    int            `gorm:"default:0" json:"capacity"`    // 容量，0 为不限
	Description string         `gorm:"default:''" json:"description"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Course) TableName() string {
	return "course"
}
