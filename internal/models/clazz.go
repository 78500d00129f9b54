package models

import "time"

// Clazz 班级表（class 是保留字，沿用 clazz 命名）
type Clazz struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Grade        string      `gorm:"default:''" json:"grade"` // 年级，如 2024
	DepartmentID uint        `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName 指定表名
func (Clazz) TableName() string {
	return "clazz"
}
