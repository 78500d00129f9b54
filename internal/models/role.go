package models

import "time"

// Role 角色表
type Role struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"` // 角色名（ADMIN / 管理员 标记管理员）
	Description string    `gorm:"default:''" json:"description"`
	Menus       []Menu    `gorm:"many2many:sys_role_menu" json:"menus,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Role) TableName() string {
	return "sys_role"
}
