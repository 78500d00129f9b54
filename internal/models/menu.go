package models

import "time"

// Menu 菜单表
type Menu struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`      // 菜单名
	Path      string    `gorm:"default:''" json:"path"`    // 前端路由
	Icon      string    `gorm:"default:''" json:"icon"`    // 图标
	ParentID  uint      `gorm:"default:0" json:"parent_id"`// 父菜单，0 为顶级
	OrderNum  int       `gorm:"default:0" json:"order_num"`
	Children  []*Menu   `gorm:"-" json:"children,omitempty"` // 树形结构，查询后组装
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Menu) TableName() string {
	return "sys_menu"
}
