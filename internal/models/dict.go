package models

import "time"

// DictType 字典类型表
type DictType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (DictType) TableName() string {
	return "dict_type"
}

// DictData 字典数据表
type DictData struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TypeCode  string    `gorm:"index;not null" json:"type_code"`
	Label     string    `gorm:"not null" json:"label"`
	Value     string    `gorm:"not null" json:"value"`
	Sort      int       `gorm:"default:0" json:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (DictData) TableName() string {
	return "dict_data"
}
