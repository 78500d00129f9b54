package models

import "time"

// Schedule 排课表
type Schedule struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	ClazzID   uint      `gorm:"index" json:"clazz_id"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"` // 1-7
	StartTime string    `gorm:"not null" json:"start_time"`  // HH:MM
	EndTime   string    `gorm:"not null" json:"end_time"`    // HH:MM
	Classroom string    `gorm:"default:''" json:"classroom"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Clazz     *Clazz    `gorm:"foreignKey:ClazzID" json:"clazz,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Schedule) TableName() string {
	return "schedule"
}
