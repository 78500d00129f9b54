package models

import "time"

// Score 成绩表
type Score struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	Term      string    `gorm:"default:''" json:"term"` // 学期，如 2024-2025-1
	Score     float64   `gorm:"default:0" json:"score"`
	Student   *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Score) TableName() string {
	return "score"
}
