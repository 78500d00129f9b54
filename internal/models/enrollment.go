package models

import "time"

// CourseEnrollment 选课记录表。
// 同一用户对同一课程只保留一条记录，退课后重新选课复用原记录。
type CourseEnrollment struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:uk_enrollment_user_course" json:"user_id"`
	CourseID   uint       `gorm:"not null;uniqueIndex:uk_enrollment_user_course" json:"course_id"`
	Status     string     `gorm:"not null;default:'ENROLLED'" json:"status"` // ENROLLED / DROPPED / COMPLETED
	EnrollTime time.Time  `json:"enroll_time"`
	DropTime   *time.Time `json:"drop_time,omitempty"`
	Course     *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (CourseEnrollment) TableName() string {
	return "course_enrollment"
}
