package models

import "time"

// Notification 通知表。UserID 为空表示广播通知。
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Type      string    `gorm:"default:'SYSTEM'" json:"type"` // SYSTEM / ANNOUNCEMENT / PERSONAL
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notification"
}

// IsBroadcast 是否广播通知
func (n *Notification) IsBroadcast() bool {
	return n.UserID == nil
}
