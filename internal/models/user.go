package models

import (
	"time"

	"github.com/sms-next/internal/constants"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // 主键
	Username           string         `gorm:"uniqueIndex;not null" json:"username"` // 登录名
	Password           string         `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	Nickname           string         `gorm:"default:''" json:"nickname"`           // 昵称
	Email              string         `gorm:"default:''" json:"email"`              // 邮箱
	Phone              string         `gorm:"default:''" json:"phone"`              // 手机号
	Avatar             string         `gorm:"default:''" json:"avatar"`             // 头像地址
	Status             int            `gorm:"default:0" json:"status"`              // 0 正常 / 1 锁定 / 2 禁用
	LoginFailCount     int            `gorm:"default:0" json:"-"`                   // 连续登录失败次数
	LockTime           *time.Time     `json:"-"`                                    // 锁定时间
	PasswordUpdateTime *time.Time     `json:"-"`                                    // 最近修改密码时间
	PasswordExpireTime *time.Time     `json:"-"`                                    // 密码过期时间
	LastLoginAt        *time.Time     `json:"last_login_at"`                        // 最后登录时间
	Roles              []Role         `gorm:"many2many:sys_user_role" json:"roles"` // 角色
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "sys_user"
}

// IsLocked 账户是否处于锁定期内。
// 锁定到期后视为未锁定，由登录流程负责复位状态。
func (u *User) IsLocked(lockDuration time.Duration) bool {
	if u.Status != constants.UserStatusLocked || u.LockTime == nil {
		return false
	}
	return time.Since(*u.LockTime) < lockDuration
}

// IsPasswordExpired 密码是否已过期
func (u *User) IsPasswordExpired() bool {
	if u.PasswordExpireTime == nil {
		return false
	}
	return time.Now().After(*u.PasswordExpireTime)
}

// IsAdmin 是否拥有管理员角色（角色名精确匹配）
func (u *User) IsAdmin() bool {
	for _, role := range u.Roles {
		if role.Name == constants.RoleNameAdmin || role.Name == constants.RoleNameAdminZh {
			return true
		}
	}
	return false
}

// RoleNames 返回全部角色名
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
