package models

import (
	"time"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号及 ADMIN 角色
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminRole := Role{Name: constants.RoleNameAdmin, Description: "系统管理员"}
	if err := DB.Where(Role{Name: constants.RoleNameAdmin}).FirstOrCreate(&adminRole).Error; err != nil {
		return err
	}

	now := time.Now()
	expire := now.AddDate(0, 0, constants.PasswordExpireDays)
	admin := User{
		Username:           username,
		Password:           string(hash),
		Nickname:           "管理员",
		Status:             constants.UserStatusNormal,
		PasswordUpdateTime: &now,
		PasswordExpireTime: &expire,
		Roles:              []Role{adminRole},
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
