package portal

import (
	"fmt"

	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// PasswordStrengthRequest 密码强度评估请求
type PasswordStrengthRequest struct {
	Password string `json:"password" binding:"required"`
}

// GetImageCaptcha 获取图片验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "生成验证码失败", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// Login 账号密码登录
func (h *Handler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(input)
	if err != nil {
		if remaining, ok := service.LoginFailRemaining(err); ok {
			respondError(c, response.CodeUnauthorized,
				fmt.Sprintf("密码错误，还剩%d次机会", remaining), nil)
			return
		}
		respondServiceError(c, err, "登录失败")
		return
	}

	requestLog(c).Infow("user_login",
		"user_id", user.ID,
		"username", user.Username,
	)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
		"roles":      user.RoleNames(),
		"is_admin":   user.IsAdmin(),
	})
}

// Register 学生自助注册
func (h *Handler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	user, err := h.AuthService.Register(input)
	if err != nil {
		respondServiceError(c, err, "注册失败")
		return
	}
	response.SuccessWithMsg(c, "注册成功", user)
}

// CheckPasswordStrength 评估密码强度
func (h *Handler) CheckPasswordStrength(c *gin.Context) {
	var req PasswordStrengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	response.Success(c, service.EvaluatePasswordStrength(req.Password))
}

// Logout 退出登录，清除服务端鉴权快照
func (h *Handler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := cache.DelUserAuthState(c.Request.Context(), userID); err != nil {
		requestLog(c).Warnw("auth_state_clear_failed", "user_id", userID, "error", err)
	}
	response.SuccessWithMsg(c, "已退出登录", nil)
}

// GetUserInfo 当前登录用户信息
func (h *Handler) GetUserInfo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByIDWithRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户信息失败", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "用户不存在", nil)
		return
	}
	response.Success(c, gin.H{
		"user":     user,
		"roles":    user.RoleNames(),
		"is_admin": user.IsAdmin(),
	})
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err, "修改密码失败")
		return
	}
	response.SuccessWithMsg(c, "密码已修改，请重新登录", nil)
}

// GetMyMenus 当前用户可见的菜单树
func (h *Handler) GetMyMenus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByIDWithRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取菜单失败", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "用户不存在", nil)
		return
	}
	tree, err := h.MenuService.TreeForUser(user)
	if err != nil {
		respondError(c, response.CodeInternal, "获取菜单失败", err)
		return
	}
	response.Success(c, tree)
}
