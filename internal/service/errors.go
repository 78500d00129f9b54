package service

import "errors"

// 服务层哨兵错误，handler 通过 errors.Is 映射为响应
var (
	ErrNotFound             = errors.New("记录不存在")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUsernameExists       = errors.New("用户名已存在")
	ErrInvalidCredentials   = errors.New("用户名或密码错误")
	ErrInvalidPassword      = errors.New("原密码错误")
	ErrPasswordMismatch     = errors.New("两次密码不一致")
	ErrWeakPassword         = errors.New("密码强度不足")
	ErrPasswordExpired      = errors.New("密码已过期，请修改密码")
	ErrAccountLocked        = errors.New("账户已锁定，请30分钟后再试")
	ErrAccountDisabled      = errors.New("账户已禁用")
	ErrCaptchaRequired      = errors.New("请输入验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrAlreadyEnrolled      = errors.New("您已经选过该课程")
	ErrNotEnrolled          = errors.New("您尚未选修该课程")
	ErrCourseFull           = errors.New("课程人数已满")
	ErrRoleInUse            = errors.New("角色仍被用户使用")
	ErrMenuHasChildren      = errors.New("存在子菜单，无法删除")
	ErrDepartmentNotEmpty   = errors.New("院系下仍有班级")
	ErrClazzNotEmpty        = errors.New("班级下仍有学生")
	ErrStudentNoExists      = errors.New("学号已存在")
	ErrCourseCodeExists     = errors.New("课程编号已存在")
	ErrFileTooLarge         = errors.New("文件大小超出限制")
	ErrFileTypeNotAllowed   = errors.New("不支持的文件类型")
	ErrSearchUnavailable    = errors.New("搜索服务不可用")
	ErrLoginAttemptsBlocked = errors.New("尝试次数过多，请稍后再试")
)

// LockedError 登录失败导致锁定时附带剩余次数信息
type loginFailError struct {
	remaining int
}

func (e loginFailError) Error() string {
	return "密码错误"
}

func (e loginFailError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// Remaining 剩余可尝试次数
func (e loginFailError) Remaining() int {
	return e.remaining
}
