package client

// 守卫命中时的跳转目标
const (
	RedirectLogin   = "/login"
	RedirectCourses = "/portal/courses"
)

// RequireAuth 登录守卫。未登录返回 "/login"，放行时返回空串。
func RequireAuth(sess *Session) string {
	if sess == nil || !sess.IsAuthenticated() {
		return RedirectLogin
	}
	return ""
}

// RequireAdmin 管理端守卫。未登录返回 "/login"，
// 已登录但不是管理员时返回 "/portal/courses"。
// 管理员身份在登录或拉取用户信息时由服务端判定（角色名 ADMIN/管理员
// 精确匹配），守卫只读取会话中已解析好的结果。
func RequireAdmin(sess *Session) string {
	if redirect := RequireAuth(sess); redirect != "" {
		return redirect
	}
	user := sess.User()
	if user == nil || !user.IsAdmin {
		return RedirectCourses
	}
	return ""
}
