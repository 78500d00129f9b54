package constants

// 用户状态常量
const (
	UserStatusNormal   = 0 // 正常
	UserStatusLocked   = 1 // 锁定
	UserStatusDisabled = 2 // 禁用
)

// 登录安全常量
const (
	MaxLoginFailCount   = 5
	LockDurationMinutes = 30
	PasswordExpireDays  = 90
)

// 管理员角色名常量
const (
	RoleNameAdmin   = "ADMIN"
	RoleNameAdminZh = "管理员"
)

// 选课状态常量
const (
	EnrollmentStatusEnrolled  = "ENROLLED"
	EnrollmentStatusDropped   = "DROPPED"
	EnrollmentStatusCompleted = "COMPLETED"
)

// 密码强度常量
const (
	PasswordStrengthWeak   = "WEAK"
	PasswordStrengthMedium = "MEDIUM"
	PasswordStrengthStrong = "STRONG"
)

// 通知类型常量
const (
	NotificationTypeSystem       = "SYSTEM"
	NotificationTypeAnnouncement = "ANNOUNCEMENT"
	NotificationTypePersonal     = "PERSONAL"
)

// WebSocket 订阅目的地常量
const (
	DestinationUserQueue      = "/user/queue/notifications"
	DestinationBroadcastTopic = "/topic/notifications"
)

// WebSocket 帧类型常量
const (
	FrameTypeSubscribe = "subscribe"
	FrameTypeMessage   = "message"
	FrameTypePing      = "ping"
	FrameTypePong      = "pong"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskStudentIndexSync = "student:index_sync"
	TaskStudentReindex   = "student:reindex_all"
	TaskCourseIndexSync  = "course:index_sync"
)

// RabbitMQ 通知队列常量
const (
	MQNotificationExchange = "sms.notifications"
	MQNotificationQueue    = "sms.notifications.push"
	MQNotificationRouting  = "notification.created"
)

// 搜索索引常量
const (
	SearchIndexStudents = "students"
	SearchIndexCourses  = "courses"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sms"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// Excel 导出表头（学生）
var StudentExcelHeaders = []string{"学号", "姓名", "班级", "性别", "手机", "邮箱"}

// 前端路由常量（守卫重定向目标）
const (
	RouteLogin         = "/login"
	RoutePortalCourses = "/portal/courses"
)
