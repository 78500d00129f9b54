package router

import (
	"fmt"
	"strings"

	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/config"
	portalhandlers "github.com/sms-next/internal/http/handlers/portal"
	systemhandlers "github.com/sms-next/internal/http/handlers/system"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按门户/管理端分组）
	portalHandler := portalhandlers.New(c)
	systemHandler := systemhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sms"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录过于频繁，请稍后再试",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 认证接口（无需登录）
		auth := api.Group("/auth")
		{
			auth.GET("/captcha", portalHandler.GetImageCaptcha)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), portalHandler.Login)
			auth.POST("/register", portalHandler.Register)
			auth.POST("/password/strength", portalHandler.CheckPasswordStrength)
		}

		// 需要登录的接口
		authorized := api.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authorized.POST("/auth/logout", portalHandler.Logout)
			authorized.GET("/auth/userinfo", portalHandler.GetUserInfo)
			authorized.PUT("/auth/password", portalHandler.ChangePassword)
			authorized.GET("/menus/tree", portalHandler.GetMyMenus)

			// 课程门户
			authorized.GET("/courses", portalHandler.ListCourses)
			authorized.GET("/courses/:id", portalHandler.GetCourse)
			authorized.GET("/search/courses", portalHandler.SearchCourses)

			// 选课
			authorized.POST("/enrollments/:courseId", portalHandler.Enroll)
			authorized.DELETE("/enrollments/:courseId", portalHandler.Drop)
			authorized.GET("/enrollments/my", portalHandler.MyCourses)
			authorized.GET("/enrollments/count", portalHandler.MyCourseCount)
			authorized.GET("/enrollments/check/:courseId", portalHandler.CheckEnrolled)

			// 课表与成绩
			authorized.GET("/schedules/my", portalHandler.MyTimetable)
			authorized.GET("/scores/my", portalHandler.MyScores)

			// 通知
			authorized.GET("/notifications", portalHandler.ListNotifications)
			authorized.GET("/notifications/unread-count", portalHandler.UnreadCount)
			authorized.PUT("/notifications/:id/read", portalHandler.MarkNotificationRead)

			// 附件下载
			authorized.GET("/files/:filename", portalHandler.DownloadFile)

			// 管理端接口
			admin := authorized.Group("")
			admin.Use(AdminRequiredMiddleware(c.AuthzService))
			{
				// 用户管理
				admin.GET("/users", systemHandler.ListUsers)
				admin.GET("/users/:id", systemHandler.GetUser)
				admin.POST("/users", systemHandler.CreateUser)
				admin.PUT("/users/:id", systemHandler.UpdateUser)
				admin.DELETE("/users/:id", systemHandler.DeleteUser)
				admin.PUT("/users/:id/roles", systemHandler.AssignUserRoles)
				admin.PUT("/users/:id/password", systemHandler.ResetUserPassword)

				// 角色与菜单
				admin.GET("/roles", systemHandler.ListRoles)
				admin.GET("/roles/:id", systemHandler.GetRole)
				admin.POST("/roles", systemHandler.CreateRole)
				admin.PUT("/roles/:id", systemHandler.UpdateRole)
				admin.DELETE("/roles/:id", systemHandler.DeleteRole)
				admin.GET("/menus", systemHandler.ListMenus)
				admin.POST("/menus", systemHandler.CreateMenu)
				admin.PUT("/menus/:id", systemHandler.UpdateMenu)
				admin.DELETE("/menus/:id", systemHandler.DeleteMenu)

				// 院系与班级
				admin.GET("/departments", systemHandler.ListDepartments)
				admin.POST("/departments", systemHandler.CreateDepartment)
				admin.PUT("/departments/:id", systemHandler.UpdateDepartment)
				admin.DELETE("/departments/:id", systemHandler.DeleteDepartment)
				admin.GET("/classes", systemHandler.ListClazzes)
				admin.GET("/classes/all", systemHandler.ListAllClazzes)
				admin.GET("/classes/:id", systemHandler.GetClazz)
				admin.POST("/classes", systemHandler.CreateClazz)
				admin.PUT("/classes/:id", systemHandler.UpdateClazz)
				admin.DELETE("/classes/:id", systemHandler.DeleteClazz)

				// 学籍管理
				admin.GET("/students", systemHandler.ListStudents)
				admin.GET("/students/:id", systemHandler.GetStudent)
				admin.POST("/students", systemHandler.CreateStudent)
				admin.PUT("/students/:id", systemHandler.UpdateStudent)
				admin.DELETE("/students/:id", systemHandler.DeleteStudent)
				admin.POST("/students/reindex", systemHandler.ReindexStudents)
				admin.GET("/search/students", systemHandler.SearchStudents)

				// 课程与排课管理
				admin.POST("/courses", systemHandler.CreateCourse)
				admin.PUT("/courses/:id", systemHandler.UpdateCourse)
				admin.DELETE("/courses/:id", systemHandler.DeleteCourse)
				admin.GET("/schedules", systemHandler.ListSchedules)
				admin.POST("/schedules", systemHandler.CreateSchedule)
				admin.PUT("/schedules/:id", systemHandler.UpdateSchedule)
				admin.DELETE("/schedules/:id", systemHandler.DeleteSchedule)
				admin.GET("/enrollments/course/:courseId", systemHandler.CourseRoster)

				// 成绩管理
				admin.GET("/scores", systemHandler.ListScores)
				admin.POST("/scores", systemHandler.SaveScore)
				admin.DELETE("/scores/:id", systemHandler.DeleteScore)

				// 通知管理
				admin.POST("/notifications", systemHandler.CreateNotification)
				admin.DELETE("/notifications/:id", systemHandler.DeleteNotification)

				// 数据字典
				admin.GET("/dict/types", systemHandler.ListDictTypes)
				admin.POST("/dict/types", systemHandler.CreateDictType)
				admin.DELETE("/dict/types/:id", systemHandler.DeleteDictType)
				admin.GET("/dict/data", systemHandler.ListDictData)
				admin.POST("/dict/data", systemHandler.CreateDictData)
				admin.DELETE("/dict/data/:id", systemHandler.DeleteDictData)

				// Excel 导入导出
				admin.GET("/excel/export", systemHandler.ExportStudents)
				admin.GET("/excel/template", systemHandler.ExcelTemplate)
				admin.POST("/excel/import", systemHandler.ImportStudents)

				// 附件管理
				admin.POST("/files", systemHandler.UploadFile)
				admin.GET("/files", systemHandler.ListFiles)
				admin.DELETE("/files/:id", systemHandler.DeleteFile)
			}
		}
	}

	// WebSocket 实时通知
	r.GET("/ws", JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), portalHandler.ServeWS)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
