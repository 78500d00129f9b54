package provider

import (
	"github.com/sms-next/internal/authz"
	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/mq"
	"github.com/sms-next/internal/queue"
	"github.com/sms-next/internal/realtime"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/search"
	"github.com/sms-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Broker      *mq.Broker
	Hub         *realtime.Hub

	// Repositories
	UserRepo         repository.UserRepository
	RoleRepo         repository.RoleRepository
	MenuRepo         repository.MenuRepository
	DepartmentRepo   repository.DepartmentRepository
	ClazzRepo        repository.ClazzRepository
	StudentRepo      repository.StudentRepository
	CourseRepo       repository.CourseRepository
	ScheduleRepo     repository.ScheduleRepository
	EnrollmentRepo   repository.EnrollmentRepository
	ScoreRepo        repository.ScoreRepository
	NotificationRepo repository.NotificationRepository
	AttachmentRepo   repository.AttachmentRepository
	DictRepo         repository.DictRepository

	// 搜索
	SearchClient  *search.Client
	SearchIndexer *search.Indexer

	// 消息
	NotificationPublisher *mq.NotificationPublisher
	NotificationConsumer  *mq.NotificationConsumer

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	UserService         *service.UserService
	RoleService         *service.RoleService
	MenuService         *service.MenuService
	DepartmentService   *service.DepartmentService
	ClazzService        *service.ClazzService
	StudentService      *service.StudentService
	CourseService       *service.CourseService
	ScheduleService     *service.ScheduleService
	EnrollmentService   *service.EnrollmentService
	ScoreService        *service.ScoreService
	NotificationService *service.NotificationService
	UploadService       *service.UploadService
	ExcelService        *service.ExcelService
	DictService         *service.DictService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化消息队列
	broker, err := mq.NewBroker(&cfg.MQ)
	if err != nil {
		logger.Errorw("provider_init_mq_failed", "error", err)
		broker = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Broker:      broker,
		Hub:         realtime.NewHub(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化搜索与消息组件
	c.initInfra()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.DepartmentRepo = repository.NewDepartmentRepository(db)
	c.ClazzRepo = repository.NewClazzRepository(db)
	c.StudentRepo = repository.NewStudentRepository(db)
	c.CourseRepo = repository.NewCourseRepository(db)
	c.ScheduleRepo = repository.NewScheduleRepository(db)
	c.EnrollmentRepo = repository.NewEnrollmentRepository(db)
	c.ScoreRepo = repository.NewScoreRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.AttachmentRepo = repository.NewAttachmentRepository(db)
	c.DictRepo = repository.NewDictRepository(db)
}

func (c *Container) initInfra() {
	searchClient := search.NewClient(&c.Config.Search)
	c.SearchClient = searchClient
	c.SearchIndexer = search.NewIndexer(searchClient)

	c.NotificationPublisher = mq.NewNotificationPublisher(c.Broker)
	c.NotificationConsumer = mq.NewNotificationConsumer(c.Broker, c.NotificationRepo, c.Hub)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.RoleRepo, c.CaptchaService)
	c.UserService = service.NewUserService(c.Config, c.UserRepo, c.RoleRepo, c.AuthzService)
	c.RoleService = service.NewRoleService(c.RoleRepo, c.MenuRepo, c.AuthzService)
	c.MenuService = service.NewMenuService(c.MenuRepo)
	c.DepartmentService = service.NewDepartmentService(c.DepartmentRepo)
	c.ClazzService = service.NewClazzService(c.ClazzRepo, c.DepartmentRepo)
	c.StudentService = service.NewStudentService(c.StudentRepo, c.ClazzRepo, c.QueueClient, c.SearchIndexer)
	c.CourseService = service.NewCourseService(c.CourseRepo, c.QueueClient, c.SearchIndexer)
	c.ScheduleService = service.NewScheduleService(c.ScheduleRepo, c.CourseRepo, c.EnrollmentRepo)
	c.EnrollmentService = service.NewEnrollmentService(c.EnrollmentRepo, c.CourseRepo)
	c.ScoreService = service.NewScoreService(c.ScoreRepo, c.StudentRepo, c.CourseRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.NotificationPublisher, c.Hub)
	c.UploadService = service.NewUploadService(c.Config, c.AttachmentRepo)
	c.ExcelService = service.NewExcelService(c.StudentRepo, c.ClazzRepo)
	c.DictService = service.NewDictService(c.DictRepo)
}
