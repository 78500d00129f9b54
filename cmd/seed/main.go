package main

import (
	"fmt"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 院系
	departments := []models.Department{
		{Name: "计算机学院", Code: "CS", Description: "计算机科学与技术、软件工程等专业"},
		{Name: "外国语学院", Code: "FL", Description: "英语、日语等专业"},
		{Name: "数学学院", Code: "MATH", Description: "数学与应用数学专业"},
	}
	for _, dept := range departments {
		var existing models.Department
		if err := models.DB.Where("name = ?", dept.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&dept).Error; err != nil {
				stdLog.Printf("Failed to create department %s: %v", dept.Name, err)
			} else {
				stdLog.Printf("Created department: %s", dept.Name)
			}
		} else {
			stdLog.Printf("Department already exists: %s", dept.Name)
		}
	}

	departmentIDs := map[string]uint{}
	var departmentList []models.Department
	if err := models.DB.Find(&departmentList).Error; err != nil {
		stdLog.Printf("Failed to load departments: %v", err)
	}
	for _, dept := range departmentList {
		departmentIDs[dept.Code] = dept.ID
	}

	// 班级
	clazzes := []models.Clazz{
		{Name: "计科2301班", Grade: "2023", DepartmentID: departmentIDs["CS"]},
		{Name: "计科2302班", Grade: "2023", DepartmentID: departmentIDs["CS"]},
		{Name: "软工2401班", Grade: "2024", DepartmentID: departmentIDs["CS"]},
		{Name: "英语2401班", Grade: "2024", DepartmentID: departmentIDs["FL"]},
	}
	for _, clazz := range clazzes {
		var existing models.Clazz
		if err := models.DB.Where("name = ?", clazz.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&clazz).Error; err != nil {
				stdLog.Printf("Failed to create clazz %s: %v", clazz.Name, err)
			} else {
				stdLog.Printf("Created clazz: %s", clazz.Name)
			}
		} else {
			stdLog.Printf("Clazz already exists: %s", clazz.Name)
		}
	}

	clazzIDs := map[string]uint{}
	var clazzList []models.Clazz
	if err := models.DB.Find(&clazzList).Error; err != nil {
		stdLog.Printf("Failed to load clazzes: %v", err)
	}
	for _, clazz := range clazzList {
		clazzIDs[clazz.Name] = clazz.ID
	}

	// 学生
	students := []models.Student{
		{StudentNo: "20230001", Name: "张三", Gender: "男", Phone: "13800000001", Email: "zhangsan@example.com", ClazzID: clazzIDs["计科2301班"]},
		{StudentNo: "20230002", Name: "李四", Gender: "女", Phone: "13800000002", Email: "lisi@example.com", ClazzID: clazzIDs["计科2301班"]},
		{StudentNo: "20230003", Name: "王五", Gender: "男", Phone: "13800000003", Email: "wangwu@example.com", ClazzID: clazzIDs["计科2302班"]},
		{StudentNo: "20240001", Name: "赵六", Gender: "女", Phone: "13800000004", Email: "zhaoliu@example.com", ClazzID: clazzIDs["软工2401班"]},
		{StudentNo: "20240002", Name: "孙七", Gender: "男", Phone: "13800000005", Email: "sunqi@example.com", ClazzID: clazzIDs["英语2401班"]},
	}
	for _, student := range students {
		var existing models.Student
		if err := models.DB.Where("student_no = ?", student.StudentNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&student).Error; err != nil {
				stdLog.Printf("Failed to create student %s: %v", student.StudentNo, err)
			} else {
				stdLog.Printf("Created student: %s %s", student.StudentNo, student.Name)
			}
		} else {
			stdLog.Printf("Student already exists: %s", student.StudentNo)
		}
	}

	// 课程
	courses := []models.Course{
		{Code: "CS101", Name: "计算机导论", Credit: 3, Teacher: "陈教授", Capacity: 120, Description: "计算机学科入门课程"},
		{Code: "CS201", Name: "数据结构", Credit: 4, Teacher: "林教授", Capacity: 80, Description: "线性表、树、图与常用算法"},
		{Code: "CS301", Name: "操作系统", Credit: 4, Teacher: "黄教授", Capacity: 60, Description: "进程、内存与文件系统"},
		{Code: "MATH101", Name: "高等数学", Credit: 5, Teacher: "吴教授", Capacity: 200, Description: "微积分基础"},
		{Code: "EN101", Name: "大学英语", Credit: 2, Teacher: "刘老师", Capacity: 0, Description: "公共英语课程，容量不限"},
	}
	for _, course := range courses {
		var existing models.Course
		if err := models.DB.Where("code = ?", course.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&course).Error; err != nil {
				stdLog.Printf("Failed to create course %s: %v", course.Code, err)
			} else {
				stdLog.Printf("Created course: %s %s", course.Code, course.Name)
			}
		} else {
			existing.Name = course.Name
			existing.Credit = course.Credit
			existing.Teacher = course.Teacher
			existing.Capacity = course.Capacity
			existing.Description = course.Description
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update course %s: %v", course.Code, err)
			} else {
				stdLog.Printf("Updated course: %s", course.Code)
			}
		}
	}

	courseIDs := map[string]uint{}
	var courseList []models.Course
	if err := models.DB.Find(&courseList).Error; err != nil {
		stdLog.Printf("Failed to load courses: %v", err)
	}
	for _, course := range courseList {
		courseIDs[course.Code] = course.ID
	}

	// 排课
	schedules := []models.Schedule{
		{CourseID: courseIDs["CS101"], ClazzID: clazzIDs["计科2301班"], DayOfWeek: 1, StartTime: "08:00", EndTime: "09:40", Classroom: "A101"},
		{CourseID: courseIDs["CS201"], ClazzID: clazzIDs["计科2301班"], DayOfWeek: 2, StartTime: "10:00", EndTime: "11:40", Classroom: "A203"},
		{CourseID: courseIDs["CS301"], ClazzID: clazzIDs["计科2302班"], DayOfWeek: 3, StartTime: "14:00", EndTime: "15:40", Classroom: "B305"},
		{CourseID: courseIDs["MATH101"], DayOfWeek: 4, StartTime: "08:00", EndTime: "09:40", Classroom: "C110"},
		{CourseID: courseIDs["EN101"], DayOfWeek: 5, StartTime: "16:00", EndTime: "17:40", Classroom: "D201"},
	}
	for _, schedule := range schedules {
		if schedule.CourseID == 0 {
			continue
		}
		var existing models.Schedule
		if err := models.DB.Where("course_id = ? AND day_of_week = ? AND start_time = ?",
			schedule.CourseID, schedule.DayOfWeek, schedule.StartTime).First(&existing).Error; err != nil {
			if err := models.DB.Create(&schedule).Error; err != nil {
				stdLog.Printf("Failed to create schedule for course %d: %v", schedule.CourseID, err)
			} else {
				stdLog.Printf("Created schedule: course=%d day=%d %s", schedule.CourseID, schedule.DayOfWeek, schedule.StartTime)
			}
		} else {
			stdLog.Printf("Schedule already exists: course=%d day=%d", schedule.CourseID, schedule.DayOfWeek)
		}
	}

	// 菜单
	menus := []models.Menu{
		{Name: "系统管理", Path: "", Icon: "setting", ParentID: 0, OrderNum: 1},
		{Name: "教务管理", Path: "", Icon: "book", ParentID: 0, OrderNum: 2},
		{Name: "课程门户", Path: "/portal/courses", Icon: "read", ParentID: 0, OrderNum: 3},
	}
	for _, menu := range menus {
		var existing models.Menu
		if err := models.DB.Where("name = ? AND parent_id = ?", menu.Name, menu.ParentID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&menu).Error; err != nil {
				stdLog.Printf("Failed to create menu %s: %v", menu.Name, err)
			} else {
				stdLog.Printf("Created menu: %s", menu.Name)
			}
		} else {
			stdLog.Printf("Menu already exists: %s", menu.Name)
		}
	}

	menuParentIDs := map[string]uint{}
	var menuList []models.Menu
	if err := models.DB.Where("parent_id = ?", 0).Find(&menuList).Error; err != nil {
		stdLog.Printf("Failed to load menus: %v", err)
	}
	for _, menu := range menuList {
		menuParentIDs[menu.Name] = menu.ID
	}

	subMenus := []models.Menu{
		{Name: "用户管理", Path: "/system/users", Icon: "user", ParentID: menuParentIDs["系统管理"], OrderNum: 1},
		{Name: "角色管理", Path: "/system/roles", Icon: "team", ParentID: menuParentIDs["系统管理"], OrderNum: 2},
		{Name: "菜单管理", Path: "/system/menus", Icon: "menu", ParentID: menuParentIDs["系统管理"], OrderNum: 3},
		{Name: "学生管理", Path: "/edu/students", Icon: "idcard", ParentID: menuParentIDs["教务管理"], OrderNum: 1},
		{Name: "课程管理", Path: "/edu/courses", Icon: "book", ParentID: menuParentIDs["教务管理"], OrderNum: 2},
		{Name: "排课管理", Path: "/edu/schedules", Icon: "calendar", ParentID: menuParentIDs["教务管理"], OrderNum: 3},
		{Name: "成绩管理", Path: "/edu/scores", Icon: "profile", ParentID: menuParentIDs["教务管理"], OrderNum: 4},
	}
	for _, menu := range subMenus {
		if menu.ParentID == 0 {
			continue
		}
		var existing models.Menu
		if err := models.DB.Where("name = ? AND parent_id = ?", menu.Name, menu.ParentID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&menu).Error; err != nil {
				stdLog.Printf("Failed to create menu %s: %v", menu.Name, err)
			} else {
				stdLog.Printf("Created menu: %s", menu.Name)
			}
		} else {
			stdLog.Printf("Menu already exists: %s", menu.Name)
		}
	}

	// 字典
	dictTypes := []models.DictType{
		{Name: "性别", Code: "gender"},
		{Name: "通知类型", Code: "notification_type"},
	}
	for _, dictType := range dictTypes {
		var existing models.DictType
		if err := models.DB.Where("code = ?", dictType.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&dictType).Error; err != nil {
				stdLog.Printf("Failed to create dict type %s: %v", dictType.Code, err)
			} else {
				stdLog.Printf("Created dict type: %s", dictType.Code)
			}
		} else {
			stdLog.Printf("Dict type already exists: %s", dictType.Code)
		}
	}

	dictData := []models.DictData{
		{TypeCode: "gender", Label: "男", Value: "男", Sort: 1},
		{TypeCode: "gender", Label: "女", Value: "女", Sort: 2},
		{TypeCode: "notification_type", Label: "系统通知", Value: "SYSTEM", Sort: 1},
		{TypeCode: "notification_type", Label: "教务通知", Value: "ACADEMIC", Sort: 2},
	}
	for _, data := range dictData {
		var existing models.DictData
		if err := models.DB.Where("type_code = ? AND value = ?", data.TypeCode, data.Value).First(&existing).Error; err != nil {
			if err := models.DB.Create(&data).Error; err != nil {
				stdLog.Printf("Failed to create dict data %s/%s: %v", data.TypeCode, data.Value, err)
			} else {
				stdLog.Printf("Created dict data: %s/%s", data.TypeCode, data.Value)
			}
		} else {
			stdLog.Printf("Dict data already exists: %s/%s", data.TypeCode, data.Value)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Departments")
	fmt.Println("- 4 Classes")
	fmt.Println("- 5 Students")
	fmt.Println("- 5 Courses with schedules")
	fmt.Println("- Menu tree and dictionaries")
}
