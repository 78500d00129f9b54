package authz

import "fmt"

// Policy 权限策略
type Policy struct {
	Object string `json:"object"`
	Action string `json:"action"`
}

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// 管理员放行全部接口，教师可读写教学数据，学生只读自己能访问的门户接口。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "ADMIN",
			Policies: []Policy{
				{Object: "/api/*", Action: "*"},
			},
		},
		{
			Role: "TEACHER",
			Policies: []Policy{
				{Object: "/api/students", Action: "GET"},
				{Object: "/api/students/:id", Action: "GET"},
				{Object: "/api/courses", Action: "*"},
				{Object: "/api/courses/:id", Action: "*"},
				{Object: "/api/schedules", Action: "*"},
				{Object: "/api/schedules/:id", Action: "*"},
				{Object: "/api/enrollments/course/:courseId", Action: "GET"},
				{Object: "/api/notifications", Action: "POST"},
			},
		},
		{
			Role: "STUDENT",
			Policies: []Policy{
				{Object: "/api/courses", Action: "GET"},
				{Object: "/api/courses/:id", Action: "GET"},
				{Object: "/api/schedules", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
