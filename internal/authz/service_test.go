package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("TEACHER", "/api/courses/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"TEACHER"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/courses/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/courses/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("TEACHER", "/api/schedules", "POST"); err != nil {
		t.Fatalf("grant teacher policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("STUDENT", "/api/courses", "GET"); err != nil {
		t.Fatalf("grant student policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"TEACHER"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetUserRoles(2, []string{"STUDENT"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}

	allow, err := svc.EnforceUser(2, "/api/schedules", "POST")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/api/courses", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestBootstrapBuiltinRolesAdminWildcard(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.SetUserRoles(3, []string{"ADMIN"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(3, "/api/users/9", "DELETE")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin wildcard allow")
	}

	if err := svc.SetUserRoles(4, []string{"STUDENT"}); err != nil {
		t.Fatalf("set student roles failed: %v", err)
	}
	allow, err = svc.EnforceUser(4, "/api/users/9", "DELETE")
	if err != nil {
		t.Fatalf("enforce student failed: %v", err)
	}
	if allow {
		t.Fatalf("expected student deny")
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole(" ADMIN ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if got != "role:ADMIN" {
		t.Fatalf("normalize role want role:ADMIN got %q", got)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("expected empty role error")
	}
}
