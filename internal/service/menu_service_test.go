package service

import (
	"testing"

	"github.com/sms-next/internal/models"
)

func TestBuildMenuTree(t *testing.T) {
	menus := []models.Menu{
		{ID: 1, Name: "系统管理", ParentID: 0},
		{ID: 2, Name: "用户管理", ParentID: 1},
		{ID: 3, Name: "角色管理", ParentID: 1},
		{ID: 4, Name: "教务管理", ParentID: 0},
		{ID: 5, Name: "学生管理", ParentID: 4},
		{ID: 6, Name: "孤儿菜单", ParentID: 99},
	}

	roots := BuildMenuTree(menus)
	if len(roots) != 3 {
		t.Fatalf("root count want 3 got %d", len(roots))
	}

	byName := map[string]*models.Menu{}
	for _, root := range roots {
		byName[root.Name] = root
	}

	system := byName["系统管理"]
	if system == nil || len(system.Children) != 2 {
		t.Fatalf("系统管理 should have 2 children, got %+v", system)
	}
	edu := byName["教务管理"]
	if edu == nil || len(edu.Children) != 1 || edu.Children[0].Name != "学生管理" {
		t.Fatalf("教务管理 children mismatch: %+v", edu)
	}
	// 父节点不存在的菜单按根节点处理
	if byName["孤儿菜单"] == nil {
		t.Fatalf("menu with missing parent should become a root")
	}
}

func TestBuildMenuTreeEmpty(t *testing.T) {
	if roots := BuildMenuTree(nil); len(roots) != 0 {
		t.Fatalf("empty input should produce empty tree, got %d", len(roots))
	}
}
