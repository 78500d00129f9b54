package repository

import (
	"testing"
)

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("empty dialect operator want LIKE got %s", got)
	}
}

func TestBuildKeywordCondition(t *testing.T) {
	condition, argCount := buildKeywordConditionByDialect("sqlite", []string{"student_no", "name", " ", "phone"})
	if argCount != 3 {
		t.Fatalf("arg count want 3 got %d", argCount)
	}
	want := "student_no LIKE ? OR name LIKE ? OR phone LIKE ?"
	if condition != want {
		t.Fatalf("condition want %q got %q", want, condition)
	}

	condition, argCount = buildKeywordConditionByDialect("postgres", []string{"username"})
	if argCount != 1 || condition != "username ILIKE ?" {
		t.Fatalf("postgres condition mismatch: %q (%d args)", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
