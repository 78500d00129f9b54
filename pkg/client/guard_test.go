package client

import (
	"testing"
	"time"
)

func sessionWithState(t *testing.T, state *SessionState, user *UserInfo) *Session {
	t.Helper()
	store := NewMemoryTokenStore()
	if state != nil {
		if err := store.Save(state); err != nil {
			t.Fatalf("save state failed: %v", err)
		}
	}
	sess := newSession(store)
	if err := sess.restore(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	sess.setUser(user)
	return sess
}

func TestRequireAuth(t *testing.T) {
	if got := RequireAuth(nil); got != RedirectLogin {
		t.Fatalf("nil session want %s got %q", RedirectLogin, got)
	}

	anonymous := sessionWithState(t, nil, nil)
	if got := RequireAuth(anonymous); got != RedirectLogin {
		t.Fatalf("anonymous session want %s got %q", RedirectLogin, got)
	}

	expired := sessionWithState(t, &SessionState{
		Token:     "token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	if got := RequireAuth(expired); got != RedirectLogin {
		t.Fatalf("expired session want %s got %q", RedirectLogin, got)
	}

	active := sessionWithState(t, &SessionState{
		Token:     "token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	if got := RequireAuth(active); got != "" {
		t.Fatalf("active session should pass, got %q", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	if got := RequireAdmin(nil); got != RedirectLogin {
		t.Fatalf("nil session want %s got %q", RedirectLogin, got)
	}

	cases := []struct {
		name string
		user *UserInfo
		want string
	}{
		{name: "profile not fetched yet", user: nil, want: RedirectCourses},
		{name: "student", user: &UserInfo{ID: 1, Username: "alice", Roles: []string{"STUDENT"}}, want: RedirectCourses},
		{name: "admin", user: &UserInfo{ID: 2, Username: "root", Roles: []string{"ADMIN"}, IsAdmin: true}, want: ""},
		{name: "admin chinese role", user: &UserInfo{ID: 3, Username: "super", Roles: []string{"管理员"}, IsAdmin: true}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := sessionWithState(t, &SessionState{
				Token:     "token",
				ExpiresAt: time.Now().Add(time.Hour),
			}, tc.user)
			if got := RequireAdmin(sess); got != tc.want {
				t.Fatalf("user %+v want %q got %q", tc.user, tc.want, got)
			}
		})
	}
}
