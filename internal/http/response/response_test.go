package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{code: CodeOK, want: http.StatusOK},
		{code: CodeBadRequest, want: http.StatusBadRequest},
		{code: CodeUnauthorized, want: http.StatusUnauthorized},
		{code: CodeForbidden, want: http.StatusForbidden},
		{code: CodeNotFound, want: http.StatusNotFound},
		{code: CodeTooManyRequests, want: http.StatusTooManyRequests},
		{code: CodeInternal, want: http.StatusInternalServerError},
		{code: 12345, want: http.StatusOK},
	}
	for _, tc := range cases {
		if got := httpStatus(tc.code); got != tc.want {
			t.Fatalf("code %d want status %d got %d", tc.code, tc.want, got)
		}
	}
}

func TestErrorWritesMatchingStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, CodeUnauthorized, "请先登录")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("http status want 401 got %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Code != CodeUnauthorized || body.Msg != "请先登录" {
		t.Fatalf("body mismatch: %+v", body)
	}
	data, ok := body.Data.(map[string]interface{})
	if !ok || data["request_id"] != "req-1" {
		t.Fatalf("request_id should be attached to error data: %+v", body.Data)
	}
}

func TestSuccessWithPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []string{"a", "b"}, Pagination{Page: 1, PageSize: 20, Total: 2, TotalPage: 1})

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var body PageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Code != CodeOK || body.Pagination.Total != 2 {
		t.Fatalf("body mismatch: %+v", body)
	}
}
