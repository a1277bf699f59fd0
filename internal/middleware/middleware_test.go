package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user": id, "role": c.GetString(ContextRole)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	valid, err := IssueToken(testSecret, 42, "employee", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _ := IssueToken(testSecret, 42, "employee", -time.Minute)
	otherKey, _ := IssueToken("another-secret", 42, "employee", time.Hour)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: "employee"}).SignedString([]byte(testSecret))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"valid", valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong key", otherKey, http.StatusUnauthorized},
		{"no subject", noSubject, http.StatusUnauthorized},
	}
	r := newRouter(RequireAuth(testSecret))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.token)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_EmptySecretRejectsEverything(t *testing.T) {
	token, _ := IssueToken("", 1, "admin", time.Hour)
	if w := doGet(newRouter(RequireAuth("")), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(RequireAuth(testSecret), RequireRole("admin"))

	admin, _ := IssueToken(testSecret, 1, "admin", time.Hour)
	employee, _ := IssueToken(testSecret, 2, "employee", time.Hour)

	if w := doGet(r, admin); w.Code != http.StatusOK {
		t.Errorf("admin status = %d", w.Code)
	}
	if w := doGet(r, employee); w.Code != http.StatusForbidden {
		t.Errorf("employee status = %d, want 403", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	w := doGet(r, "")
	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}
}
