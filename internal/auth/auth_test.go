package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	tok, err := svc.IssueJWT("user-1", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Sub != "user-1" || c.Role != "student" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := auth.NewService("secret-a", time.Hour).IssueJWT("user-1", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := auth.NewService("secret-b", time.Hour).Parse(tok); err == nil {
		t.Fatalf("token from another issuer accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := auth.NewService("test-secret", -time.Minute)
	tok, err := svc.IssueJWT("user-1", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(tok); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestJWTMiddlewarePopulatesContext(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	tok, err := svc.IssueJWT("user-1", "teacher")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotSub, gotRole string
	h := auth.JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = auth.SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotSub != "user-1" || gotRole != "teacher" {
		t.Fatalf("context = %q/%q", gotSub, gotRole)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	h := auth.JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler reached without a token")
	}))

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest("GET", "/courses", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}
