package rbac_test

import (
	"context"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/rbac"
)

func TestDefaultRoles(t *testing.T) {
	c := rbac.NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", "enrollment:create", true},
		{"student", "quiz:take", true},
		{"student", "submission:grade", false},
		{"student", "course:create", false},
		{"teacher", "course:create", true}, // via course:*
		{"teacher", "course:publish", true},
		{"teacher", "submission:grade", true},
		{"teacher", "enrollment:create", false},
		{"teacher", "quiz:take", false},
		{"admin", "anything:at-all", true}, // via *
		{"", "course:view", false},
		{"ghost", "course:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Fatalf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestAny(t *testing.T) {
	c := rbac.NewChecker(nil)
	if !c.Any("student", "enrollment:view", "enrollment:view-own") {
		t.Fatalf("student should pass the view-own alternative")
	}
	if c.Any("student", "enrollment:view", "submission:view") {
		t.Fatalf("student has neither staff perm")
	}
}

func TestWildcardPrefix(t *testing.T) {
	c := rbac.NewChecker(map[string][]string{
		"grader": {"submission:*"},
	})
	if !c.Has("grader", "submission:grade") {
		t.Fatalf("prefix wildcard should match")
	}
	if c.Has("grader", "enrollment:create") {
		t.Fatalf("wildcard must stay within its prefix")
	}
}

func TestRoleContextRoundTrip(t *testing.T) {
	ctx := rbac.WithRole(context.Background(), "teacher")
	if got := rbac.RoleFromContext(ctx); got != "teacher" {
		t.Fatalf("role = %q, want teacher", got)
	}
	if got := rbac.RoleFromContext(context.Background()); got != "" {
		t.Fatalf("empty context should carry no role, got %q", got)
	}
}
