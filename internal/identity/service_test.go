package identity_test

import (
	"context"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

func register(t *testing.T, svc *identity.Service, username, role string) identity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), identity.RegisterInput{
		Username: username,
		Name:     "Test " + username,
		Email:    username + "@example.com",
		Role:     role,
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := identity.NewService(identity.NewInMemoryStore())
	u := register(t, svc, "alice", identity.RoleStudent)

	if u.ID == "" || u.PasswordHash == "hunter2hunter2" {
		t.Fatalf("user not stored safely: %+v", u)
	}

	got, err := svc.Authenticate(context.Background(), "alice", "hunter2hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated wrong user")
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); err == nil {
		t.Fatalf("bad password accepted")
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "hunter2hunter2"); err == nil {
		t.Fatalf("unknown user accepted")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := identity.NewService(identity.NewInMemoryStore())

	_, err := svc.Register(context.Background(), identity.RegisterInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Role: "superuser", Password: "x",
	})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("bad role: err = %v, want validation", err)
	}

	_, err = svc.Register(context.Background(), identity.RegisterInput{
		Username: " ", Name: "Bob", Email: "bob@example.com", Role: identity.RoleStudent, Password: "x",
	})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("blank username: err = %v, want validation", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := identity.NewService(identity.NewInMemoryStore())
	register(t, svc, "alice", identity.RoleStudent)

	_, err := svc.Register(context.Background(), identity.RegisterInput{
		Username: "alice", Name: "Other Alice", Email: "other@example.com",
		Role: identity.RoleStudent, Password: "something-else",
	})
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc := identity.NewService(identity.NewInMemoryStore())
	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	for i := 0; i < 2; i++ {
		if err := svc.SeedAdmin(context.Background(), "admin", hash); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	admins, err := svc.List(context.Background(), identity.RoleAdmin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
}

func TestListFiltersByRole(t *testing.T) {
	svc := identity.NewService(identity.NewInMemoryStore())
	register(t, svc, "alice", identity.RoleStudent)
	register(t, svc, "carol", identity.RoleTeacher)

	students, err := svc.List(context.Background(), identity.RoleStudent)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 1 || students[0].Username != "alice" {
		t.Fatalf("students = %+v", students)
	}
	if _, err := svc.List(context.Background(), "wizard"); errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}
