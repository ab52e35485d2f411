package identity

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Role     string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Name == "" || in.Email == "" {
		return User{}, errs.Validationf("username, name and email are required")
	}
	if !ValidRole(in.Role) {
		return User{}, errs.Validationf("unknown role %q", in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u, err := s.store.Create(ctx, User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return User{}, err
	}
	log.Printf("identity: registered %s (%s)", u.Username, u.Role)
	return u, nil
}

// Authenticate resolves username+password to a user. Failures are reported as
// not-found regardless of which check failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return User{}, errs.NotFoundf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, errs.NotFoundf("invalid credentials")
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	if role != "" && !ValidRole(role) {
		return nil, errs.Validationf("unknown role %q", role)
	}
	return s.store.List(ctx, role)
}

// SeedAdmin upserts the configured admin account at startup.
func (s *Service) SeedAdmin(ctx context.Context, username, passHash string) error {
	_, err := s.store.Upsert(ctx, User{
		Username:     username,
		Name:         "Administrator",
		Email:        username + "@studyhall.local",
		Role:         RoleAdmin,
		PasswordHash: passHash,
	})
	return err
}
