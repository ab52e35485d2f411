package identity

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/db"
	"github.com/studyhall/studyhall-lms/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

func (s *SQLStore) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	now := time.Now().Unix()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,username,name,email,role,password_hash,created_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Username, u.Name, u.Email, u.Role, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, errs.Duplicate("username or email already taken")
		}
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) Upsert(ctx context.Context, u User) (User, error) {
	existing, err := s.GetByUsername(ctx, u.Username)
	switch {
	case err == nil:
		existing.Name, existing.Email, existing.Role = u.Name, u.Email, u.Role
		if u.PasswordHash != "" {
			existing.PasswordHash = u.PasswordHash
		}
		existing.UpdatedAt = time.Now().Unix()
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET name=$1, email=$2, role=$3, password_hash=$4, updated_at=$5 WHERE id=$6`,
			existing.Name, existing.Email, existing.Role, existing.PasswordHash, existing.UpdatedAt, existing.ID)
		if err != nil {
			return User{}, err
		}
		return existing, nil
	case errs.IsKind(err, errs.KindNotFound):
		return s.Create(ctx, u)
	default:
		return User{}, err
	}
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id,username,name,email,role,password_hash,created_at,updated_at FROM users WHERE id=$1`, id))
}

func (s *SQLStore) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id,username,name,email,role,password_hash,created_at,updated_at FROM users WHERE username=$1`, username))
}

func (s *SQLStore) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, errs.NotFoundf("user not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) List(ctx context.Context, role string) ([]User, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if role == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,username,name,email,role,password_hash,created_at,updated_at FROM users ORDER BY username`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,username,name,email,role,password_hash,created_at,updated_at FROM users WHERE role=$1 ORDER BY username`, role)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
