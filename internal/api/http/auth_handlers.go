package http

import (
	"net/http"

	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

func LoginHandler(ids *identity.Service, tokens *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		u, err := ids.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			// Credentials failures surface as 401, not the taxonomy mapping.
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := tokens.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": tok,
			"user":  u,
		})
	}
}

func RegisterHandler(ids *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username" validate:"required"`
			Name     string `json:"name" validate:"required"`
			Email    string `json:"email" validate:"required,email"`
			Role     string `json:"role" validate:"required,oneof=student teacher admin"`
			Password string `json:"password" validate:"required,min=8"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		u, err := ids.Register(r.Context(), identity.RegisterInput{
			Username: req.Username,
			Name:     req.Name,
			Email:    req.Email,
			Role:     req.Role,
			Password: req.Password,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func MeHandler(ids *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := ids.Get(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func ListUsersHandler(ids *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := ids.List(r.Context(), r.URL.Query().Get("role"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}
