package http

import (
	"net/http"

	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/rbac"
)

// actingStudent resolves which student an operation applies to. Students
// always act for themselves; staff may name a student in the request.
func actingStudent(r *http.Request, override string) string {
	if rbac.RoleFromContext(r.Context()) == "student" || override == "" {
		return auth.SubjectFromContext(r.Context())
	}
	return override
}
