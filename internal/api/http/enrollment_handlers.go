package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/enrollment"
)

func EnrollHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID  string `json:"course_id" validate:"required"`
			StudentID string `json:"student_id"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Enroll(r.Context(), actingStudent(r, req.StudentID), req.CourseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func UpdateEnrollmentProgressHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Progress int `json:"progress" validate:"min=0,max=100"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.UpdateProgress(r.Context(), chi.URLParam(r, "enrollmentID"), req.Progress)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func CompleteEnrollmentHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Complete(r.Context(), chi.URLParam(r, "enrollmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func DropEnrollmentHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Drop(r.Context(), chi.URLParam(r, "enrollmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func UnenrollHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID  string `json:"course_id" validate:"required"`
			StudentID string `json:"student_id"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		if err := svc.Unenroll(r.Context(), actingStudent(r, req.StudentID), req.CourseID); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetEnrollmentHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "enrollmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// ListMyEnrollmentsHandler returns the caller's enrollments; ?active=true
// narrows to active ones.
func ListMyEnrollmentsHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := actingStudent(r, r.URL.Query().Get("student_id"))
		var (
			out []enrollment.View
			err error
		)
		if r.URL.Query().Get("active") == "true" {
			out, err = svc.ListActiveByStudent(r.Context(), studentID)
		} else {
			out, err = svc.ListByStudent(r.Context(), studentID)
		}
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ListCourseEnrollmentsHandler(svc *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
