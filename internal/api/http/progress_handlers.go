package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/progress"
)

func StartLessonHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.StartLesson(r.Context(), actingStudent(r, ""), chi.URLParam(r, "lessonID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func CompleteLessonHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TimeSpentMin int `json:"time_spent_min" validate:"min=0"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		p, err := svc.CompleteLesson(r.Context(), actingStudent(r, ""), chi.URLParam(r, "lessonID"), req.TimeSpentMin)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func ListMyProgressHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByStudent(r.Context(), actingStudent(r, r.URL.Query().Get("student_id")))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// CourseProgressHandler reports the completed-lessons percentage for the
// student in the course. It does not touch the enrollment record.
func CourseProgressHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		studentID := actingStudent(r, r.URL.Query().Get("student_id"))
		pct, err := svc.CoursePercent(r.Context(), studentID, courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"course_id":  courseID,
			"student_id": studentID,
			"percent":    pct,
		})
	}
}
