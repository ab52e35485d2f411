package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/review"
)

func CreateReviewHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID string `json:"course_id" validate:"required"`
			Rating   int    `json:"rating" validate:"required,min=1,max=5"`
			Comment  string `json:"comment"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Create(r.Context(), review.CreateInput{
			StudentID: actingStudent(r, ""),
			CourseID:  req.CourseID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func UpdateReviewHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Rating  int    `json:"rating" validate:"required,min=1,max=5"`
			Comment string `json:"comment"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Update(r.Context(), chi.URLParam(r, "reviewID"), req.Rating, req.Comment)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func DeleteReviewHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListCourseReviewsHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ListMyReviewsHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByStudent(r.Context(), actingStudent(r, r.URL.Query().Get("student_id")))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
