package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/submission"
)

func SubmitAssignmentHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AssignmentID string `json:"assignment_id" validate:"required"`
			Content      string `json:"content"`
			FileURL      string `json:"file_url" validate:"omitempty,url"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Submit(r.Context(), submission.SubmitInput{
			StudentID:    actingStudent(r, ""),
			AssignmentID: req.AssignmentID,
			Content:      req.Content,
			FileURL:      req.FileURL,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func GradeSubmissionHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Score    *int   `json:"score" validate:"required"`
			Feedback string `json:"feedback"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Grade(r.Context(), chi.URLParam(r, "submissionID"), *req.Score, req.Feedback)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func AcceptSubmissionHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Accept(r.Context(), chi.URLParam(r, "submissionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func RejectSubmissionHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Feedback string `json:"feedback" validate:"required"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Reject(r.Context(), chi.URLParam(r, "submissionID"), req.Feedback)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func GetSubmissionHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "submissionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func DeleteSubmissionHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "submissionID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListMySubmissionsHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByStudent(r.Context(), actingStudent(r, r.URL.Query().Get("student_id")))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ListAssignmentSubmissionsHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// ListPendingSubmissionsHandler is the grading queue: everything still in
// the submitted state, oldest first.
func ListPendingSubmissionsHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListPending(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
