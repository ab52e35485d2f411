package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/quiz"
)

func TakeQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers      map[string]string `json:"answers" validate:"required"`
			TimeSpentSec int               `json:"time_spent_sec" validate:"min=0"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		v, err := svc.Take(r.Context(), quiz.TakeInput{
			StudentID:    actingStudent(r, ""),
			QuizID:       chi.URLParam(r, "quizID"),
			Answers:      req.Answers,
			TimeSpentSec: req.TimeSpentSec,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func GetQuizResultHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "resultID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func ListMyQuizResultsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByStudent(r.Context(), actingStudent(r, r.URL.Query().Get("student_id")))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ListQuizResultsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
