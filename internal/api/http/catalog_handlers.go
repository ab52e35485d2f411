package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/rbac"
	"github.com/studyhall/studyhall-lms/internal/review"
)

func CreateCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title         string `json:"title" validate:"required"`
			Description   string `json:"description"`
			DurationHours int    `json:"duration_hours" validate:"min=0"`
			StartDate     int64  `json:"start_date"`
			EndDate       int64  `json:"end_date"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		actor := auth.SubjectFromContext(r.Context())
		c, err := svc.CreateCourse(r.Context(), actor, catalog.Course{
			Title:         req.Title,
			Description:   req.Description,
			DurationHours: req.DurationHours,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			TeacherID:     actor,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func UpdateCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		cur, err := svc.GetCourse(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		var req struct {
			Title         string `json:"title" validate:"required"`
			Description   string `json:"description"`
			DurationHours int    `json:"duration_hours" validate:"min=0"`
			StartDate     int64  `json:"start_date"`
			EndDate       int64  `json:"end_date"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		cur.Title = req.Title
		cur.Description = req.Description
		cur.DurationHours = req.DurationHours
		cur.StartDate = req.StartDate
		cur.EndDate = req.EndDate
		c, err := svc.UpdateCourse(r.Context(), cur)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func PublishCourseHandler(svc *catalog.Service, published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Publish(r.Context(), chi.URLParam(r, "courseID"), published)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func DeleteCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetCourseHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// ListCoursesHandler is shared by students and staff. Students only ever see
// published courses regardless of the query flags.
func ListCoursesHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := catalog.ListOpts{
			Q:         q.Get("q"),
			TeacherID: q.Get("teacher_id"),
		}
		opts.Limit, _ = strconv.Atoi(q.Get("limit"))
		opts.Offset, _ = strconv.Atoi(q.Get("offset"))
		role := rbac.RoleFromContext(r.Context())
		if role == "student" || q.Get("published") == "true" {
			opts.PublishedOnly = true
		}
		out, err := svc.ListCourses(r.Context(), opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func AddModuleHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title      string `json:"title" validate:"required"`
			OrderIndex int    `json:"order_index" validate:"min=0"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		m, err := svc.AddModule(r.Context(), catalog.Module{
			CourseID:   chi.URLParam(r, "courseID"),
			Title:      req.Title,
			OrderIndex: req.OrderIndex,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func ListModulesHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListModules(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func AddLessonHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title      string `json:"title" validate:"required"`
			Content    string `json:"content"`
			OrderIndex int    `json:"order_index" validate:"min=0"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		l, err := svc.AddLesson(r.Context(), catalog.Lesson{
			ModuleID:   chi.URLParam(r, "moduleID"),
			Title:      req.Title,
			Content:    req.Content,
			OrderIndex: req.OrderIndex,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
	}
}

func ListLessonsHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListLessons(r.Context(), chi.URLParam(r, "moduleID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func AddAssignmentHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title       string `json:"title" validate:"required"`
			Description string `json:"description"`
			DueDate     int64  `json:"due_date"`
			MaxScore    int    `json:"max_score" validate:"min=0"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		a, err := svc.AddAssignment(r.Context(), catalog.Assignment{
			LessonID:    chi.URLParam(r, "lessonID"),
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			MaxScore:    req.MaxScore,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

func ListAssignmentsHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListAssignments(r.Context(), chi.URLParam(r, "lessonID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func AddQuizHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title        string `json:"title" validate:"required"`
			Description  string `json:"description"`
			TimeLimitMin int    `json:"time_limit_min" validate:"min=0"`
			PassingScore int    `json:"passing_score" validate:"min=0,max=100"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := svc.AddQuiz(r.Context(), catalog.Quiz{
			ModuleID:     chi.URLParam(r, "moduleID"),
			Title:        req.Title,
			Description:  req.Description,
			TimeLimitMin: req.TimeLimitMin,
			PassingScore: req.PassingScore,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// GetQuizHandler serves the full quiz to staff and the answer-stripped shape
// to students.
func GetQuizHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		if rbac.RoleFromContext(r.Context()) == "student" {
			q, err := svc.GetQuizForStudent(r.Context(), id)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, q)
			return
		}
		q, err := svc.GetQuiz(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func AddQuestionHandler(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text       string `json:"text" validate:"required"`
			Type       string `json:"type" validate:"omitempty,oneof=single_choice multiple_choice true_false"`
			Points     int    `json:"points" validate:"min=0"`
			OrderIndex int    `json:"order_index" validate:"min=0"`
			Options    []struct {
				Text      string `json:"text" validate:"required"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options" validate:"omitempty,dive"`
		}
		if err := decode(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := svc.AddQuestion(r.Context(), catalog.Question{
			QuizID:     chi.URLParam(r, "quizID"),
			Text:       req.Text,
			Type:       req.Type,
			Points:     req.Points,
			OrderIndex: req.OrderIndex,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		for _, o := range req.Options {
			opt, err := svc.AddAnswerOption(r.Context(), catalog.AnswerOption{
				QuestionID: q.ID,
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
			})
			if err != nil {
				writeErr(w, err)
				return
			}
			q.Options = append(q.Options, opt)
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// CourseRatingHandler reports the running average for a course's reviews.
func CourseRatingHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		avg, err := svc.AverageRating(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"course_id": courseID, "average_rating": avg})
	}
}
