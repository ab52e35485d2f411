package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/studyhall/studyhall-lms/internal/api/http"
	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/config"
	"github.com/studyhall/studyhall-lms/internal/db"
	"github.com/studyhall/studyhall-lms/internal/enrollment"
	"github.com/studyhall/studyhall-lms/internal/identity"
	"github.com/studyhall/studyhall-lms/internal/progress"
	"github.com/studyhall/studyhall-lms/internal/quiz"
	"github.com/studyhall/studyhall-lms/internal/rbac"
	"github.com/studyhall/studyhall-lms/internal/review"
	"github.com/studyhall/studyhall-lms/internal/submission"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// Stores.
	userStore := identity.NewSQLStore(dbh)
	catStore := catalog.NewSQLStore(dbh)
	enrStore := enrollment.NewSQLStore(dbh)
	subStore := submission.NewSQLStore(dbh)
	quizStore := quiz.NewSQLStore(dbh)
	revStore := review.NewSQLStore(dbh)
	progStore := progress.NewSQLStore(dbh)

	// Services.
	ids := identity.NewService(userStore)
	cats := catalog.NewService(catStore, userStore)
	enrs := enrollment.NewService(enrStore, userStore, catStore)
	subs := submission.NewService(subStore, userStore, catStore)
	quizzes := quiz.NewService(quizStore, userStore, catStore)
	revs := review.NewService(revStore, userStore, catStore, enrs)
	progs := progress.NewService(progStore, userStore, catStore)

	if err := ids.SeedAdmin(ctx, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", api.LoginHandler(ids, tokens))
	r.Post("/auth/register", api.RegisterHandler(ids))

	// Protected API (JWT → role in context → RBAC).
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(tokens))

		pr.Get("/me", api.MeHandler(ids))
		pr.With(rbac.Require("users:list")).Get("/users", api.ListUsersHandler(ids))

		// Catalog: courses and their content tree.
		pr.With(rbac.Require("course:view")).Get("/courses", api.ListCoursesHandler(cats))
		pr.With(rbac.Require("course:view")).Get("/courses/{courseID}", api.GetCourseHandler(cats))
		pr.With(rbac.Require("course:create")).Post("/courses", api.CreateCourseHandler(cats))
		pr.With(rbac.Require("course:update")).Put("/courses/{courseID}", api.UpdateCourseHandler(cats))
		pr.With(rbac.Require("course:publish")).Post("/courses/{courseID}/publish", api.PublishCourseHandler(cats, true))
		pr.With(rbac.Require("course:publish")).Post("/courses/{courseID}/unpublish", api.PublishCourseHandler(cats, false))
		pr.With(rbac.Require("course:delete")).Delete("/courses/{courseID}", api.DeleteCourseHandler(cats))

		pr.With(rbac.Require("course:view")).Get("/courses/{courseID}/modules", api.ListModulesHandler(cats))
		pr.With(rbac.Require("module:create")).Post("/courses/{courseID}/modules", api.AddModuleHandler(cats))
		pr.With(rbac.Require("course:view")).Get("/modules/{moduleID}/lessons", api.ListLessonsHandler(cats))
		pr.With(rbac.Require("lesson:create")).Post("/modules/{moduleID}/lessons", api.AddLessonHandler(cats))
		pr.With(rbac.Require("course:view")).Get("/lessons/{lessonID}/assignments", api.ListAssignmentsHandler(cats))
		pr.With(rbac.Require("assignment:create")).Post("/lessons/{lessonID}/assignments", api.AddAssignmentHandler(cats))
		pr.With(rbac.Require("quiz:manage")).Post("/modules/{moduleID}/quiz", api.AddQuizHandler(cats))
		pr.With(rbac.Require("quiz:view")).Get("/quizzes/{quizID}", api.GetQuizHandler(cats))
		pr.With(rbac.Require("quiz:manage")).Post("/quizzes/{quizID}/questions", api.AddQuestionHandler(cats))

		// Enrollment lifecycle.
		pr.With(rbac.Require("enrollment:create")).Post("/enrollments", api.EnrollHandler(enrs))
		pr.With(rbac.RequireAny("enrollment:update-own", "enrollment:update")).
			Put("/enrollments/{enrollmentID}/progress", api.UpdateEnrollmentProgressHandler(enrs))
		pr.With(rbac.Require("enrollment:update")).
			Post("/enrollments/{enrollmentID}/complete", api.CompleteEnrollmentHandler(enrs))
		pr.With(rbac.RequireAny("enrollment:update-own", "enrollment:update")).
			Post("/enrollments/{enrollmentID}/drop", api.DropEnrollmentHandler(enrs))
		pr.With(rbac.RequireAny("enrollment:update-own", "enrollment:update")).
			Post("/enrollments/unenroll", api.UnenrollHandler(enrs))
		pr.With(rbac.RequireAny("enrollment:view-own", "enrollment:view")).
			Get("/enrollments", api.ListMyEnrollmentsHandler(enrs))
		pr.With(rbac.RequireAny("enrollment:view-own", "enrollment:view")).
			Get("/enrollments/{enrollmentID}", api.GetEnrollmentHandler(enrs))
		pr.With(rbac.Require("enrollment:view")).
			Get("/courses/{courseID}/enrollments", api.ListCourseEnrollmentsHandler(enrs))

		// Assignment submissions and grading.
		pr.With(rbac.Require("submission:create")).Post("/submissions", api.SubmitAssignmentHandler(subs))
		pr.With(rbac.Require("submission:grade")).Put("/submissions/{submissionID}/grade", api.GradeSubmissionHandler(subs))
		pr.With(rbac.Require("submission:grade")).Post("/submissions/{submissionID}/accept", api.AcceptSubmissionHandler(subs))
		pr.With(rbac.Require("submission:grade")).Post("/submissions/{submissionID}/reject", api.RejectSubmissionHandler(subs))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view")).
			Get("/submissions", api.ListMySubmissionsHandler(subs))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view")).
			Get("/submissions/{submissionID}", api.GetSubmissionHandler(subs))
		pr.With(rbac.Require("submission:view")).
			Get("/assignments/{assignmentID}/submissions", api.ListAssignmentSubmissionsHandler(subs))
		pr.With(rbac.Require("submission:view")).Get("/submissions/pending", api.ListPendingSubmissionsHandler(subs))
		pr.With(rbac.Require("submission:grade")).Delete("/submissions/{submissionID}", api.DeleteSubmissionHandler(subs))

		// Quiz attempts.
		pr.With(rbac.Require("quiz:take")).Post("/quizzes/{quizID}/take", api.TakeQuizHandler(quizzes))
		pr.With(rbac.RequireAny("quiz:view-own-results", "quiz:view-results")).
			Get("/quiz-results", api.ListMyQuizResultsHandler(quizzes))
		pr.With(rbac.RequireAny("quiz:view-own-results", "quiz:view-results")).
			Get("/quiz-results/{resultID}", api.GetQuizResultHandler(quizzes))
		pr.With(rbac.Require("quiz:view-results")).
			Get("/quizzes/{quizID}/results", api.ListQuizResultsHandler(quizzes))

		// Course reviews.
		pr.With(rbac.Require("review:create")).Post("/reviews", api.CreateReviewHandler(revs))
		pr.With(rbac.Require("review:update-own")).Put("/reviews/{reviewID}", api.UpdateReviewHandler(revs))
		pr.With(rbac.Require("review:update-own")).Delete("/reviews/{reviewID}", api.DeleteReviewHandler(revs))
		pr.With(rbac.Require("review:view")).Get("/courses/{courseID}/reviews", api.ListCourseReviewsHandler(revs))
		pr.With(rbac.Require("review:view")).Get("/courses/{courseID}/rating", api.CourseRatingHandler(revs))
		pr.With(rbac.Require("review:view")).Get("/reviews", api.ListMyReviewsHandler(revs))

		// Lesson progress.
		pr.With(rbac.Require("progress:update-own")).Post("/lessons/{lessonID}/start", api.StartLessonHandler(progs))
		pr.With(rbac.Require("progress:update-own")).Post("/lessons/{lessonID}/complete", api.CompleteLessonHandler(progs))
		pr.With(rbac.RequireAny("progress:update-own", "enrollment:view")).
			Get("/progress", api.ListMyProgressHandler(progs))
		pr.With(rbac.RequireAny("progress:update-own", "enrollment:view")).
			Get("/courses/{courseID}/progress", api.CourseProgressHandler(progs))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
