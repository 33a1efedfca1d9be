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

	api "github.com/projectpulse/projectpulse/internal/api/http"
	"github.com/projectpulse/projectpulse/internal/audit"
	auth "github.com/projectpulse/projectpulse/internal/auth/middleware"
	"github.com/projectpulse/projectpulse/internal/config"
	"github.com/projectpulse/projectpulse/internal/db"
	"github.com/projectpulse/projectpulse/internal/evaluation"
	"github.com/projectpulse/projectpulse/internal/project"
	"github.com/projectpulse/projectpulse/internal/rbac"
	"github.com/projectpulse/projectpulse/internal/task"
)

func main() {
	_ = godotenv.Load() // dev convenience; real deployments set env directly
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := auth.EnsureAdmin(ctx, dbh, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	// --- Rubric (loaded once, injected everywhere) ---
	rubric := evaluation.DefaultRubric()
	if cfg.RubricPath != "" {
		rubric, err = evaluation.LoadRubricFile(cfg.RubricPath)
		if err != nil {
			log.Fatalf("rubric: %v", err)
		}
	}
	if err := rubric.Validate(); err != nil {
		log.Fatalf("rubric: %v", err)
	}

	// --- Stores & services ---
	projects := project.NewSQLStore(dbh, cfg.DBDriver)
	tasks := task.NewSQLStore(dbh, cfg.DBDriver)
	evals := evaluation.NewService(rubric,
		evaluation.NewSQLStore(dbh, cfg.DBDriver),
		audit.NewEventRepo(dbh), nil)

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		pr.With(rbac.Require("evaluation:view")).
			Get("/rubric", api.RubricHandler(rubric))

		pr.With(rbac.Require("project:create")).
			Post("/projects", api.CreateProjectHandler(projects))
		pr.With(rbac.Require("project:view")).
			Get("/projects", api.ListProjectsHandler(projects))
		pr.With(rbac.Require("project:view")).
			Get("/projects/{projectID}", api.GetProjectHandler(projects))
		pr.With(rbac.Require("project:update")).
			Put("/projects/{projectID}", api.UpdateProjectHandler(projects))
		pr.With(rbac.Require("project:delete")).
			Delete("/projects/{projectID}", api.DeleteProjectHandler(projects))

		pr.With(rbac.Require("task:create")).
			Post("/projects/{projectID}/tasks", api.CreateTaskHandler(tasks, projects))
		pr.With(rbac.Require("task:view")).
			Get("/projects/{projectID}/tasks", api.ListTasksHandler(tasks))
		pr.With(rbac.Require("task:view")).
			Get("/tasks/{taskID}", api.GetTaskHandler(tasks))
		pr.With(rbac.Require("task:update")).
			Put("/tasks/{taskID}", api.UpdateTaskHandler(tasks))
		pr.With(rbac.Require("task:delete")).
			Delete("/tasks/{taskID}", api.DeleteTaskHandler(tasks))

		pr.With(rbac.Require("evaluation:submit")).
			Post("/projects/{projectID}/evaluations", api.SubmitEvaluationHandler(evals, projects))
		pr.With(rbac.Require("evaluation:view")).
			Get("/projects/{projectID}/evaluations", api.ListEvaluationsHandler(evals))
		pr.With(rbac.Require("evaluation:view")).
			Get("/projects/{projectID}/evaluations/summary", api.EvaluationSummaryHandler(evals))
		pr.With(rbac.Require("evaluation:view")).
			Get("/evaluations/{evaluationID}", api.GetEvaluationHandler(evals))
		pr.With(rbac.Require("evaluation:submit")).
			Put("/evaluations/{evaluationID}", api.ReplaceEvaluationHandler(evals))
		pr.With(rbac.Require("evaluation:delete")).
			Delete("/evaluations/{evaluationID}", api.DeleteEvaluationHandler(evals))

		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("users:create")).
			Post("/users", api.CreateUserHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
