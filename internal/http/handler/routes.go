package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"edusync/internal/model"
	"edusync/internal/repository"
	"edusync/internal/service"
)

// Deps carries everything the route table needs. Repositories are injected as
// interfaces so handler tests run against mocks without a database.
type Deps struct {
	Users       repository.UserRepository
	Courses     repository.Crud[model.Course]
	Assessments repository.Crud[model.Assessment]
	Results     repository.Crud[model.Result]

	UserSvc   service.UserService
	UploadSvc service.UploadService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Route names
// match the original API surface so existing clients keep working.
func RegisterRoutes(app *fiber.App, db *sql.DB, deps Deps) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	// Users get a prepare hook that replaces the incoming secret with its
	// bcrypt hash before it touches the database.
	hashSecret := func(u *model.User) error {
		h, err := deps.UserSvc.HashSecret(u.PasswordHash)
		if err != nil {
			return err
		}
		u.PasswordHash = h
		return nil
	}
	registerCrud[model.User](api, "UserModels", deps.Users, hashSecret)
	api.Post("/UserModels/login", Login(deps.UserSvc))

	registerCrud[model.Course](api, "CourseModels", deps.Courses, nil)
	registerCrud[model.Assessment](api, "AssessmentModels", deps.Assessments, nil)
	registerCrud[model.Result](api, "ResultModels", deps.Results, nil)

	upload := api.Group("/FileUpload")
	upload.Post("/", UploadFile(deps.UploadSvc))
	upload.Get("/diagnostics", UploadDiagnostics(deps.UploadSvc))
	upload.Get("/test-connection", TestConnection(deps.UploadSvc))
	upload.Post("/test-upload", TestUpload(deps.UploadSvc))
}

// registerCrud mounts the uniform five-route CRUD surface for one entity type.
func registerCrud[T model.Entity](r fiber.Router, name string, repo repository.Crud[T], prepare func(*T) error) {
	g := r.Group("/" + name)
	g.Get("/", ListEntities(repo))
	g.Get("/:id", GetEntity(repo))
	g.Post("/", CreateEntity(name, repo, prepare))
	g.Put("/:id", UpdateEntity(repo, prepare))
	g.Delete("/:id", DeleteEntity(repo))
}
