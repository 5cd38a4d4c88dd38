package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupHandlerTestEnv builds an in-memory database and a router with the
// same route layout as cmd/server, backed by a cookie session store.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	statusHandler := NewStatusHandler(services.NewStatusService(statusRepo))
	labelHandler := NewLabelHandler(services.NewLabelService(labelRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, statusRepo, labelRepo, userRepo, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", middleware.RequireAuth(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.DeleteUser)
		}

		statuses := api.Group("/statuses")
		statuses.Use(middleware.RequireAuth())
		{
			statuses.GET("", statusHandler.ListStatuses)
			statuses.POST("", statusHandler.CreateStatus)
			statuses.GET("/:id", statusHandler.GetStatus)
			statuses.PATCH("/:id", statusHandler.UpdateStatus)
			statuses.DELETE("/:id", statusHandler.DeleteStatus)
		}

		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.GET("", labelHandler.ListLabels)
			labels.POST("", labelHandler.CreateLabel)
			labels.GET("/:id", labelHandler.GetLabel)
			labels.PATCH("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return handlerTestEnv{db: db, router: r}
}

// do performs a request against the test router. Cookies carry the session
// between calls.
func (env handlerTestEnv) do(t *testing.T, method, url string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signupUser registers a user through the API and returns the user together
// with the session cookies of the fresh login.
func (env handlerTestEnv) signupUser(t *testing.T, username string) (dto.UserDTO, []*http.Cookie) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username":         username,
		"password":         "NewPass123",
		"password_confirm": "NewPass123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie after signup")

	return user, cookies
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
