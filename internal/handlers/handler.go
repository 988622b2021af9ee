package handlers

import (
	"errors"
	"net/http"

	"taskmanager/internal/logger"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public: signup and login are the only unauthenticated operations
	router.POST("/users", h.signUp)
	router.POST("/users/login", h.login)

	// Everything else requires a bearer token
	authed := router.Group("/", h.authMiddleware)
	{
		h.registerUserRoutes(authed)
		h.registerTaskRoutes(authed)
	}

	return router
}

func (h *Handler) registerUserRoutes(r *gin.RouterGroup) {
	r.POST("/users/logout", h.logout)
	r.POST("/users/logoutall", h.logoutAll)

	me := r.Group("/users/me")
	{
		me.GET("", h.getMe)
		me.PATCH("", h.updateMe)
		me.DELETE("", h.deleteMe)

		me.POST("/avatar", h.uploadAvatar)
		me.GET("/avatar", h.getAvatar)
		me.DELETE("/avatar", h.deleteAvatar)
	}
}

func (h *Handler) registerTaskRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("", h.listTasks)
		tasks.GET("/:id", h.getTask)
		tasks.PATCH("/:id", h.updateTask)
		tasks.DELETE("/:id", h.deleteTask)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps domain errors onto the HTTP taxonomy. Store failures
// become an opaque 500; their detail goes to the log only.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	default:
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
	}
	c.JSON(status, gin.H{"error": msg})
}
