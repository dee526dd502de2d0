package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/config"
	"github.com/pathlight/internal/middleware"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

// Services bundles what the HTTP layer needs
type Services struct {
	Auth   *service.AuthService
	Debts  *service.DebtService
	Goals  *service.GoalService
	Health *service.HealthService
}

// NewRouter builds the gin engine with every route mounted under cfg.APIPrefix
func NewRouter(cfg config.ServerConfig, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to PathLight Backend"})
	})

	v1 := router.Group(cfg.APIPrefix)
	{
		authMiddleware := middleware.AuthMiddleware(svc.Auth)

		NewHealthHandler(svc.Health).RegisterRoutes(v1)
		NewAuthHandler(svc.Auth).RegisterRoutes(v1, authMiddleware)
		NewDebtHandler(svc.Debts).RegisterRoutes(v1, authMiddleware)
		NewGoalHandler(svc.Goals).RegisterRoutes(v1, authMiddleware)
	}

	return router
}

// internalError answers 500 without detail; the error is kept for the request log
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.InternalError(c, "internal server error")
}
