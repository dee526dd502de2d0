package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/middleware"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

// GoalHandler handles goal API requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// GetGoal returns the goal of the authenticated user, or null
// GET /goals/
func (h *GoalHandler) GetGoal(c *gin.Context) {
	user := middleware.GetUser(c)

	goal, err := h.goalService.GetGoal(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Success(c, goal)
}

// UpsertGoal sets the goal of the authenticated user
// PUT /goals/
func (h *GoalHandler) UpsertGoal(c *gin.Context) {
	user := middleware.GetUser(c)

	var req service.UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.UpsertGoal(c.Request.Context(), user.ID, &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Success(c, goal)
}

// RegisterRoutes registers goal routes
func (h *GoalHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	goals := rg.Group("/goals")
	goals.Use(authMiddleware)
	{
		goals.GET("/", h.GetGoal)
		goals.PUT("/", h.UpsertGoal)
	}
}
