package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/middleware"
	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

// DebtHandler handles debt API requests
type DebtHandler struct {
	debtService *service.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *service.DebtService) *DebtHandler {
	return &DebtHandler{
		debtService: debtService,
	}
}

// ListDebts handles listing the debts of the authenticated user
// GET /debts/
func (h *DebtHandler) ListDebts(c *gin.Context) {
	user := middleware.GetUser(c)

	debts, err := h.debtService.ListDebts(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Success(c, debts)
}

// CreateDebt handles debt creation
// POST /debts/
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	user := middleware.GetUser(c)

	var req service.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), user.ID, &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Success(c, debt)
}

// UpdateDebt handles a partial debt update
// PUT /debts/:id
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	user := middleware.GetUser(c)

	var patch models.DebtPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	debt, err := h.debtService.UpdateDebt(c.Request.Context(), user.ID, c.Param("id"), &patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, debt)
}

// DeleteDebt handles deleting a debt
// DELETE /debts/:id
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.debtService.DeleteDebt(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "Debt deleted")
}

func (h *DebtHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		response.BadRequest(c, "Invalid debt ID format")
	case errors.Is(err, models.ErrNullField), errors.Is(err, models.ErrInvalidField):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDebtNotFound):
		response.NotFound(c, "Debt not found")
	default:
		internalError(c, err)
	}
}

// RegisterRoutes registers debt routes
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	debts := rg.Group("/debts")
	debts.Use(authMiddleware)
	{
		debts.GET("/", h.ListDebts)
		debts.POST("/", h.CreateDebt)
		debts.PUT("/:id", h.UpdateDebt)
		debts.DELETE("/:id", h.DeleteDebt)
	}
}
