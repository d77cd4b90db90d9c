package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/dto"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// expenseHandler handles HTTP requests for individual expenses.
type expenseHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &expenseHandler{ledgerService: ledgerService}

	expenses := rg.Group("/expenses")
	{
		expenses.GET("/:id", h.getExpense)
	}
}

// getExpense godoc
// @Summary Get an expense
// @Description Returns an expense with its splits. The caller must be a member of the expense's group.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.ledgerService.GetExpense(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
