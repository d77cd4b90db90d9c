package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/dto"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := &userHandler{userService: userService, balanceService: balanceService}

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/me", h.getCurrentUser)
		users.GET("/me/breakdowns", h.getBreakdowns)
	}
}

// listUsers godoc
// @Summary List users
// @Description Returns all registered users, for picking group members.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the currently authenticated user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getBreakdowns godoc
// @Summary Get balance breakdowns across groups
// @Description Returns paid, owed and net totals for every group the user belongs to.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListBreakdownsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/breakdowns [get]
func (h *userHandler) getBreakdowns(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	breakdowns, err := h.balanceService.GetUserBreakdowns(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GroupBreakdownResponse, len(breakdowns))
	for i := range breakdowns {
		responses[i] = dto.ToGroupBreakdownResponse(&breakdowns[i])
	}
	c.JSON(http.StatusOK, dto.ListBreakdownsResponse{Breakdowns: responses})
}
