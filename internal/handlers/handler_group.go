package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spendly/spendly_backend/internal/core/domain"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/dto"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// groupHandler handles HTTP requests related to groups and everything scoped
// to a group: expenses, balances, settlements and chat.
type groupHandler struct {
	groupService      portssvc.GroupSvcFacade
	ledgerService     portssvc.LedgerSvcFacade
	balanceService    portssvc.BalanceSvcFacade
	settlementService portssvc.SettlementSvcFacade
	chatService       portssvc.ChatSvcFacade
}

// registerGroupRoutes registers all group-related routes.
func registerGroupRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &groupHandler{
		groupService:      services.Group,
		ledgerService:     services.Ledger,
		balanceService:    services.Balance,
		settlementService: services.Settlement,
		chatService:       services.Chat,
	}

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:id", h.getGroup)
		groups.POST("/:id/members", h.addMember)
		groups.GET("/:id/breakdown", h.getBreakdown)
		groups.POST("/:id/expenses", h.createExpense)
		groups.GET("/:id/expenses", h.listExpenses)
		groups.GET("/:id/settlements/proposal", h.proposeSettlements)
		groups.POST("/:id/settlements", h.recordSettlement)
		groups.POST("/:id/messages", h.postMessage)
		groups.GET("/:id/messages", h.listMessages)
	}
}

// createGroup godoc
// @Summary Create a group
// @Description Creates a group with the caller and any members resolved from the given emails.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listGroups godoc
// @Summary List groups
// @Description Returns every group the caller is a member of.
// @Tags groups
// @Produce json
// @Success 200 {object} dto.ListGroupsResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	groups, err := h.groupService.ListGroupsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListGroupsResponse(groups))
}

// getGroup godoc
// @Summary Get a group
// @Description Returns a group with its member roster. The caller must be a member.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// addMember godoc
// @Summary Add a group member
// @Description Adds a registered user, looked up by email, to the group.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param member body dto.AddMemberRequest true "Member email"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/members [post]
func (h *groupHandler) addMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	group, err := h.groupService.AddMember(c.Request.Context(), c.Param("id"), req.Email, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// getBreakdown godoc
// @Summary Get the group balance breakdown
// @Description Returns paid, owed and net totals for every member of the group.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupBreakdownResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/breakdown [get]
func (h *groupHandler) getBreakdown(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	breakdown, err := h.balanceService.GetGroupBreakdown(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupBreakdownResponse(breakdown))
}

// createExpense godoc
// @Summary Record an expense
// @Description Records an expense with a split plan. The payer defaults to the caller.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/expenses [post]
func (h *groupHandler) createExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	amount, err := domain.MoneyFromDecimal(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := req.Plan.ToDomainPlan()
	if err != nil {
		respondError(c, err)
		return
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = userID
	}

	expense, err := h.ledgerService.RecordExpense(c.Request.Context(), c.Param("id"), paidBy, amount, req.Description, domain.KindRegular, plan, nil, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List group expenses
// @Description Returns all expenses of the group with their splits, oldest first.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/expenses [get]
func (h *groupHandler) listExpenses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expenses, err := h.ledgerService.ListGroupExpenses(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// proposeSettlements godoc
// @Summary Propose settlement transfers
// @Description Returns a minimal set of transfers that would zero out the group's balances.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ProposeSettlementsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements/proposal [get]
func (h *groupHandler) proposeSettlements(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfers, err := h.settlementService.ProposeSettlements(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProposeSettlementsResponse(transfers))
}

// recordSettlement godoc
// @Summary Record a settlement
// @Description Records a debtor-to-creditor payment as a settlement expense.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements [post]
func (h *groupHandler) recordSettlement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	amount, err := domain.MoneyFromDecimal(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	expense, err := h.settlementService.RecordSettlement(c.Request.Context(), c.Param("id"), req.DebtorID, req.CreditorID, amount, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// postMessage godoc
// @Summary Post a chat message
// @Description Stores a message; messages describing an expense are recorded on the ledger and answered with a confirmation message.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param message body dto.PostMessageRequest true "Message body"
// @Success 201 {object} dto.ListMessagesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/messages [post]
func (h *groupHandler) postMessage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	messages, err := h.chatService.PostMessage(c.Request.Context(), c.Param("id"), userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToListMessagesResponse(messages))
}

// listMessages godoc
// @Summary List chat messages
// @Description Returns group chat history, oldest first. An optional limit caps the number of messages.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param limit query int false "Maximum number of messages"
// @Success 200 {object} dto.ListMessagesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/messages [get]
func (h *groupHandler) listMessages(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), c.Param("id"), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListMessagesResponse(messages))
}
