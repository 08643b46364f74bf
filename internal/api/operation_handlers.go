package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type ExecuteOperationRequest struct {
	Pair        string  `json:"pair" binding:"required"`
	Exchanges   string  `json:"exchanges" binding:"required"`
	Percentage  float64 `json:"percentage" binding:"required,gt=0"`
	Profit      float64 `json:"profit" binding:"required,gt=0"`
	TotalReturn float64 `json:"total_return" binding:"required,gt=0"`
}

type OperationHandler struct {
	ledgerService      service.LedgerService
	accountService     service.AccountService
	opportunityService service.OpportunityService
	logService         service.LogService
}

func NewOperationHandler(ledgerService service.LedgerService, accountService service.AccountService, opportunityService service.OpportunityService, logService service.LogService) *OperationHandler {
	return &OperationHandler{
		ledgerService:      ledgerService,
		accountService:     accountService,
		opportunityService: opportunityService,
		logService:         logService,
	}
}

// @Summary Get the current arbitrage opportunity
// @Description Returns the opportunity on offer, optionally quoted against an investment value
// @Tags Operations
// @Produce json
// @Security BearerAuth
// @Param investment query number false "Investment value to quote (default 1000)"
// @Success 200 {object} map[string]interface{} "Opportunity and quote"
// @Router /opportunity [get]
func (h *OperationHandler) GetOpportunity(c *gin.Context) {
	investment := 1000.0
	if investmentStr := c.Query("investment"); investmentStr != "" {
		parsed, err := strconv.ParseFloat(investmentStr, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investment value"})
			return
		}
		investment = parsed
	}

	opportunity := h.opportunityService.Current()
	c.JSON(http.StatusOK, gin.H{
		"opportunity": opportunity,
		"quote":       service.Quote(investment, opportunity.Percentage),
	})
}

// @Summary Execute an arbitrage operation
// @Description Appends an operation record and credits its profit. Blocked while the post-first-operation cooldown is running.
// @Tags Operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param operation body ExecuteOperationRequest true "Operation data"
// @Success 201 {object} models.Operation
// @Failure 400 {object} map[string]string "Invalid JSON or parameters"
// @Failure 429 {object} map[string]string "Cooldown active"
// @Router /operations [post]
func (h *OperationHandler) ExecuteOperation(c *gin.Context) {
	var req ExecuteOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	email := c.GetString("email")
	user, err := h.accountService.GetUserByEmail(email)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// The ledger itself does not know about cooldowns; gating happens here,
	// at the caller.
	if user.InCooldown(time.Now()) {
		abortWithServiceError(c, service.ErrCooldownActive)
		return
	}

	op, err := h.ledgerService.ExecuteOperation(email, req.Pair, req.Exchanges, req.Percentage, req.Profit, req.TotalReturn)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	metadata := map[string]interface{}{
		"operation_id": op.ID.Hex(),
		"pair":         op.Pair,
		"profit":       op.Profit,
	}
	if err := h.logService.LogAction(email, "OperationExecuted", "Arbitrage operation executed", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusCreated, op)
}

// @Summary List operations
// @Description Returns the user's operation history, newest first
// @Tags Operations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Operations"
// @Router /operations [get]
func (h *OperationHandler) GetOperations(c *gin.Context) {
	email := c.GetString("email")

	operations, err := h.ledgerService.GetOperations(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load operations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operations": operations})
}
