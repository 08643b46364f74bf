package api

import (
	"log"
	"net/http"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type RescueRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	FullName    string  `json:"full_name" binding:"required"`
	USDTAddress string  `json:"usdt_address" binding:"required"`
	Reason      string  `json:"reason"`
}

type RescueView struct {
	*models.InvestmentRescue
	Status models.RequestStatus `json:"status"`
}

type RescueHandler struct {
	ledgerService service.LedgerService
	logService    service.LogService
	notifyService service.NotifyService
}

func NewRescueHandler(ledgerService service.LedgerService, logService service.LogService, notifyService service.NotifyService) *RescueHandler {
	return &RescueHandler{ledgerService: ledgerService, logService: logService, notifyService: notifyService}
}

// @Summary Request an investment rescue
// @Description Redeems invested principal early. A 28% fee is deducted from the paid-out amount.
// @Tags Rescues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rescue body RescueRequest true "Rescue data"
// @Success 201 {object} RescueView
// @Failure 400 {object} map[string]string "Validation failure"
// @Router /rescues [post]
func (h *RescueHandler) CreateRescue(c *gin.Context) {
	var req RescueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	email := c.GetString("email")
	rescue, err := h.ledgerService.RequestRescue(email, &service.RescueRequest{
		Amount:      req.Amount,
		FullName:    req.FullName,
		USDTAddress: req.USDTAddress,
		Reason:      req.Reason,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if err := h.notifyService.RescueRequested(rescue); err != nil {
		log.Printf("rescue notification failed: %v", err)
	}

	metadata := map[string]interface{}{
		"rescue_id":       rescue.ID.Hex(),
		"amount_rescued":  rescue.AmountRescued,
		"fee":             rescue.Fee,
		"amount_received": rescue.AmountReceived,
	}
	if err := h.logService.LogAction(email, "RescueRequested", "Investment rescue requested", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusCreated, RescueView{InvestmentRescue: rescue, Status: rescue.Status(time.Now())})
}

// @Summary List rescues
// @Description Returns the user's rescue requests, newest first, with derived status
// @Tags Rescues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Rescues"
// @Router /rescues [get]
func (h *RescueHandler) GetRescues(c *gin.Context) {
	email := c.GetString("email")

	rescues, err := h.ledgerService.GetRescues(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rescues"})
		return
	}

	now := time.Now()
	views := make([]RescueView, 0, len(rescues))
	for _, r := range rescues {
		views = append(views, RescueView{InvestmentRescue: r, Status: r.Status(now)})
	}
	c.JSON(http.StatusOK, gin.H{"rescues": views})
}
