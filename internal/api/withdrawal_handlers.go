package api

import (
	"log"
	"net/http"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type WithdrawalRequest struct {
	Method   models.WithdrawalMethod `json:"method" binding:"required"`
	Amount   float64                 `json:"amount" binding:"required,gt=0"`
	FullName string                  `json:"full_name" binding:"required"`
	Address  string                  `json:"address"`
	PixKey   string                  `json:"pix_key"`
}

// WithdrawalView carries the derived pending/completed status next to the
// stored record.
type WithdrawalView struct {
	*models.Withdrawal
	Status models.RequestStatus `json:"status"`
}

type WithdrawalHandler struct {
	ledgerService service.LedgerService
	logService    service.LogService
	notifyService service.NotifyService
}

func NewWithdrawalHandler(ledgerService service.LedgerService, logService service.LogService, notifyService service.NotifyService) *WithdrawalHandler {
	return &WithdrawalHandler{ledgerService: ledgerService, logService: logService, notifyService: notifyService}
}

// @Summary Request a withdrawal
// @Description Withdraws from the available balance (balance minus invested principal). The 3% fee is informational.
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param withdrawal body WithdrawalRequest true "Withdrawal data"
// @Success 201 {object} WithdrawalView
// @Failure 400 {object} map[string]string "Validation failure"
// @Router /withdrawals [post]
func (h *WithdrawalHandler) CreateWithdrawal(c *gin.Context) {
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	email := c.GetString("email")
	withdrawal, err := h.ledgerService.RequestWithdrawal(email, &service.WithdrawalRequest{
		Method:   req.Method,
		Amount:   req.Amount,
		FullName: req.FullName,
		Address:  req.Address,
		PixKey:   req.PixKey,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if err := h.notifyService.WithdrawalRequested(withdrawal); err != nil {
		log.Printf("withdrawal notification failed: %v", err)
	}

	metadata := map[string]interface{}{
		"withdrawal_id": withdrawal.ID.Hex(),
		"method":        withdrawal.Method,
		"amount":        withdrawal.Amount,
		"fee":           withdrawal.Fee,
	}
	if err := h.logService.LogAction(email, "WithdrawalRequested", "Withdrawal requested", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusCreated, WithdrawalView{Withdrawal: withdrawal, Status: withdrawal.Status(time.Now())})
}

// @Summary List withdrawals
// @Description Returns the user's withdrawal requests, newest first, with derived status
// @Tags Withdrawals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Withdrawals"
// @Router /withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(c *gin.Context) {
	email := c.GetString("email")

	withdrawals, err := h.ledgerService.GetWithdrawals(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load withdrawals"})
		return
	}

	now := time.Now()
	views := make([]WithdrawalView, 0, len(withdrawals))
	for _, w := range withdrawals {
		views = append(views, WithdrawalView{Withdrawal: w, Status: w.Status(now)})
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": views})
}
