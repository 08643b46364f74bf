package api

import (
	"log"
	"net/http"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type OverviewHandler struct {
	accountService service.AccountService
	ledgerService  service.LedgerService
	logService     service.LogService
}

func NewOverviewHandler(accountService service.AccountService, ledgerService service.LedgerService, logService service.LogService) *OverviewHandler {
	return &OverviewHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
		logService:     logService,
	}
}

type OverviewResponse struct {
	UserCount          int      `json:"user_count"`
	ReferredUserCount  int      `json:"referred_user_count"`
	TotalWithdrawals   int      `json:"total_withdrawals"`
	PendingWithdrawals int      `json:"pending_withdrawals"`
	TotalRescues       int      `json:"total_rescues"`
	PendingRescues     int      `json:"pending_rescues"`
	Emails             []string `json:"emails"`
}

// @Summary Admin overview
// @Description Provides an overview of platform statistics: registered users, referral uptake and payout queues
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OverviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (non-admin)"
// @Failure 500 {object} map[string]string "Failed to retrieve overview data"
// @Router /admin/overview [get]
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	users, err := h.accountService.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user data"})
		return
	}

	referredCount := 0
	for _, user := range users {
		if user.ReferredBy != "" {
			referredCount++
		}
	}

	emails, err := h.accountService.ListEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user data"})
		return
	}

	now := time.Now()
	totalWithdrawals, pendingWithdrawals := 0, 0
	totalRescues, pendingRescues := 0, 0
	for _, email := range emails {
		withdrawals, err := h.ledgerService.GetWithdrawals(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve withdrawal data"})
			return
		}
		totalWithdrawals += len(withdrawals)
		for _, w := range withdrawals {
			if w.Status(now) == models.RequestStatusPending {
				pendingWithdrawals++
			}
		}

		rescues, err := h.ledgerService.GetRescues(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rescue data"})
			return
		}
		totalRescues += len(rescues)
		for _, r := range rescues {
			if r.Status(now) == models.RequestStatusPending {
				pendingRescues++
			}
		}
	}

	response := OverviewResponse{
		UserCount:          len(users),
		ReferredUserCount:  referredCount,
		TotalWithdrawals:   totalWithdrawals,
		PendingWithdrawals: pendingWithdrawals,
		TotalRescues:       totalRescues,
		PendingRescues:     pendingRescues,
		Emails:             emails,
	}

	adminEmail := c.GetString("email")
	metadata := map[string]interface{}{
		"user_count":          response.UserCount,
		"total_withdrawals":   response.TotalWithdrawals,
		"pending_withdrawals": response.PendingWithdrawals,
		"total_rescues":       response.TotalRescues,
		"pending_rescues":     response.PendingRescues,
	}
	if err := h.logService.LogAction(adminEmail, "GetOverview", "Admin overview data retrieved", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusOK, response)
}
