package api

import (
	"net/http"

	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type AffiliateHandler struct {
	accountService service.AccountService
	ledgerService  service.LedgerService
}

func NewAffiliateHandler(accountService service.AccountService, ledgerService service.LedgerService) *AffiliateHandler {
	return &AffiliateHandler{accountService: accountService, ledgerService: ledgerService}
}

type referralView struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registration_date"`
}

// @Summary Get the affiliate view
// @Description Returns the user's affiliate code, refreshed earnings and referred users. Earnings are re-read from storage so commissions credited while the user was offline show up.
// @Tags Affiliate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Affiliate data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /affiliate [get]
func (h *AffiliateHandler) GetAffiliate(c *gin.Context) {
	email := c.GetString("email")

	user, err := h.accountService.GetUserByEmail(email)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	financials, err := h.ledgerService.LoadFinancials(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load financials"})
		return
	}

	referrals, err := h.accountService.GetReferrals(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referrals"})
		return
	}

	views := make([]referralView, 0, len(referrals))
	for _, r := range referrals {
		views = append(views, referralView{
			Name:             r.Name,
			Email:            r.Email,
			RegistrationDate: r.RegistrationDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"affiliate_code":     user.AffiliateCode,
		"affiliate_earnings": financials.AffiliateEarnings,
		"financials":         financials,
		"referrals":          views,
	})
}
