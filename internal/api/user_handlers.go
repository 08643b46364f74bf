package api

import (
	"log"
	"net/http"

	"github.com/wolfbtcc/Zenithdefi/internal/config"
	"github.com/wolfbtcc/Zenithdefi/internal/middleware"
	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

type UserHandler struct {
	accountService service.AccountService
	ledgerService  service.LedgerService
	logService     service.LogService
	cfg            *config.Config
}

func NewUserHandler(accountService service.AccountService, ledgerService service.LedgerService, logService service.LogService, cfg *config.Config) *UserHandler {
	return &UserHandler{accountService: accountService, ledgerService: ledgerService, logService: logService, cfg: cfg}
}

// @Summary Log in or register
// @Description Upserts the profile for the given email and returns a session token. First login registers the user; no credential is verified.
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login data"
// @Success 200 {object} map[string]interface{} "Session token, profile and financials"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	user, created, err := h.accountService.RegisterOrLogin(req.Name, req.Email, req.Password, req.ReferralCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	financials, err := h.ledgerService.LoadFinancials(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load financials"})
		return
	}

	token, err := middleware.GenerateJWT(user.Email, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	action := "UserLogin"
	if created {
		action = "UserRegistered"
	}
	metadata := map[string]interface{}{
		"email":          user.Email,
		"affiliate_code": user.AffiliateCode,
	}
	if err := h.logService.LogAction(user.Email, action, "User logged in", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user":       user,
		"financials": financials,
		"registered": created,
	})
}

// @Summary Get the current profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	email := c.GetString("email")
	user, err := h.accountService.GetUserByEmail(email)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
