package api

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type FinancialHandler struct {
	ledgerService service.LedgerService
	logService    service.LogService
}

func NewFinancialHandler(ledgerService service.LedgerService, logService service.LogService) *FinancialHandler {
	return &FinancialHandler{ledgerService: ledgerService, logService: logService}
}

// @Summary Get the current financials
// @Description Returns the stored ledger summary with today/month profit recomputed from the operation log
// @Tags Financials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Financials
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /financials [get]
func (h *FinancialHandler) GetFinancials(c *gin.Context) {
	email := c.GetString("email")

	financials, err := h.ledgerService.LoadFinancials(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load financials"})
		return
	}
	c.JSON(http.StatusOK, financials)
}

// @Summary Record a deposit
// @Description Accepts a multipart form with the amount and the payment proof file. The proof is hashed server side; each proof is accepted exactly once per user.
// @Tags Financials
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param amount formData number true "Deposit amount in dollars"
// @Param proof formData file true "Payment proof"
// @Success 201 {object} models.Financials
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 409 {object} map[string]string "Proof already used"
// @Router /deposits [post]
func (h *FinancialHandler) CreateDeposit(c *gin.Context) {
	email := c.GetString("email")

	amountStr := c.PostForm("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment proof file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payment proof"})
		return
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payment proof"})
		return
	}
	proofHash := hex.EncodeToString(hasher.Sum(nil))

	financials, err := h.ledgerService.RecordDeposit(email, amount, proofHash)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	metadata := map[string]interface{}{
		"amount":     amount,
		"proof_hash": proofHash,
	}
	if err := h.logService.LogAction(email, "DepositRecorded", "Deposit accepted", c.ClientIP(), metadata); err != nil {
		log.Printf("error: %v", err)
	}

	c.JSON(http.StatusCreated, financials)
}
