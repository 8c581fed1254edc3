package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet-client/internal/model"
)

// RedeemCdk
// @Summary Redeem a CDK
// @Description Credits the reward of a single-use code to a wallet
// @Tags cdks
// @Accept json
// @Produce json
// @Param redeem body model.RedeemCdkRequest true "Code and username"
// @Success 200 {object} model.CdkRedeemResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Code or wallet not found"
// @Failure 409 {object} model.ErrorResponse "Already redeemed"
// @Router /cdks/redeem [post]
func (h *Handler) RedeemCdk(c *gin.Context) {
	var req model.RedeemCdkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	result, err := h.wallets.RedeemCdk(c.Request.Context(), req.Code, req.Username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CdkRedeemResponse{
		Envelope: model.Envelope{Success: true, Message: result.Message},
		Amount:   result.Amount,
		Wallet:   result.Wallet,
	})
}

// ValidateCdk
// @Summary Validate a CDK
// @Description Checks a code without consuming it
// @Tags cdks
// @Accept json
// @Produce json
// @Param validate body model.ValidateCdkRequest true "Code"
// @Success 200 {object} model.CdkValidateResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Router /cdks/validate [post]
func (h *Handler) ValidateCdk(c *gin.Context) {
	var req model.ValidateCdkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	result, err := h.wallets.ValidateCdk(c.Request.Context(), req.Code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CdkValidateResponse{
		Envelope: model.Envelope{Success: true, Message: result.Message},
		Valid:    result.Valid,
		Amount:   result.Amount,
	})
}

// LatestExchangeRate
// @Summary Latest exchange rate
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} model.ExchangeRateResponse
// @Router /exchange-rates/latest [get]
func (h *Handler) LatestExchangeRate(c *gin.Context) {
	rate, err := h.wallets.LatestExchangeRate(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ExchangeRateResponse{
		Envelope: model.Envelope{Success: true},
		Data:     rate,
	})
}
