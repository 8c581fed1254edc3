package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wallet-client/internal/model"
)

// CreateWallet
// @Summary Create a wallet
// @Description Registers a wallet under a unique username
// @Tags wallets
// @Accept json
// @Produce json
// @Param wallet body model.CreateWalletRequest true "Wallet details"
// @Success 201 {object} model.WalletResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 409 {object} model.ErrorResponse "Username taken"
// @Router /wallets [post]
func (h *Handler) CreateWallet(c *gin.Context) {
	var req model.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	wallet, err := h.wallets.CreateWallet(c.Request.Context(), req.Username, req.InitialBalance)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.WalletResponse{
		Envelope: model.Envelope{Success: true, Message: "Wallet created successfully"},
		Wallet:   wallet,
	})
}

// GetWallet
// @Summary Get a wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} model.WalletResponse
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /wallets/{id} [get]
func (h *Handler) GetWallet(c *gin.Context) {
	wallet, err := h.wallets.GetWallet(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.WalletResponse{
		Envelope: model.Envelope{Success: true},
		Wallet:   wallet,
	})
}

// GetWalletByUsername
// @Summary Get a wallet by username
// @Description Login lookup
// @Tags wallets
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.WalletResponse
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /wallets/username/{username} [get]
func (h *Handler) GetWalletByUsername(c *gin.Context) {
	wallet, err := h.wallets.GetWalletByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.WalletResponse{
		Envelope: model.Envelope{Success: true},
		Wallet:   wallet,
	})
}

// UpdateBalance
// @Summary Set a wallet balance
// @Description Administrative overwrite of a wallet balance
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param balance body model.UpdateBalanceRequest true "New balance"
// @Success 200 {object} model.WalletResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /wallets/{id}/balance [put]
func (h *Handler) UpdateBalance(c *gin.Context) {
	var req model.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	wallet, err := h.wallets.UpdateBalance(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.WalletResponse{
		Envelope: model.Envelope{Success: true, Message: "Balance updated successfully"},
		Wallet:   wallet,
	})
}

// GetTransactionHistory
// @Summary Get wallet transactions
// @Description Returns one page of a wallet's transactions, newest first
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Limit" default(10)
// @Success 200 {object} model.TransactionHistoryResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /wallets/{id}/transactions/detailed [get]
func (h *Handler) GetTransactionHistory(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		h.badRequest(c, "page must be a positive integer")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model.DefaultPageLimit)))
	if err != nil || limit < 1 || limit > 100 {
		h.badRequest(c, "limit must be between 1 and 100")
		return
	}

	result, err := h.wallets.GetTransactionHistory(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TransactionHistoryResponse{
		Envelope:     model.Envelope{Success: true},
		Transactions: result.Transactions,
		Pagination:   &result.Pagination,
	})
}

// Transfer
// @Summary Transfer between wallets
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body model.TransferRequest true "Transfer details"
// @Success 200 {object} model.TransferResponse
// @Failure 400 {object} model.ErrorResponse "Bad request or insufficient funds"
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /transfers [post]
func (h *Handler) Transfer(c *gin.Context) {
	var req model.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	result, err := h.wallets.Transfer(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, transferResponse(result))
}

// TransferByUsername
// @Summary Transfer between usernames
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body model.UsernameTransferRequest true "Transfer details"
// @Success 200 {object} model.TransferResponse
// @Failure 400 {object} model.ErrorResponse "Bad request or insufficient funds"
// @Failure 404 {object} model.ErrorResponse "Wallet not found"
// @Router /transfers/by-username [post]
func (h *Handler) TransferByUsername(c *gin.Context) {
	var req model.UsernameTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	result, err := h.wallets.TransferByUsername(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, transferResponse(result))
}

func transferResponse(r *model.TransferResult) model.TransferResponse {
	return model.TransferResponse{
		Envelope:      model.Envelope{Success: true, Message: r.Message},
		Transaction:   r.Transaction,
		UpdatedWallet: r.UpdatedWallet,
	}
}
