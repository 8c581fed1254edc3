package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wallet-client/internal/backend"
	"wallet-client/internal/model"
)

// Handler serves a wallet backend over the REST surface the client
// consumes.
type Handler struct {
	wallets backend.Backend
	logger  zerolog.Logger
}

func NewHandler(wallets backend.Backend, logger zerolog.Logger) *Handler {
	return &Handler{
		wallets: wallets,
		logger:  logger,
	}
}

func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Middlewares
	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(h.logger),
		gin.Recovery(),
	)

	// Swagger and health checks
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	wallets := api.Group("/wallets")
	wallets.POST("", h.CreateWallet)
	wallets.GET("/username/:username", h.GetWalletByUsername)
	wallets.GET("/:id", h.GetWallet)
	wallets.PUT("/:id/balance", h.UpdateBalance)
	wallets.GET("/:id/transactions/detailed", h.GetTransactionHistory)

	transfers := api.Group("/transfers")
	transfers.POST("", h.Transfer)
	transfers.POST("/by-username", h.TransferByUsername)

	cdks := api.Group("/cdks")
	cdks.POST("/redeem", h.RedeemCdk)
	cdks.POST("/validate", h.ValidateCdk)

	api.GET("/exchange-rates/latest", h.LatestExchangeRate)

	return router
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: msg,
		Code:  model.CodeValidation,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := model.CodeInternal

	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
		code = model.CodeValidation
	case errors.Is(err, model.ErrInsufficientFunds):
		status = http.StatusBadRequest
		code = model.CodeInsufficientFunds
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		code = model.CodeWalletNotFound
	case errors.Is(err, model.ErrCdkNotFound):
		status = http.StatusNotFound
		code = model.CodeCdkNotFound
	case errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusConflict
		code = model.CodeUsernameTaken
	case errors.Is(err, model.ErrCdkAlreadyRedeemed):
		status = http.StatusConflict
		code = model.CodeCdkAlreadyRedeemed
	case errors.Is(err, model.ErrNetwork):
		status = http.StatusGatewayTimeout
	}

	var we *model.WalletError
	if errors.As(err, &we) {
		if we.Status != 0 {
			status = we.Status
		}
		if we.Code != "" {
			code = we.Code
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("internal server error")
	}

	c.JSON(status, model.ErrorResponse{
		Error: model.Message(err),
		Code:  code,
	})
}
