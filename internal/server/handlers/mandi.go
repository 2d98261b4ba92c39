package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanishqpabla/agrogenius-gateways/internal/mandi"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server/utils"
	"go.uber.org/zap"
)

type MandiHandler struct {
	gateway *mandi.Gateway
	logger  *zap.Logger
}

func NewMandiHandler(gateway *mandi.Gateway, logger *zap.Logger) *MandiHandler {
	return &MandiHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// GetPrices handles POST /functions/v1/get-mandi-prices. Filters arrive as
// query parameters, each defaulting to "All"; the request body is ignored.
// This endpoint always answers 200 with a best-effort result.
func (h *MandiHandler) GetPrices(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	reqLogger := h.logger.With(zap.String("request_id", requestID))

	filters := mandi.Filters{
		State:     c.DefaultQuery("state", mandi.FilterAll),
		District:  c.DefaultQuery("district", mandi.FilterAll),
		Commodity: c.DefaultQuery("commodity", mandi.FilterAll),
		Market:    c.DefaultQuery("market", mandi.FilterAll),
	}

	reqLogger.Info("Processing mandi price request",
		zap.String("state", filters.State),
		zap.String("district", filters.District),
		zap.String("commodity", filters.Commodity),
		zap.String("market", filters.Market))

	result := h.gateway.Fetch(ctx, filters)

	reqLogger.Info("Mandi price request completed",
		zap.String("source", result.Source),
		zap.Int("total", result.Total))

	c.JSON(http.StatusOK, result)
}
