package handler

import (
	"context"
	"net/http"

	"github.com/Alex-dot-c/crypto-track/pkg/market"
	"github.com/gin-gonic/gin"
)

type MarketService interface {
	FetchTopAssets(ctx context.Context, page, perPage int) (market.AssetList, error)
	FetchHistory(ctx context.Context, assetID string, days int, interval string) (market.ChartSeries, error)
}

type MarketHandler struct {
	market MarketService
}

func NewMarketHandler(market MarketService) *MarketHandler {
	return &MarketHandler{market: market}
}

func (h *MarketHandler) GetCoins(c *gin.Context) {
	assets, err := h.market.FetchTopAssets(c.Request.Context(), 1, market.TopListPerPage)
	if err != nil {
		writeUpstreamError(c, "CoinGecko API", err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *MarketHandler) GetCoinHistory(c *gin.Context) {
	days, err := market.ParseDays(c.Query("days"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id := market.CanonicalID(c.Param("id"))

	chart, err := h.market.FetchHistory(c.Request.Context(), id, days, market.IntervalDaily)
	if err != nil {
		writeUpstreamError(c, "CoinGecko History API", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", chart)
}
