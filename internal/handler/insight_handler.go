package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Alex-dot-c/crypto-track/internal/insight"
	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
	"github.com/gin-gonic/gin"
)

type InsightService interface {
	BuildAggregate(ctx context.Context, prompt string) (*insight.Result, error)
}

type InsightHandler struct {
	service InsightService
}

func NewInsightHandler(service InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

func (h *InsightHandler) PostGrok(c *gin.Context) {
	var req GrokRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid grok request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No prompt provided"})
		return
	}

	res, err := h.service.BuildAggregate(c.Request.Context(), req.Prompt)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("error building insight", "error", err)
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
