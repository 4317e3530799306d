package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// writeUpstreamError renders a market failure. label names the upstream
// call in the response, e.g. "CoinGecko History API".
func writeUpstreamError(c *gin.Context, label string, err error) {
	var upErr *apperr.UpstreamError
	var valErr *apperr.ValidationError

	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: valErr.Message})
	case errors.As(err, &upErr):
		msg := label + " failed"
		if upErr.Retried {
			msg += " (retry)"
		}
		slog.Error("upstream call failed", "api", label, "status", upErr.Status, "retried", upErr.Retried, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg, Status: upErr.Status})
	default:
		slog.Error("upstream call failed", "api", label, "error", err)
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
	}
}

// Recovery turns panics into a JSON 500 without leaking the stack.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	})
}
