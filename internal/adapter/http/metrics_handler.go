package http

import (
	"net/http"

	"smartfin-backend/internal/usecase/metrics"

	"github.com/labstack/echo/v4"
)

type MetricsHandler struct{ engine *metrics.Engine }

func NewMetricsHandler(engine *metrics.Engine) *MetricsHandler {
	return &MetricsHandler{engine: engine}
}

func (h *MetricsHandler) ComputeMetrics(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	dto, err := h.engine.Compute(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
