package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/metrics"
)

// MetricsHandler serves health metric recording and queries.
type MetricsHandler struct {
	metrics  *metrics.Service
	resolver *auth.Resolver
	logger   *slog.Logger
}

// NewMetricsHandler creates a metrics handler.
func NewMetricsHandler(log *slog.Logger, metricsService *metrics.Service, resolver *auth.Resolver) *MetricsHandler {
	return &MetricsHandler{
		metrics:  metricsService,
		resolver: resolver,
		logger:   log.With(slog.String("handler", "metrics")),
	}
}

// Register mounts the health metric routes on the Echo instance.
func (h *MetricsHandler) Register(e *echo.Echo) {
	group := e.Group("/api/health-metrics")
	group.POST("", h.Save)
	group.GET("/user", h.ListMine)
	group.GET("/:type", h.ListByType)
}

// Save godoc
// @Summary Record a health metric
// @Tags health-metrics
// @Param payload body metrics.SaveRequest true "Metric payload"
// @Success 201 {object} metrics.Metric
// @Failure 400 {object} auth.ErrorResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/health-metrics [post]
func (h *MetricsHandler) Save(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	var req metrics.SaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	metric, err := h.metrics.Save(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, metric)
}

// ListMine godoc
// @Summary List the caller's health metrics
// @Tags health-metrics
// @Success 200 {object} metrics.ListResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/health-metrics/user [get]
func (h *MetricsHandler) ListMine(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	items, err := h.metrics.ListBySubject(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics.ListResponse{HealthMetrics: items})
}

// ListByType godoc
// @Summary List the caller's health metrics of one type
// @Tags health-metrics
// @Param type path string true "Metric type"
// @Success 200 {object} metrics.ListResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/health-metrics/{type} [get]
func (h *MetricsHandler) ListByType(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	items, err := h.metrics.ListByType(c.Request().Context(), subject, c.Param("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics.ListResponse{HealthMetrics: items})
}
