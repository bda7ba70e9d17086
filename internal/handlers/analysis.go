package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/inference"
)

// AnalysisHandler serves model inference for the caller's recent data.
type AnalysisHandler struct {
	inference *inference.Service
	resolver  *auth.Resolver
	logger    *slog.Logger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(log *slog.Logger, inferenceService *inference.Service, resolver *auth.Resolver) *AnalysisHandler {
	return &AnalysisHandler{
		inference: inferenceService,
		resolver:  resolver,
		logger:    log.With(slog.String("handler", "analysis")),
	}
}

// Register mounts the analysis routes on the Echo instance.
func (h *AnalysisHandler) Register(e *echo.Echo) {
	e.GET("/api/analysis/:model", h.Run)
}

// Run godoc
// @Summary Run a model over the caller's recent metrics
// @Tags analysis
// @Param model path string true "Model name"
// @Success 200 {object} inference.Result
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Failure 502 {object} auth.ErrorResponse
// @Router /api/analysis/{model} [get]
func (h *AnalysisHandler) Run(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	result, err := h.inference.RunModel(c.Request().Context(), subject, c.Param("model"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
